package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExerciseUnmarshalDispatch(t *testing.T) {
	t.Parallel()

	payload := `{
		"id": "ex-1",
		"type": "multiple_choice",
		"question": {"chinese": "你好吗", "pinyin": "ni hao ma"},
		"options": [
			{"id": "a", "chinese": "好"},
			{"id": "b", "chinese": "不好"}
		],
		"correctOptionId": "a"
	}`

	var ex Exercise
	require.NoError(t, json.Unmarshal([]byte(payload), &ex))

	assert.Equal(t, "ex-1", ex.ID)
	assert.Equal(t, ExerciseMultipleChoice, ex.Type)
	require.NotNil(t, ex.MultipleChoice)
	assert.Equal(t, "你好吗", ex.MultipleChoice.Question.Chinese)
	assert.Equal(t, "a", ex.MultipleChoice.CorrectOptionID)
	assert.Nil(t, ex.DragSentence)
}

func TestExerciseUnmarshalUnknownType(t *testing.T) {
	t.Parallel()

	var ex Exercise
	err := json.Unmarshal([]byte(`{"id": "ex-9", "type": "fill_blank"}`), &ex)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownExerciseType)
}

func TestExerciseChineseText(t *testing.T) {
	t.Parallel()

	ex := Exercise{
		ID:   "ex-2",
		Type: ExerciseReadingComprehension,
		ReadingComprehension: &ReadingComprehension{
			Passage: TextBlock{Chinese: "我有一只猫"},
			Questions: []MultipleChoice{
				{
					Question: TextBlock{Chinese: "我有什么"},
					Options: []ChoiceOption{
						{ID: "a", Chinese: "猫"},
						{ID: "b", Chinese: "狗"},
					},
					CorrectOptionID: "a",
				},
			},
		},
	}

	assert.Equal(t, []string{"我有一只猫", "我有什么", "猫", "狗"}, ex.ChineseText())
}

func TestExerciseChineseTextSpotError(t *testing.T) {
	t.Parallel()

	ex := Exercise{
		ID:   "ex-3",
		Type: ExerciseSpotError,
		SpotError: &SpotError{
			Sentence:    TextBlock{Chinese: "我是去学校"},
			WrongWord:   "是",
			CorrectWord: "要",
		},
	}

	assert.Equal(t, []string{"我是去学校", "是", "要"}, ex.ChineseText())
}
