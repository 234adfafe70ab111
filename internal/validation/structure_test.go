package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsakPar/hanzi-vocab-val/internal/domain"
)

func validMultipleChoice(id string) domain.Exercise {
	return domain.Exercise{
		ID:   id,
		Type: domain.ExerciseMultipleChoice,
		MultipleChoice: &domain.MultipleChoice{
			Question: domain.TextBlock{Chinese: "你好吗"},
			Options: []domain.ChoiceOption{
				{ID: "a", Chinese: "好"},
				{ID: "b", Chinese: "不好"},
			},
			CorrectOptionID: "a",
		},
	}
}

func TestValidateStructureOK(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newFakeSegmenter())
	report := svc.ValidateStructure([]domain.Exercise{
		validMultipleChoice("ex-1"),
		{
			ID:   "ex-2",
			Type: domain.ExerciseBuildSentence,
			BuildSentence: &domain.BuildSentence{
				TargetSentence: domain.TextBlock{Chinese: "我学习"},
				WordBank:       []string{"我", "学习"},
			},
		},
	}, nil)

	assert.True(t, report.OK)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.MustRegenerate)
}

func TestValidateStructureDuplicateIDs(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newFakeSegmenter())
	report := svc.ValidateStructure([]domain.Exercise{
		validMultipleChoice("ex-1"),
		validMultipleChoice("ex-1"),
	}, nil)

	assert.False(t, report.OK)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "id", report.Errors[0].Field)
	assert.Equal(t, []string{"ex-1"}, report.MustRegenerate)
}

func TestValidateStructureMissingIDsRegenerateIndividually(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newFakeSegmenter())
	report := svc.ValidateStructure([]domain.Exercise{
		validMultipleChoice(""),
		validMultipleChoice(""),
	}, nil)

	assert.False(t, report.OK)
	require.Len(t, report.Errors, 2)
	// Each id-less exercise gets its own regenerate entry instead of
	// collapsing into a single empty id.
	assert.Equal(t, []string{"exercise[0]", "exercise[1]"}, report.MustRegenerate)
}

func TestValidateStructureBadCorrectOption(t *testing.T) {
	t.Parallel()

	ex := validMultipleChoice("ex-1")
	ex.MultipleChoice.CorrectOptionID = "z"

	svc := newTestService(t, newFakeSegmenter())
	report := svc.ValidateStructure([]domain.Exercise{ex}, nil)

	assert.False(t, report.OK)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "correctOptionId", report.Errors[0].Field)
	assert.Contains(t, report.Errors[0].Message, `"z"`)
}

func TestValidateStructureDragPositions(t *testing.T) {
	t.Parallel()

	ex := domain.Exercise{
		ID:   "ex-1",
		Type: domain.ExerciseDragSentence,
		DragSentence: &domain.DragSentence{
			TargetSentence: domain.TextBlock{Chinese: "我去学校"},
			ShuffledWords: []domain.DragWord{
				{ID: "w1", Chinese: "我", CorrectPosition: 0},
				{ID: "w2", Chinese: "去", CorrectPosition: 0},
				{ID: "w3", Chinese: "学校", CorrectPosition: 2},
			},
		},
	}

	svc := newTestService(t, newFakeSegmenter())
	report := svc.ValidateStructure([]domain.Exercise{ex}, nil)

	assert.False(t, report.OK)
	assert.Equal(t, []string{"ex-1"}, report.MustRegenerate)
	fields := make([]string, 0, len(report.Errors))
	for _, e := range report.Errors {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "shuffledWords")
}

func TestValidateStructureSpotErrorWordMustAppear(t *testing.T) {
	t.Parallel()

	ex := domain.Exercise{
		ID:   "ex-1",
		Type: domain.ExerciseSpotError,
		SpotError: &domain.SpotError{
			Sentence:    domain.TextBlock{Chinese: "我要去学校"},
			WrongWord:   "是",
			CorrectWord: "要",
		},
	}

	svc := newTestService(t, newFakeSegmenter())
	report := svc.ValidateStructure([]domain.Exercise{ex}, nil)

	assert.False(t, report.OK)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "wrongWord", report.Errors[0].Field)
}

func TestValidateStructureMissingPayload(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newFakeSegmenter())
	report := svc.ValidateStructure([]domain.Exercise{
		{ID: "ex-1", Type: domain.ExerciseSpotError},
	}, nil)

	assert.False(t, report.OK)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "type", report.Errors[0].Field)
}

func TestValidateStructureVocabularyScreening(t *testing.T) {
	t.Parallel()

	seg := newFakeSegmenter()
	seg.cuts["你好吗"] = []string{"你好", "吗"}
	seg.cuts["好"] = []string{"好"}
	seg.cuts["不好"] = []string{"不", "好"}
	svc := newTestService(t, seg)

	// 吗 and 不 are always-safe function words; 你好 and 好 must come
	// from the allowed list.
	report := svc.ValidateStructure(
		[]domain.Exercise{validMultipleChoice("ex-1")},
		[]string{"你好"})

	assert.False(t, report.OK)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "vocabulary", report.Errors[0].Field)
	assert.Contains(t, report.Errors[0].Message, `"好"`)

	// With the full vocabulary allowed, screening passes.
	report = svc.ValidateStructure(
		[]domain.Exercise{validMultipleChoice("ex-1")},
		[]string{"你好", "好"})
	assert.True(t, report.OK)
}
