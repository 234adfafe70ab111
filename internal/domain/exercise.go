package domain

import (
	"encoding/json"
	"fmt"
)

// ExerciseType is the closed enumeration of exercise kinds the lesson
// generator can produce. Payloads carrying any other type are rejected at
// decode time, not string-matched deeper in the pipeline.
type ExerciseType string

const (
	ExerciseMultipleChoice       ExerciseType = "multiple_choice"
	ExerciseDragSentence         ExerciseType = "drag_sentence"
	ExerciseSpotError            ExerciseType = "spot_error"
	ExerciseBuildSentence        ExerciseType = "build_sentence"
	ExerciseReadingComprehension ExerciseType = "reading_comprehension"
)

// TextBlock is a Chinese text fragment with its transliteration and
// translation. Only the Chinese field participates in vocabulary checks.
type TextBlock struct {
	Chinese string `json:"chinese"`
	Pinyin  string `json:"pinyin,omitempty"`
	English string `json:"english,omitempty"`
}

// ChoiceOption is one answer option of a multiple-choice question.
type ChoiceOption struct {
	ID      string `json:"id"`
	Chinese string `json:"chinese"`
	Pinyin  string `json:"pinyin,omitempty"`
}

// MultipleChoice asks the learner to pick the option matching the question.
type MultipleChoice struct {
	Question        TextBlock      `json:"question"`
	Options         []ChoiceOption `json:"options"`
	CorrectOptionID string         `json:"correctOptionId"`
}

// DragWord is one draggable word with its slot in the target sentence.
type DragWord struct {
	ID              string `json:"id"`
	Chinese         string `json:"chinese"`
	Pinyin          string `json:"pinyin,omitempty"`
	CorrectPosition int    `json:"correctPosition"`
}

// DragSentence asks the learner to reassemble a shuffled sentence.
type DragSentence struct {
	TargetSentence TextBlock  `json:"targetSentence"`
	ShuffledWords  []DragWord `json:"shuffledWords"`
}

// SpotError asks the learner to find the wrong word in a sentence.
type SpotError struct {
	Sentence    TextBlock `json:"sentence"`
	WrongWord   string    `json:"wrongWord"`
	CorrectWord string    `json:"correctWord"`
}

// BuildSentence asks the learner to build the target sentence from a word
// bank.
type BuildSentence struct {
	TargetSentence TextBlock `json:"targetSentence"`
	WordBank       []string  `json:"wordBank"`
}

// ReadingComprehension pairs a passage with follow-up questions.
type ReadingComprehension struct {
	Passage   TextBlock        `json:"passage"`
	Questions []MultipleChoice `json:"questions"`
}

// Exercise is a tagged union over the five exercise kinds. Exactly one of
// the variant pointers is non-nil after a successful unmarshal, selected by
// the Type tag.
type Exercise struct {
	ID   string
	Type ExerciseType

	MultipleChoice       *MultipleChoice
	DragSentence         *DragSentence
	SpotError            *SpotError
	BuildSentence        *BuildSentence
	ReadingComprehension *ReadingComprehension
}

// UnmarshalJSON dispatches on the "type" tag and decodes the payload into
// the matching variant. An unrecognized type yields ErrUnknownExerciseType.
func (e *Exercise) UnmarshalJSON(data []byte) error {
	var head struct {
		ID   string       `json:"id"`
		Type ExerciseType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	e.ID = head.ID
	e.Type = head.Type

	switch head.Type {
	case ExerciseMultipleChoice:
		e.MultipleChoice = &MultipleChoice{}
		return json.Unmarshal(data, e.MultipleChoice)
	case ExerciseDragSentence:
		e.DragSentence = &DragSentence{}
		return json.Unmarshal(data, e.DragSentence)
	case ExerciseSpotError:
		e.SpotError = &SpotError{}
		return json.Unmarshal(data, e.SpotError)
	case ExerciseBuildSentence:
		e.BuildSentence = &BuildSentence{}
		return json.Unmarshal(data, e.BuildSentence)
	case ExerciseReadingComprehension:
		e.ReadingComprehension = &ReadingComprehension{}
		return json.Unmarshal(data, e.ReadingComprehension)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownExerciseType, head.Type)
	}
}

// ChineseText collects every Chinese string in the exercise, in document
// order, for vocabulary screening.
func (e *Exercise) ChineseText() []string {
	var out []string
	add := func(s string) {
		if s != "" {
			out = append(out, s)
		}
	}

	switch e.Type {
	case ExerciseMultipleChoice:
		if mc := e.MultipleChoice; mc != nil {
			add(mc.Question.Chinese)
			for _, opt := range mc.Options {
				add(opt.Chinese)
			}
		}
	case ExerciseDragSentence:
		if ds := e.DragSentence; ds != nil {
			add(ds.TargetSentence.Chinese)
			for _, w := range ds.ShuffledWords {
				add(w.Chinese)
			}
		}
	case ExerciseSpotError:
		if se := e.SpotError; se != nil {
			add(se.Sentence.Chinese)
			add(se.WrongWord)
			add(se.CorrectWord)
		}
	case ExerciseBuildSentence:
		if bs := e.BuildSentence; bs != nil {
			add(bs.TargetSentence.Chinese)
			for _, w := range bs.WordBank {
				add(w)
			}
		}
	case ExerciseReadingComprehension:
		if rc := e.ReadingComprehension; rc != nil {
			add(rc.Passage.Chinese)
			for _, q := range rc.Questions {
				add(q.Question.Chinese)
				for _, opt := range q.Options {
					add(opt.Chinese)
				}
			}
		}
	}
	return out
}
