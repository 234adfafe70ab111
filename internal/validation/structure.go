package validation

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/IsakPar/hanzi-vocab-val/internal/domain"
)

// StructureError is one structural defect found in a generated exercise.
type StructureError struct {
	ExerciseID string `json:"exercise_id"`
	Field      string `json:"field"`
	Message    string `json:"error"`
}

// StructureReport is the verdict of exercise structure validation.
// MustRegenerate lists the IDs of exercises too broken to patch up, in
// the order they appear in the batch.
type StructureReport struct {
	OK             bool             `json:"ok"`
	Errors         []StructureError `json:"errors"`
	MustRegenerate []string         `json:"must_regenerate"`
}

// ValidateStructure checks a batch of generated exercises for structural
// integrity: IDs present and unique across the batch, variant payloads
// complete, answer references resolvable, and drag positions forming a
// permutation. When allowedWords is non-empty, every Chinese string in
// every exercise is additionally segmented and screened against it, with
// always-safe function words exempt.
//
// Structure validation does not consult the curriculum snapshot, so it
// works before the first sync completes.
func (s *Service) ValidateStructure(exercises []domain.Exercise, allowedWords []string) *StructureReport {
	report := &StructureReport{
		Errors:         []StructureError{},
		MustRegenerate: []string{},
	}
	regenerate := make(map[string]struct{})
	flag := func(ex *domain.Exercise, field, format string, args ...any) {
		report.Errors = append(report.Errors, StructureError{
			ExerciseID: ex.ID,
			Field:      field,
			Message:    fmt.Sprintf(format, args...),
		})
		if _, ok := regenerate[ex.ID]; !ok {
			regenerate[ex.ID] = struct{}{}
			report.MustRegenerate = append(report.MustRegenerate, ex.ID)
		}
	}

	allowed := make(map[string]struct{}, len(allowedWords))
	for _, w := range allowedWords {
		allowed[w] = struct{}{}
	}

	seenIDs := make(map[string]struct{}, len(exercises))
	for i := range exercises {
		ex := &exercises[i]
		if ex.ID == "" {
			// An index-derived placeholder keeps id-less exercises apart in
			// MustRegenerate; without it they would collapse into one entry.
			ex.ID = fmt.Sprintf("exercise[%d]", i)
			flag(ex, "id", "exercise %d has no id", i)
		} else if _, dup := seenIDs[ex.ID]; dup {
			flag(ex, "id", "duplicate exercise id %q", ex.ID)
		} else {
			seenIDs[ex.ID] = struct{}{}
		}

		s.checkVariant(ex, flag)

		if len(allowed) > 0 {
			s.screenVocabulary(ex, allowed, flag)
		}
	}

	report.OK = len(report.Errors) == 0
	s.logger.Debug("structure validation complete",
		slog.Bool("ok", report.OK),
		slog.Int("exercises", len(exercises)),
		slog.Int("errors", len(report.Errors)))
	return report
}

type flagFunc func(ex *domain.Exercise, field, format string, args ...any)

func (s *Service) checkVariant(ex *domain.Exercise, flag flagFunc) {
	switch ex.Type {
	case domain.ExerciseMultipleChoice:
		if ex.MultipleChoice == nil {
			flag(ex, "type", "missing multiple_choice payload")
			return
		}
		checkMultipleChoice(ex, "", ex.MultipleChoice, flag)

	case domain.ExerciseDragSentence:
		ds := ex.DragSentence
		if ds == nil {
			flag(ex, "type", "missing drag_sentence payload")
			return
		}
		if ds.TargetSentence.Chinese == "" {
			flag(ex, "targetSentence", "target sentence has no Chinese text")
		}
		if len(ds.ShuffledWords) < 2 {
			flag(ex, "shuffledWords", "need at least 2 words to drag, got %d", len(ds.ShuffledWords))
			return
		}
		positions := make(map[int]struct{}, len(ds.ShuffledWords))
		for _, w := range ds.ShuffledWords {
			if w.Chinese == "" {
				flag(ex, "shuffledWords", "word %q has no Chinese text", w.ID)
			}
			if w.CorrectPosition < 0 || w.CorrectPosition >= len(ds.ShuffledWords) {
				flag(ex, "shuffledWords", "word %q position %d out of range", w.ID, w.CorrectPosition)
				continue
			}
			if _, dup := positions[w.CorrectPosition]; dup {
				flag(ex, "shuffledWords", "position %d assigned more than once", w.CorrectPosition)
			}
			positions[w.CorrectPosition] = struct{}{}
		}
		if len(positions) != len(ds.ShuffledWords) {
			flag(ex, "shuffledWords", "positions do not cover the full sentence")
		}

	case domain.ExerciseSpotError:
		se := ex.SpotError
		if se == nil {
			flag(ex, "type", "missing spot_error payload")
			return
		}
		if se.Sentence.Chinese == "" {
			flag(ex, "sentence", "sentence has no Chinese text")
		}
		if se.WrongWord == "" {
			flag(ex, "wrongWord", "wrong word is empty")
		}
		if se.CorrectWord == "" {
			flag(ex, "correctWord", "correct word is empty")
		}
		if se.WrongWord != "" && se.Sentence.Chinese != "" && !strings.Contains(se.Sentence.Chinese, se.WrongWord) {
			flag(ex, "wrongWord", "wrong word %q does not appear in the sentence", se.WrongWord)
		}

	case domain.ExerciseBuildSentence:
		bs := ex.BuildSentence
		if bs == nil {
			flag(ex, "type", "missing build_sentence payload")
			return
		}
		if bs.TargetSentence.Chinese == "" {
			flag(ex, "targetSentence", "target sentence has no Chinese text")
		}
		if len(bs.WordBank) == 0 {
			flag(ex, "wordBank", "word bank is empty")
		}

	case domain.ExerciseReadingComprehension:
		rc := ex.ReadingComprehension
		if rc == nil {
			flag(ex, "type", "missing reading_comprehension payload")
			return
		}
		if rc.Passage.Chinese == "" {
			flag(ex, "passage", "passage has no Chinese text")
		}
		if len(rc.Questions) == 0 {
			flag(ex, "questions", "no comprehension questions")
		}
		for qi := range rc.Questions {
			checkMultipleChoice(ex, fmt.Sprintf("questions[%d].", qi), &rc.Questions[qi], flag)
		}

	default:
		flag(ex, "type", "unknown exercise type %q", ex.Type)
	}
}

func checkMultipleChoice(ex *domain.Exercise, prefix string, mc *domain.MultipleChoice, flag flagFunc) {
	if mc.Question.Chinese == "" {
		flag(ex, prefix+"question", "question has no Chinese text")
	}
	if len(mc.Options) < 2 {
		flag(ex, prefix+"options", "need at least 2 options, got %d", len(mc.Options))
	}
	optionIDs := make(map[string]struct{}, len(mc.Options))
	for _, opt := range mc.Options {
		if opt.ID == "" {
			flag(ex, prefix+"options", "option with empty id")
			continue
		}
		if _, dup := optionIDs[opt.ID]; dup {
			flag(ex, prefix+"options", "duplicate option id %q", opt.ID)
		}
		optionIDs[opt.ID] = struct{}{}
		if opt.Chinese == "" {
			flag(ex, prefix+"options", "option %q has no Chinese text", opt.ID)
		}
	}
	if mc.CorrectOptionID == "" {
		flag(ex, prefix+"correctOptionId", "no correct option set")
	} else if _, ok := optionIDs[mc.CorrectOptionID]; !ok {
		flag(ex, prefix+"correctOptionId", "correct option %q not among options", mc.CorrectOptionID)
	}
}

// screenVocabulary segments every Chinese string in the exercise and
// reports tokens outside the allowed set. Function words pass without
// being listed in allowedWords.
func (s *Service) screenVocabulary(ex *domain.Exercise, allowed map[string]struct{}, flag flagFunc) {
	reported := make(map[string]struct{})
	for _, text := range ex.ChineseText() {
		for _, word := range s.seg.Cut(text) {
			if domain.IsAlwaysSafe(word) {
				continue
			}
			if _, ok := allowed[word]; ok {
				continue
			}
			if _, dup := reported[word]; dup {
				continue
			}
			reported[word] = struct{}{}
			flag(ex, "vocabulary", "word %q is not in the allowed vocabulary", word)
		}
	}
}
