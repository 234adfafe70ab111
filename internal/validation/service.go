package validation

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/IsakPar/hanzi-vocab-val/internal/curriculum"
	"github.com/IsakPar/hanzi-vocab-val/internal/domain"
	"github.com/IsakPar/hanzi-vocab-val/internal/segment"
)

// Reading-mode thresholds and retry targets. Ratios are over token
// occurrences, not unique words.
const (
	tooHardRatio  = 0.25
	tooEasyRatio  = 0.05
	retryRatioMin = 0.10
	retryRatioMax = 0.20
	banTokenLimit = 10
)

// Service exposes the three validation modes over the current curriculum
// snapshot. All methods are pure reads; they return ErrNotLoaded before
// the first snapshot is installed and never error on text content.
type Service struct {
	store  *curriculum.Store
	seg    segment.Segmenter
	logger *slog.Logger
}

// NewService creates a validation service backed by the given snapshot
// store and segmenter.
func NewService(store *curriculum.Store, seg segment.Segmenter, logger *slog.Logger) *Service {
	return &Service{store: store, seg: seg, logger: logger.With(slog.String("component", "validation"))}
}

// TextStats carries the count block of a free-validation report. Counts
// are over unique words; SafePercentage is over occurrences, so repeated
// safe words raise it.
type TextStats struct {
	TotalWords     int     `json:"total_words"`
	UniqueWords    int     `json:"unique_words"`
	SafeCount      int     `json:"safe_count"`
	TargetCount    int     `json:"target_count"`
	ForbiddenCount int     `json:"forbidden_count"`
	UnknownCount   int     `json:"unknown_count"`
	SafePercentage float64 `json:"safe_percentage"`
}

// TextReport is the verdict of free validation. Word lists are
// deduplicated in first-occurrence order; WordsFound keeps every
// occurrence.
type TextReport struct {
	Valid          bool      `json:"valid"`
	WordsFound     []string  `json:"words_found"`
	SafeWords      []string  `json:"safe_words"`
	TargetWords    []string  `json:"target_words"`
	ForbiddenWords []string  `json:"forbidden_words"`
	UnknownWords   []string  `json:"unknown_words"`
	Stats          TextStats `json:"stats"`
}

// ValidateText checks free text against a learner's (level, lesson)
// position. Request-supplied target words classify as Focus ahead of
// every other rule, so they are never reported unknown even when absent
// from the curriculum. The verdict is valid iff no forbidden words
// appear; unknown words are flagged but never fail validation, since
// they may be names or untracked vocabulary.
func (s *Service) ValidateText(text string, pos domain.Position, targetWords []string) (*TextReport, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	cls := newClassifier(snap, targetWords)
	words := s.seg.Cut(text)

	var safeOccurrences int
	safe := newOrderedSet()
	targets := newOrderedSet()
	forbidden := newOrderedSet()
	unknown := newOrderedSet()
	unique := newOrderedSet()

	for _, word := range words {
		unique.add(word)
		switch cls.classifyAt(word, pos) {
		case ClassSafe:
			safeOccurrences++
			safe.add(word)
		case ClassFocus:
			targets.add(word)
		case ClassUnknown:
			unknown.add(word)
		case ClassForbidden:
			forbidden.add(word)
		}
	}

	var safePercentage float64
	if len(words) > 0 {
		safePercentage = round1(float64(safeOccurrences) / float64(len(words)) * 100)
	}

	report := &TextReport{
		Valid:          forbidden.len() == 0,
		WordsFound:     words,
		SafeWords:      safe.slice(),
		TargetWords:    targets.slice(),
		ForbiddenWords: forbidden.slice(),
		UnknownWords:   unknown.slice(),
		Stats: TextStats{
			TotalWords:     len(words),
			UniqueWords:    unique.len(),
			SafeCount:      safe.len(),
			TargetCount:    targets.len(),
			ForbiddenCount: forbidden.len(),
			UnknownCount:   unknown.len(),
			SafePercentage: safePercentage,
		},
	}

	s.logger.Debug("free validation complete",
		slog.Bool("valid", report.Valid),
		slog.Int("total_words", len(words)),
		slog.Int("forbidden", forbidden.len()))
	return report, nil
}

// InvalidWord is one word rejected by strict lesson validation, with the
// absolute lesson that introduces it.
type InvalidWord struct {
	Word     string `json:"word"`
	LessonID int    `json:"lesson_id"`
	Reason   string `json:"reason"`
}

// LessonStats carries the count block of a strict-validation report.
type LessonStats struct {
	TotalWords    int    `json:"total_words"`
	UniqueWords   int    `json:"unique_words"`
	InvalidCount  int    `json:"invalid_count"`
	UnknownCount  int    `json:"unknown_count"`
	FocusCoverage string `json:"focus_coverage"`
}

// LessonReport is the verdict of strict lesson (i+1) validation.
type LessonReport struct {
	Valid             bool          `json:"valid"`
	InvalidWords      []InvalidWord `json:"invalid_words"`
	FocusWordsFound   []string      `json:"focus_words_found"`
	FocusWordsMissing []string      `json:"focus_words_missing"`
	UnknownWords      []string      `json:"unknown_words"`
	Suggestion        string        `json:"suggestion,omitempty"`
	Stats             LessonStats   `json:"stats"`
}

// ValidateLesson checks lesson text for strict i+1 compliance against an
// absolute-lesson ceiling. A word passes if it is a focus word, an
// always-safe function word, or a curriculum word taught at or before the
// ceiling. The verdict is valid iff no word fails and every focus word
// appears at least once. When both problems exist, the retry suggestion
// names the failing words; otherwise it names the missing focus words.
func (s *Service) ValidateLesson(text string, maxLesson int, focusWords []string) (*LessonReport, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	cls := newClassifier(snap, focusWords)
	words := s.seg.Cut(text)

	var invalid []InvalidWord
	invalidSeen := make(map[string]struct{})
	unknown := newOrderedSet()
	unique := newOrderedSet()
	focusFound := make(map[string]struct{})

	for _, word := range words {
		unique.add(word)
		class, wordLesson := cls.classifyAbsolute(word, maxLesson)
		switch class {
		case ClassFocus:
			focusFound[word] = struct{}{}
		case ClassUnknown:
			unknown.add(word)
		case ClassForbidden:
			if _, seen := invalidSeen[word]; seen {
				continue
			}
			invalidSeen[word] = struct{}{}
			invalid = append(invalid, InvalidWord{
				Word:     word,
				LessonID: wordLesson,
				Reason:   fmt.Sprintf("Word from lesson %d, but current is %d", wordLesson, maxLesson),
			})
		}
	}

	found := make([]string, 0, len(focusFound))
	missing := make([]string, 0, len(focusWords))
	for _, fw := range focusWords {
		if _, ok := focusFound[fw]; ok {
			found = append(found, fw)
		} else {
			missing = append(missing, fw)
		}
	}

	var suggestion string
	if len(invalid) > 0 {
		bad := make([]string, len(invalid))
		for i, iw := range invalid {
			bad[i] = iw.Word
		}
		suggestion = "Replace these words with simpler alternatives: " + strings.Join(bad, ", ")
	} else if len(missing) > 0 {
		suggestion = "The text is missing these focus words: " + strings.Join(missing, ", ")
	}

	report := &LessonReport{
		Valid:             len(invalid) == 0 && len(missing) == 0,
		InvalidWords:      invalid,
		FocusWordsFound:   found,
		FocusWordsMissing: missing,
		UnknownWords:      unknown.slice(),
		Suggestion:        suggestion,
		Stats: LessonStats{
			TotalWords:    len(words),
			UniqueWords:   unique.len(),
			InvalidCount:  len(invalid),
			UnknownCount:  unknown.len(),
			FocusCoverage: fmt.Sprintf("%d/%d", len(found), len(focusWords)),
		},
	}

	s.logger.Debug("strict validation complete",
		slog.Bool("valid", report.Valid),
		slog.Int("max_lesson", maxLesson),
		slog.Int("invalid", len(invalid)),
		slog.Int("focus_missing", len(missing)))
	return report, nil
}

// RetrySuggestions tells the upstream generator how to fix a rejected
// reading on its next attempt.
type RetrySuggestions struct {
	BanTokens          []string   `json:"ban_tokens"`
	RequireTokens      []string   `json:"require_tokens"`
	TargetUnknownRatio [2]float64 `json:"target_unknown_ratio"`
}

// ReadingReport is the verdict of structured reading validation.
type ReadingReport struct {
	OK                bool              `json:"ok"`
	UnknownRatio      float64           `json:"unknown_ratio"`
	TooHard           bool              `json:"too_hard"`
	TooEasy           bool              `json:"too_easy"`
	FocusWordsFound   []string          `json:"focus_words_found"`
	FocusWordsMissing []string          `json:"focus_words_missing"`
	UnknownWords      []string          `json:"unknown_words"`
	Suggestions       *RetrySuggestions `json:"suggestions,omitempty"`
}

// ValidateReading checks generated reading text against an absolute-lesson
// ceiling and scores how much of it the learner will not recognize.
//
// When allowedWords is non-empty it fully replaces curriculum lookup: a
// word is known iff it is a focus word, always safe, or in the allowed
// set; curriculum positions are not consulted. The unknown ratio counts
// occurrences, so a hard word repeated throughout the text weighs more
// than one mentioned once. Text with no tokens after filtering is treated
// as maximally too hard with every focus word missing.
func (s *Service) ValidateReading(text string, maxLesson int, focusWords, allowedWords []string) (*ReadingReport, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	cls := newClassifier(snap, focusWords)
	words := s.seg.Cut(text)

	allowed := make(map[string]struct{}, len(allowedWords))
	for _, w := range allowedWords {
		allowed[w] = struct{}{}
	}
	override := len(allowed) > 0

	if len(words) == 0 {
		missing := append([]string(nil), focusWords...)
		report := &ReadingReport{
			UnknownRatio:      1.0,
			TooHard:           true,
			FocusWordsFound:   []string{},
			FocusWordsMissing: missing,
			UnknownWords:      []string{},
			Suggestions: &RetrySuggestions{
				BanTokens:          []string{},
				RequireTokens:      missing,
				TargetUnknownRatio: [2]float64{retryRatioMin, retryRatioMax},
			},
		}
		return report, nil
	}

	var unknownOccurrences int
	offending := newOrderedSet()
	focusFound := make(map[string]struct{})

	for _, word := range words {
		if override {
			if _, ok := cls.focus[word]; ok {
				focusFound[word] = struct{}{}
				continue
			}
			if domain.IsAlwaysSafe(word) {
				continue
			}
			if _, ok := allowed[word]; ok {
				continue
			}
			unknownOccurrences++
			offending.add(word)
			continue
		}

		class, _ := cls.classifyAbsolute(word, maxLesson)
		switch class {
		case ClassFocus:
			focusFound[word] = struct{}{}
		case ClassUnknown, ClassForbidden:
			unknownOccurrences++
			offending.add(word)
		}
	}

	found := make([]string, 0, len(focusFound))
	missing := make([]string, 0, len(focusWords))
	for _, fw := range focusWords {
		if _, ok := focusFound[fw]; ok {
			found = append(found, fw)
		} else {
			missing = append(missing, fw)
		}
	}

	ratio := float64(unknownOccurrences) / float64(len(words))
	tooHard := ratio > tooHardRatio
	tooEasy := ratio < tooEasyRatio && len(missing) > 0
	ok := !tooHard && len(missing) == 0

	report := &ReadingReport{
		OK:                ok,
		UnknownRatio:      ratio,
		TooHard:           tooHard,
		TooEasy:           tooEasy,
		FocusWordsFound:   found,
		FocusWordsMissing: missing,
		UnknownWords:      offending.slice(),
	}
	if !ok {
		report.Suggestions = &RetrySuggestions{
			BanTokens:          s.rankBanTokens(snap, offending.slice()),
			RequireTokens:      missing,
			TargetUnknownRatio: [2]float64{retryRatioMin, retryRatioMax},
		}
	}

	s.logger.Debug("reading validation complete",
		slog.Bool("ok", ok),
		slog.Float64("unknown_ratio", ratio),
		slog.Bool("too_hard", tooHard),
		slog.Bool("too_easy", tooEasy))
	return report, nil
}

// rankBanTokens orders offending words most-advanced first and truncates
// to the ban limit. Words without any curriculum position rank above
// everything: they are the least predictable for the generator to reuse.
// Ties keep first-occurrence order.
func (s *Service) rankBanTokens(snap *curriculum.Snapshot, offending []string) []string {
	lessonOf := func(word string) int {
		pos, ok := snap.WordPosition(word)
		if !ok {
			return math.MaxInt
		}
		return pos.AbsoluteLesson()
	}
	ranked := append([]string(nil), offending...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return lessonOf(ranked[i]) > lessonOf(ranked[j])
	})
	if len(ranked) > banTokenLimit {
		ranked = ranked[:banTokenLimit]
	}
	return ranked
}

// orderedSet is a string set that remembers first-occurrence order, used
// for the deduplicated word lists in reports.
type orderedSet struct {
	seen  map[string]struct{}
	order []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{}), order: []string{}}
}

func (s *orderedSet) add(word string) {
	if _, ok := s.seen[word]; ok {
		return
	}
	s.seen[word] = struct{}{}
	s.order = append(s.order, word)
}

func (s *orderedSet) len() int { return len(s.order) }

func (s *orderedSet) slice() []string { return s.order }

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
