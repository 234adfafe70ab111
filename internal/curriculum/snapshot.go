// Package curriculum holds the immutable snapshot of curriculum and
// content data that the validation and recommendation engines read from,
// plus the atomic store that swaps snapshots wholesale on reload.
package curriculum

import (
	"sort"

	"github.com/IsakPar/hanzi-vocab-val/internal/domain"
	"github.com/IsakPar/hanzi-vocab-val/internal/segment"
)

// Snapshot is one loaded generation of curriculum and content data. It is
// built off to the side and never mutated after Build returns, so readers
// can use it without locking.
type Snapshot struct {
	version    string
	exportedAt string

	wordPositions map[string]domain.Position
	vocabByID     map[string]domain.VocabWord
	wordIDByHanzi map[string]string

	lessonOrder []string
	lessonWords map[string][]string
	known       map[string]map[string]struct{}

	stories    []domain.Story
	audiobooks []domain.Audiobook
}

// Build constructs a snapshot from a loader-supplied export.
//
// Building does three one-time jobs that must not be redone per request:
// parsing every word's position string, folding the lesson order into
// cumulative known-word sets, and tokenizing any content items that
// arrived with full text instead of tokens. It also registers every
// curriculum surface form with the segmenter, which is a required
// precondition for classification after each reload.
func Build(export *domain.CurriculumExport, seg segment.Segmenter) *Snapshot {
	s := &Snapshot{
		version:       export.Version,
		exportedAt:    export.ExportedAt,
		wordPositions: make(map[string]domain.Position, len(export.Words)),
		vocabByID:     make(map[string]domain.VocabWord, len(export.Vocabulary)),
		wordIDByHanzi: make(map[string]string, len(export.Vocabulary)),
		lessonOrder:   append([]string(nil), export.LessonOrder...),
		lessonWords:   make(map[string][]string, len(export.LessonWordMap)),
	}

	for hanzi, posStr := range export.Words {
		s.wordPositions[hanzi] = domain.ParsePosition(posStr)
	}

	for _, v := range export.Vocabulary {
		s.vocabByID[v.ID] = v
		s.wordIDByHanzi[v.Hanzi] = v.ID
	}

	// The structured lesson list supplements the flat word map: entries
	// the map does not carry get their position from the lesson that
	// introduces them.
	for _, lesson := range export.Lessons {
		pos := domain.Position{Level: lesson.HSKLevel, Lesson: lesson.LessonNumber}
		for _, id := range lesson.TargetVocabulary {
			v, ok := s.vocabByID[id]
			if !ok {
				continue
			}
			if _, exists := s.wordPositions[v.Hanzi]; !exists {
				s.wordPositions[v.Hanzi] = pos
			}
		}
	}

	for id, words := range export.LessonWordMap {
		s.lessonWords[id] = append([]string(nil), words...)
	}
	s.buildCumulativeSets()

	// Seed the segmenter before tokenizing content so multi-character
	// curriculum words survive as single tokens.
	for hanzi := range s.wordPositions {
		seg.AddPreferredWord(hanzi)
	}
	for hanzi := range s.wordIDByHanzi {
		seg.AddPreferredWord(hanzi)
	}

	s.stories = make([]domain.Story, len(export.Stories))
	for i, story := range export.Stories {
		if len(story.Tokens) == 0 && story.FullText != "" {
			story.Tokens = s.tokenize(story.FullText, seg)
		}
		if story.TotalTokens == 0 {
			story.TotalTokens = len(story.Tokens)
		}
		s.stories[i] = story
	}

	// Audiobooks without a transcript cannot be scored and are dropped at
	// load time.
	s.audiobooks = make([]domain.Audiobook, 0, len(export.Audiobooks))
	for _, ab := range export.Audiobooks {
		if len(ab.Tokens) == 0 && ab.FullText != "" {
			ab.Tokens = s.tokenize(ab.FullText, seg)
		}
		if len(ab.Tokens) == 0 {
			continue
		}
		if ab.TotalTokens == 0 {
			ab.TotalTokens = len(ab.Tokens)
		}
		s.audiobooks = append(s.audiobooks, ab)
	}

	return s
}

// buildCumulativeSets folds the lesson order forward so that each lesson
// maps to every word identifier taught at or before it. Sets are
// monotonically non-decreasing along the lesson order.
func (s *Snapshot) buildCumulativeSets() {
	s.known = make(map[string]map[string]struct{}, len(s.lessonOrder))
	soFar := make(map[string]struct{})
	for _, lessonID := range s.lessonOrder {
		for _, wordID := range s.lessonWords[lessonID] {
			soFar[wordID] = struct{}{}
		}
		snapshot := make(map[string]struct{}, len(soFar))
		for id := range soFar {
			snapshot[id] = struct{}{}
		}
		s.known[lessonID] = snapshot
	}
}

func (s *Snapshot) tokenize(text string, seg segment.Segmenter) []domain.Token {
	surfaces := seg.Cut(text)
	tokens := make([]domain.Token, len(surfaces))
	for i, surface := range surfaces {
		tokens[i] = domain.Token{
			WordID: s.wordIDByHanzi[surface],
			Hanzi:  surface,
		}
	}
	return tokens
}

// Version returns the loaded curriculum version string.
func (s *Snapshot) Version() string { return s.version }

// WordPosition looks up the curriculum position of a surface form.
func (s *Snapshot) WordPosition(word string) (domain.Position, bool) {
	pos, ok := s.wordPositions[word]
	return pos, ok
}

// WordCount returns the number of distinct surface forms in the snapshot.
func (s *Snapshot) WordCount() int { return len(s.wordPositions) }

// VocabCount returns the number of identified vocabulary entries.
func (s *Snapshot) VocabCount() int { return len(s.vocabByID) }

// LessonCount returns the number of lessons in the lesson order.
func (s *Snapshot) LessonCount() int { return len(s.lessonOrder) }

// StoryCount returns the number of loaded stories.
func (s *Snapshot) StoryCount() int { return len(s.stories) }

// AudiobookCount returns the number of loaded audiobooks with transcripts.
func (s *Snapshot) AudiobookCount() int { return len(s.audiobooks) }

// Stories returns the loaded stories. Callers must not mutate the slice.
func (s *Snapshot) Stories() []domain.Story { return s.stories }

// Audiobooks returns the loaded audiobooks. Callers must not mutate the
// slice.
func (s *Snapshot) Audiobooks() []domain.Audiobook { return s.audiobooks }

// KnownWords returns the cumulative known-word set for a lesson position.
// The second return is false when the lesson identifier is not part of the
// loaded lesson order; callers treat that as an empty set.
func (s *Snapshot) KnownWords(lessonID string) (map[string]struct{}, bool) {
	set, ok := s.known[lessonID]
	return set, ok
}

// WordsUpTo returns the deduplicated surface forms taught no later than
// the given absolute lesson, ordered by absolute lesson and then by
// surface form so the output is deterministic.
func (s *Snapshot) WordsUpTo(maxAbsoluteLesson int) []string {
	type entry struct {
		word string
		abs  int
	}
	entries := make([]entry, 0, len(s.wordPositions))
	for word, pos := range s.wordPositions {
		if abs := pos.AbsoluteLesson(); abs <= maxAbsoluteLesson {
			entries = append(entries, entry{word: word, abs: abs})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].abs != entries[j].abs {
			return entries[i].abs < entries[j].abs
		}
		return entries[i].word < entries[j].word
	})
	words := make([]string, len(entries))
	for i, e := range entries {
		words[i] = e.word
	}
	return words
}
