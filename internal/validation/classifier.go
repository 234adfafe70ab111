// Package validation implements word-by-word classification of Chinese
// text against a learner's curriculum position, in three request modes:
// free validation, strict lesson (i+1) validation, and structured reading
// validation with retry hints.
package validation

import (
	"github.com/IsakPar/hanzi-vocab-val/internal/curriculum"
	"github.com/IsakPar/hanzi-vocab-val/internal/domain"
)

// Class is the outcome of classifying a single token. Every token gets
// exactly one class; classes are normal values, never errors.
type Class int

const (
	// ClassSafe marks a word the learner has already been taught, or a
	// function word from the always-safe set.
	ClassSafe Class = iota
	// ClassFocus marks a word in the caller's explicit focus set for this
	// request.
	ClassFocus
	// ClassForbidden marks a curriculum word taught after the caller's
	// position.
	ClassForbidden
	// ClassUnknown marks a word that is not in the curriculum at all.
	ClassUnknown
)

func (c Class) String() string {
	switch c {
	case ClassSafe:
		return "safe"
	case ClassFocus:
		return "focus"
	case ClassForbidden:
		return "forbidden"
	case ClassUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// classifier evaluates the fixed precedence rules against one snapshot.
// Precedence, first match wins:
//
//  1. word in the request focus set        -> Focus
//  2. word in the always-safe set          -> Safe
//  3. word not in the curriculum           -> Unknown
//  4. word position not after the ceiling  -> Safe
//  5. otherwise                            -> Forbidden
//
// The two classify methods differ only in comparator granularity: position
// mode compares (level, lesson) pairs, absolute mode compares flattened
// lesson ordinals.
type classifier struct {
	snap  *curriculum.Snapshot
	focus map[string]struct{}
}

func newClassifier(snap *curriculum.Snapshot, focusWords []string) *classifier {
	focus := make(map[string]struct{}, len(focusWords))
	for _, w := range focusWords {
		focus[w] = struct{}{}
	}
	return &classifier{snap: snap, focus: focus}
}

// classifyAt classifies word against a (level, lesson) position ceiling.
func (c *classifier) classifyAt(word string, ceiling domain.Position) Class {
	if _, ok := c.focus[word]; ok {
		return ClassFocus
	}
	if domain.IsAlwaysSafe(word) {
		return ClassSafe
	}
	pos, ok := c.snap.WordPosition(word)
	if !ok {
		return ClassUnknown
	}
	// Equality counts as taught: a word from the caller's own lesson is
	// already material the learner has seen.
	if pos.NotAfter(ceiling) {
		return ClassSafe
	}
	return ClassForbidden
}

// classifyAbsolute classifies word against an absolute-lesson ceiling.
// The second return is the word's own absolute lesson, meaningful only
// for ClassForbidden, where callers report it alongside the word.
func (c *classifier) classifyAbsolute(word string, maxLesson int) (Class, int) {
	if _, ok := c.focus[word]; ok {
		return ClassFocus, 0
	}
	if domain.IsAlwaysSafe(word) {
		return ClassSafe, 0
	}
	pos, ok := c.snap.WordPosition(word)
	if !ok {
		return ClassUnknown, 0
	}
	abs := pos.AbsoluteLesson()
	if abs <= maxLesson {
		return ClassSafe, abs
	}
	return ClassForbidden, abs
}
