package domain

import (
	"strconv"
	"strings"
)

// LessonsPerLevel is fixed by the HSK curriculum layout: every level holds
// exactly ten lessons. This is what makes absolute-lesson arithmetic valid.
const LessonsPerLevel = 10

// Position is a curriculum coordinate: an HSK level plus a lesson number
// within that level. The zero value (0,0) sorts before every real
// coordinate and doubles as the "unknown position" default.
type Position struct {
	Level  int
	Lesson int
}

// ParsePosition parses a position string like "hsk1-l3" into a Position.
//
// Parsing never fails: any malformed input (missing prefix, missing
// delimiter, non-numeric parts) yields the zero Position, so downstream
// comparisons stay well-defined. Callers must not treat the zero value as
// an error; it simply compares before everything else.
func ParsePosition(s string) Position {
	rest, ok := strings.CutPrefix(s, "hsk")
	if !ok {
		return Position{}
	}
	levelPart, lessonPart, ok := strings.Cut(rest, "-l")
	if !ok {
		return Position{}
	}
	level, err := strconv.Atoi(levelPart)
	if err != nil {
		return Position{}
	}
	lesson, err := strconv.Atoi(lessonPart)
	if err != nil {
		return Position{}
	}
	return Position{Level: level, Lesson: lesson}
}

// AbsoluteLesson flattens the (level, lesson) pair into a single ordinal:
// HSK1 lessons 1-10 map to 1-10, HSK2 lessons to 11-20, and so on. It lets
// callers compare positions across level boundaries with plain integers.
func (p Position) AbsoluteLesson() int {
	return (p.Level-1)*LessonsPerLevel + p.Lesson
}

// Compare orders positions by level, then by lesson within the level.
// It returns -1 if p comes before other, 0 if they are equal, and 1 if p
// comes after other.
func (p Position) Compare(other Position) int {
	if p.Level != other.Level {
		if p.Level < other.Level {
			return -1
		}
		return 1
	}
	if p.Lesson != other.Lesson {
		if p.Lesson < other.Lesson {
			return -1
		}
		return 1
	}
	return 0
}

// Before reports whether p is strictly earlier than other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// NotAfter reports whether p is taught no later than other.
func (p Position) NotAfter(other Position) bool {
	return p.Compare(other) <= 0
}

// String renders the position in the canonical "hskN-lM" form.
func (p Position) String() string {
	return "hsk" + strconv.Itoa(p.Level) + "-l" + strconv.Itoa(p.Lesson)
}
