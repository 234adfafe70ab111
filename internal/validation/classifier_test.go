package validation

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/IsakPar/hanzi-vocab-val/internal/curriculum"
	"github.com/IsakPar/hanzi-vocab-val/internal/domain"
)

// fakeSegmenter maps whole texts to fixed token lists and falls back to
// rune splitting, so the services run without the real dictionary.
type fakeSegmenter struct {
	cuts map[string][]string
}

func newFakeSegmenter() *fakeSegmenter {
	return &fakeSegmenter{cuts: map[string][]string{}}
}

func (f *fakeSegmenter) Cut(text string) []string {
	if text == "" {
		return nil
	}
	if tokens, ok := f.cuts[text]; ok {
		return tokens
	}
	var tokens []string
	for _, r := range text {
		tokens = append(tokens, string(r))
	}
	return tokens
}

func (f *fakeSegmenter) AddPreferredWord(string) {}

func testSnapshot(t *testing.T) *curriculum.Snapshot {
	t.Helper()
	export := &domain.CurriculumExport{
		Version: "test",
		Words: map[string]string{
			"你好": "hsk1-l1",
			"学习": "hsk1-l3",
			"可能": "hsk2-l1",
		},
	}
	return curriculum.Build(export, newFakeSegmenter())
}

func testStore(t *testing.T) *curriculum.Store {
	t.Helper()
	store := curriculum.NewStore()
	store.Replace(testSnapshot(t))
	return store
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClassifyAtPrecedence(t *testing.T) {
	t.Parallel()

	snap := testSnapshot(t)
	pos := domain.Position{Level: 1, Lesson: 1}

	tests := []struct {
		name  string
		word  string
		focus []string
		want  Class
	}{
		{"focus wins over curriculum position", "可能", []string{"可能"}, ClassFocus},
		{"focus wins for words outside the curriculum", "龙舟", []string{"龙舟"}, ClassFocus},
		{"always safe function word", "我", nil, ClassSafe},
		{"always safe wins over unknown", "什么", nil, ClassSafe},
		{"unknown word", "龙舟", nil, ClassUnknown},
		{"exactly at position is safe", "你好", nil, ClassSafe},
		{"later position is forbidden", "学习", nil, ClassForbidden},
		{"much later level is forbidden", "可能", nil, ClassForbidden},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cls := newClassifier(snap, tc.focus)
			assert.Equal(t, tc.want, cls.classifyAt(tc.word, pos))
		})
	}
}

func TestClassifyAtEarlierPositionIsSafe(t *testing.T) {
	t.Parallel()

	cls := newClassifier(testSnapshot(t), nil)
	assert.Equal(t, ClassSafe, cls.classifyAt("你好", domain.Position{Level: 1, Lesson: 2}))
	assert.Equal(t, ClassSafe, cls.classifyAt("学习", domain.Position{Level: 2, Lesson: 1}))
}

func TestClassifyAbsolute(t *testing.T) {
	t.Parallel()

	cls := newClassifier(testSnapshot(t), []string{"学习"})

	class, _ := cls.classifyAbsolute("学习", 1)
	assert.Equal(t, ClassFocus, class)

	class, _ = cls.classifyAbsolute("你好", 1)
	assert.Equal(t, ClassSafe, class)

	class, abs := cls.classifyAbsolute("可能", 3)
	assert.Equal(t, ClassForbidden, class)
	assert.Equal(t, 11, abs)

	class, _ = cls.classifyAbsolute("可能", 11)
	assert.Equal(t, ClassSafe, class)

	class, _ = cls.classifyAbsolute("龙舟", 3)
	assert.Equal(t, ClassUnknown, class)
}

func TestClassString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "safe", ClassSafe.String())
	assert.Equal(t, "focus", ClassFocus.String())
	assert.Equal(t, "forbidden", ClassForbidden.String())
	assert.Equal(t, "unknown", ClassUnknown.String())
}
