package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsakPar/hanzi-vocab-val/internal/curriculum"
	"github.com/IsakPar/hanzi-vocab-val/internal/domain"
)

func newTestService(t *testing.T, seg *fakeSegmenter) *Service {
	t.Helper()
	return NewService(testStore(t), seg, discardLogger())
}

func TestValidateTextNotLoaded(t *testing.T) {
	t.Parallel()

	svc := NewService(curriculum.NewStore(), newFakeSegmenter(), discardLogger())
	_, err := svc.ValidateText("你好", domain.Position{Level: 1, Lesson: 1}, nil)
	assert.ErrorIs(t, err, domain.ErrNotLoaded)
}

func TestValidateTextForbiddenWordFails(t *testing.T) {
	t.Parallel()

	seg := newFakeSegmenter()
	seg.cuts["你好可能"] = []string{"你好", "可能"}
	svc := newTestService(t, seg)

	report, err := svc.ValidateText("你好可能", domain.Position{Level: 1, Lesson: 1}, nil)
	require.NoError(t, err)

	assert.False(t, report.Valid)
	// 你好 sits exactly at the caller's position, which counts as taught.
	assert.Equal(t, []string{"你好"}, report.SafeWords)
	assert.Empty(t, report.TargetWords)
	assert.Equal(t, []string{"可能"}, report.ForbiddenWords)
	assert.Equal(t, 2, report.Stats.TotalWords)
	assert.Equal(t, 1, report.Stats.SafeCount)
	assert.Equal(t, 1, report.Stats.ForbiddenCount)
	assert.InDelta(t, 50.0, report.Stats.SafePercentage, 0.001)
}

func TestValidateTextSafeAndStats(t *testing.T) {
	t.Parallel()

	seg := newFakeSegmenter()
	seg.cuts["你好你好学习"] = []string{"你好", "你好", "学习"}
	svc := newTestService(t, seg)

	report, err := svc.ValidateText("你好你好学习", domain.Position{Level: 1, Lesson: 3}, nil)
	require.NoError(t, err)

	assert.True(t, report.Valid)
	// 学习 sits exactly at lesson 3, so both words are safe.
	assert.Equal(t, []string{"你好", "学习"}, report.SafeWords)
	assert.Empty(t, report.TargetWords)
	assert.Equal(t, 3, report.Stats.TotalWords)
	assert.Equal(t, 2, report.Stats.UniqueWords)
	assert.Equal(t, 2, report.Stats.SafeCount)
	assert.InDelta(t, 100.0, report.Stats.SafePercentage, 0.001)
}

func TestValidateTextSafePercentageCountsOccurrences(t *testing.T) {
	t.Parallel()

	seg := newFakeSegmenter()
	seg.cuts["你好你好龙舟"] = []string{"你好", "你好", "龙舟"}
	svc := newTestService(t, seg)

	report, err := svc.ValidateText("你好你好龙舟", domain.Position{Level: 1, Lesson: 3}, nil)
	require.NoError(t, err)

	assert.True(t, report.Valid)
	assert.Equal(t, []string{"你好"}, report.SafeWords)
	assert.Equal(t, []string{"龙舟"}, report.UnknownWords)
	assert.Equal(t, 1, report.Stats.SafeCount)
	// Two safe occurrences out of three tokens, despite one unique safe word.
	assert.InDelta(t, 66.7, report.Stats.SafePercentage, 0.001)
}

func TestValidateTextTargetWordOverride(t *testing.T) {
	t.Parallel()

	seg := newFakeSegmenter()
	seg.cuts["可能龙舟"] = []string{"可能", "龙舟"}
	svc := newTestService(t, seg)

	report, err := svc.ValidateText("可能龙舟", domain.Position{Level: 1, Lesson: 1},
		[]string{"可能", "龙舟"})
	require.NoError(t, err)

	// Both the too-advanced word and the out-of-curriculum word classify
	// as targets when explicitly requested, so validation passes.
	assert.True(t, report.Valid)
	assert.ElementsMatch(t, []string{"可能", "龙舟"}, report.TargetWords)
	assert.Empty(t, report.ForbiddenWords)
	assert.Empty(t, report.UnknownWords)
}

func TestValidateTextUnknownWordsDoNotFail(t *testing.T) {
	t.Parallel()

	seg := newFakeSegmenter()
	seg.cuts["你好龙舟"] = []string{"你好", "龙舟"}
	svc := newTestService(t, seg)

	report, err := svc.ValidateText("你好龙舟", domain.Position{Level: 1, Lesson: 2}, nil)
	require.NoError(t, err)

	assert.True(t, report.Valid)
	assert.Equal(t, []string{"龙舟"}, report.UnknownWords)
}

func TestValidateTextEmpty(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newFakeSegmenter())
	report, err := svc.ValidateText("", domain.Position{Level: 1, Lesson: 1}, nil)
	require.NoError(t, err)

	assert.True(t, report.Valid)
	assert.Equal(t, 0, report.Stats.TotalWords)
	assert.Zero(t, report.Stats.SafePercentage)
}

func TestValidateLessonAllWithinCeiling(t *testing.T) {
	t.Parallel()

	seg := newFakeSegmenter()
	seg.cuts["你好学习"] = []string{"你好", "学习"}
	svc := newTestService(t, seg)

	report, err := svc.ValidateLesson("你好学习", 3, []string{"学习"})
	require.NoError(t, err)

	assert.True(t, report.Valid)
	assert.Empty(t, report.InvalidWords)
	assert.Equal(t, []string{"学习"}, report.FocusWordsFound)
	assert.Empty(t, report.FocusWordsMissing)
	assert.Empty(t, report.Suggestion)
	assert.Equal(t, "1/1", report.Stats.FocusCoverage)
}

func TestValidateLessonMissingFocusWord(t *testing.T) {
	t.Parallel()

	seg := newFakeSegmenter()
	seg.cuts["你好"] = []string{"你好"}
	svc := newTestService(t, seg)

	report, err := svc.ValidateLesson("你好", 3, []string{"学习"})
	require.NoError(t, err)

	assert.False(t, report.Valid)
	assert.Empty(t, report.InvalidWords)
	assert.Equal(t, []string{"学习"}, report.FocusWordsMissing)
	assert.Contains(t, report.Suggestion, "学习")
	assert.Contains(t, report.Suggestion, "missing these focus words")
	assert.Equal(t, "0/1", report.Stats.FocusCoverage)
}

func TestValidateLessonTooAdvancedWord(t *testing.T) {
	t.Parallel()

	seg := newFakeSegmenter()
	seg.cuts["你好可能可能"] = []string{"你好", "可能", "可能"}
	svc := newTestService(t, seg)

	report, err := svc.ValidateLesson("你好可能可能", 3, nil)
	require.NoError(t, err)

	assert.False(t, report.Valid)
	// The repeated offender is reported once.
	require.Len(t, report.InvalidWords, 1)
	iw := report.InvalidWords[0]
	assert.Equal(t, "可能", iw.Word)
	assert.Equal(t, 11, iw.LessonID)
	assert.Equal(t, "Word from lesson 11, but current is 3", iw.Reason)
	assert.Contains(t, report.Suggestion, "Replace these words with simpler alternatives")
	assert.Contains(t, report.Suggestion, "可能")
}

func TestValidateLessonInvalidTakesSuggestionPriority(t *testing.T) {
	t.Parallel()

	seg := newFakeSegmenter()
	seg.cuts["可能"] = []string{"可能"}
	svc := newTestService(t, seg)

	report, err := svc.ValidateLesson("可能", 3, []string{"学习"})
	require.NoError(t, err)

	assert.False(t, report.Valid)
	assert.Equal(t, []string{"学习"}, report.FocusWordsMissing)
	assert.Contains(t, report.Suggestion, "Replace these words")
	assert.NotContains(t, report.Suggestion, "missing these focus words")
}

func TestValidateReadingOK(t *testing.T) {
	t.Parallel()

	seg := newFakeSegmenter()
	seg.cuts["你好学习你好"] = []string{"你好", "学习", "你好"}
	svc := newTestService(t, seg)

	report, err := svc.ValidateReading("你好学习你好", 3, []string{"学习"}, nil)
	require.NoError(t, err)

	assert.True(t, report.OK)
	assert.Zero(t, report.UnknownRatio)
	assert.False(t, report.TooHard)
	assert.False(t, report.TooEasy)
	assert.Equal(t, []string{"学习"}, report.FocusWordsFound)
	assert.Nil(t, report.Suggestions)
}

func TestValidateReadingTooHard(t *testing.T) {
	t.Parallel()

	seg := newFakeSegmenter()
	seg.cuts["可能龙舟你好"] = []string{"可能", "龙舟", "你好"}
	svc := newTestService(t, seg)

	report, err := svc.ValidateReading("可能龙舟你好", 3, nil, nil)
	require.NoError(t, err)

	assert.False(t, report.OK)
	assert.True(t, report.TooHard)
	assert.InDelta(t, 2.0/3.0, report.UnknownRatio, 1e-9)
	assert.ElementsMatch(t, []string{"可能", "龙舟"}, report.UnknownWords)

	require.NotNil(t, report.Suggestions)
	// Out-of-curriculum words rank above dated curriculum words in the
	// ban list.
	assert.Equal(t, []string{"龙舟", "可能"}, report.Suggestions.BanTokens)
	assert.Equal(t, [2]float64{0.10, 0.20}, report.Suggestions.TargetUnknownRatio)
}

func TestValidateReadingTooEasy(t *testing.T) {
	t.Parallel()

	seg := newFakeSegmenter()
	seg.cuts["你好你好你好"] = []string{"你好", "你好", "你好"}
	svc := newTestService(t, seg)

	report, err := svc.ValidateReading("你好你好你好", 3, []string{"学习"}, nil)
	require.NoError(t, err)

	assert.False(t, report.OK)
	assert.True(t, report.TooEasy)
	assert.False(t, report.TooHard)
	assert.Equal(t, []string{"学习"}, report.FocusWordsMissing)
	require.NotNil(t, report.Suggestions)
	assert.Equal(t, []string{"学习"}, report.Suggestions.RequireTokens)
}

func TestValidateReadingEmptyText(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newFakeSegmenter())
	report, err := svc.ValidateReading("", 3, []string{"学习", "朋友"}, nil)
	require.NoError(t, err)

	assert.False(t, report.OK)
	assert.True(t, report.TooHard)
	assert.Equal(t, 1.0, report.UnknownRatio)
	assert.Equal(t, []string{"学习", "朋友"}, report.FocusWordsMissing)
	require.NotNil(t, report.Suggestions)
	assert.Equal(t, []string{"学习", "朋友"}, report.Suggestions.RequireTokens)
}

func TestValidateReadingAllowedWordsOverride(t *testing.T) {
	t.Parallel()

	seg := newFakeSegmenter()
	seg.cuts["你好学习"] = []string{"你好", "学习"}
	svc := newTestService(t, seg)

	// 学习 is within the ceiling but absent from the allowed set, so the
	// override marks it unknown; curriculum position is not consulted.
	report, err := svc.ValidateReading("你好学习", 10, nil, []string{"你好"})
	require.NoError(t, err)

	assert.Equal(t, []string{"学习"}, report.UnknownWords)
	assert.InDelta(t, 0.5, report.UnknownRatio, 1e-9)
	assert.True(t, report.TooHard)
}

func TestValidateReadingBanTokenLimit(t *testing.T) {
	t.Parallel()

	tokens := make([]string, 0, 12)
	words := []string{"aa", "bb", "cc", "dd", "ee", "ff", "gg", "hh", "ii", "jj", "kk", "ll"}
	tokens = append(tokens, words...)

	seg := newFakeSegmenter()
	seg.cuts["text"] = tokens
	svc := newTestService(t, seg)

	report, err := svc.ValidateReading("text", 3, nil, nil)
	require.NoError(t, err)

	require.NotNil(t, report.Suggestions)
	assert.Len(t, report.Suggestions.BanTokens, 10)
	assert.Len(t, report.UnknownWords, 12)
}
