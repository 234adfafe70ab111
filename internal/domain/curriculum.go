package domain

// VocabWord is a single curriculum vocabulary entry as exported by the
// backend. The ID is the stable identifier used in pre-tokenized content;
// Hanzi is the surface form used for live segmentation lookups.
type VocabWord struct {
	ID       string `json:"id"`
	Hanzi    string `json:"hanzi"`
	Pinyin   string `json:"pinyin"`
	HSKLevel int    `json:"hskLevel"`
}

// Lesson is one teaching unit in the curriculum. TargetVocabulary holds the
// IDs of the words introduced by this lesson.
type Lesson struct {
	ID               string   `json:"id"`
	HSKLevel         int      `json:"hskLevel"`
	LessonNumber     int      `json:"lessonNumber"`
	Title            string   `json:"title"`
	TargetVocabulary []string `json:"targetVocabulary"`
}

// Token is one segmented unit of content. WordID is empty for tokens the
// backend could not map to a curriculum word (names, rare words); such
// tokens are excluded from comprehension denominators but still surface as
// "unknown" in text validation.
type Token struct {
	WordID string `json:"wordId,omitempty"`
	Hanzi  string `json:"hanzi"`
}

// Story is a reading content item. Content normally arrives pre-tokenized
// by the backend; FullText is a fallback that the snapshot builder runs
// through the segmenter once at load time.
type Story struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	HSKLevel      int     `json:"hskLevel"`
	Difficulty    string  `json:"difficulty,omitempty"`
	FullText      string  `json:"fullText,omitempty"`
	Tokens        []Token `json:"tokens,omitempty"`
	TotalTokens   int     `json:"totalTokens,omitempty"`
	SentenceCount int     `json:"sentenceCount,omitempty"`
}

// Audiobook is an audio content item scored against its transcript tokens.
type Audiobook struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	HSKLevel    int     `json:"hskLevel"`
	Description string  `json:"description,omitempty"`
	FullText    string  `json:"fullText,omitempty"`
	Tokens      []Token `json:"tokens,omitempty"`
	TotalTokens int     `json:"totalTokens,omitempty"`
}

// CurriculumExport is the full payload served by the backend's export
// endpoint and cached on disk between syncs. Words maps surface forms to
// position strings ("hsk1-l3"); the structured lesson data supplements it
// for entries the flat map does not carry.
type CurriculumExport struct {
	Version       string              `json:"version"`
	ExportedAt    string              `json:"exportedAt,omitempty"`
	Words         map[string]string   `json:"words,omitempty"`
	Vocabulary    []VocabWord         `json:"vocabulary,omitempty"`
	Lessons       []Lesson            `json:"lessons,omitempty"`
	LessonOrder   []string            `json:"lessonOrder,omitempty"`
	LessonWordMap map[string][]string `json:"lessonWordMap,omitempty"`
	Stories       []Story             `json:"stories,omitempty"`
	Audiobooks    []Audiobook         `json:"audiobooks,omitempty"`
}

// ContentType filters which content collections a recommendation covers.
type ContentType string

const (
	ContentTypeStory     ContentType = "story"
	ContentTypeAudiobook ContentType = "audiobook"
	ContentTypeAll       ContentType = "all"
)

// Includes reports whether the filter admits items of the given type.
func (c ContentType) Includes(t ContentType) bool {
	return c == ContentTypeAll || c == t
}
