package api

import "github.com/IsakPar/hanzi-vocab-val/internal/domain"

// Request DTOs. Required scalar fields are pointers so that an absent
// field fails validation while a present-but-empty value passes through
// to the engine, which treats empty text as a normal input.

// PositionPayload is a learner position in a request body.
type PositionPayload struct {
	HSK    int `json:"hsk" validate:"required,gt=0"`
	Lesson int `json:"lesson" validate:"required,gt=0"`
}

// ValidateTextRequest is the body of POST /validate.
type ValidateTextRequest struct {
	Text         *string          `json:"text" validate:"required"`
	UserPosition *PositionPayload `json:"user_position" validate:"required"`
	TargetWords  []string         `json:"target_words"`
}

// ValidateLessonRequest is the body of POST /validate-lesson. FocusWords
// must be present (an empty list is allowed and means no new vocabulary).
type ValidateLessonRequest struct {
	Text         *string  `json:"text" validate:"required"`
	LessonNumber *int     `json:"lesson_number" validate:"required"`
	HSKLevel     int      `json:"hsk_level"`
	FocusWords   []string `json:"focus_words" validate:"required"`
}

// ReadingPayload is generated reading content submitted for checking.
type ReadingPayload struct {
	Text string `json:"text"`
}

// ValidateReadingRequest is the body of POST /validate/reading. When
// AllowedWords is non-empty it replaces curriculum lookup entirely.
type ValidateReadingRequest struct {
	Reading            *ReadingPayload `json:"reading" validate:"required"`
	UserLessonPosition *int            `json:"user_lesson_position" validate:"required"`
	HSKLevel           int             `json:"hsk_level"`
	FocusWords         []string        `json:"focus_words"`
	AllowedWords       []string        `json:"allowed_words"`
}

// ValidateStructureRequest is the body of POST /validate/structure.
type ValidateStructureRequest struct {
	Exercises    []domain.Exercise `json:"exercises" validate:"required"`
	AllowedWords []string          `json:"allowed_words"`
}

// RecommendRequest is the body of POST /recommend.
type RecommendRequest struct {
	LessonID     string `json:"lesson_id" validate:"required"`
	ContentType  string `json:"content_type" validate:"omitempty,oneof=story audiobook all"`
	ItemsPerTier int    `json:"items_per_tier" validate:"omitempty,min=1,max=20"`
}

// Response DTOs for the endpoints without an engine-owned report type.

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status           string `json:"status"`
	CurriculumLoaded bool   `json:"curriculum_loaded"`
	WordCount        int    `json:"word_count"`
	Version          string `json:"version"`
	Environment      string `json:"environment"`
}

// VersionResponse is the body of GET /version.
type VersionResponse struct {
	Version   string `json:"version"`
	WordCount int    `json:"word_count"`
	Loaded    bool   `json:"loaded"`
}

// VocabularyResponse is the body of GET /vocabulary.
type VocabularyResponse struct {
	Words     []string `json:"words"`
	Count     int      `json:"count"`
	MaxLesson int      `json:"max_lesson"`
}
