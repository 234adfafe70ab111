// Package recommend scores curriculum content against a learner's
// cumulative known vocabulary and buckets it into difficulty tiers.
package recommend

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/IsakPar/hanzi-vocab-val/internal/curriculum"
	"github.com/IsakPar/hanzi-vocab-val/internal/domain"
)

const (
	// unknownPreviewLimit caps the unknown-word preview per item; the
	// full unknown count is still reported.
	unknownPreviewLimit = 5

	// DefaultItemsPerTier is used when the caller does not supply a cap.
	DefaultItemsPerTier = 3
)

// Service produces tiered content recommendations from the current
// snapshot. Calls are pure reads; comprehension math runs per request but
// the cumulative known sets it depends on are folded once per load.
type Service struct {
	store  *curriculum.Store
	logger *slog.Logger
}

// NewService creates a recommendation service backed by the snapshot store.
func NewService(store *curriculum.Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger.With(slog.String("component", "recommend"))}
}

// UnknownWord is one vocabulary item the learner has not reached yet.
type UnknownWord struct {
	WordID string `json:"wordId"`
	Hanzi  string `json:"hanzi"`
}

// ScoredItem is one content item with its comprehension score for the
// requesting learner.
type ScoredItem struct {
	Type          domain.ContentType `json:"type"`
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	HSKLevel      int                `json:"hskLevel"`
	Comprehension float64            `json:"comprehension"`
	TotalTokens   int                `json:"totalTokens"`
	UnknownWords  []UnknownWord      `json:"unknownWords"`
	UnknownCount  int                `json:"unknownCount"`

	// rawRatio keeps full precision for tier placement; Comprehension is
	// the rounded display value.
	rawRatio float64
}

// Tier is one difficulty bucket in a recommendation response.
type Tier struct {
	Label       string       `json:"label"`
	Description string       `json:"description"`
	Emoji       string       `json:"emoji"`
	Range       [2]float64   `json:"range"`
	Items       []ScoredItem `json:"items"`
}

// Recommendation is the full tiered response for one learner position.
type Recommendation struct {
	LessonID       string                   `json:"lessonId"`
	KnownWordCount int                      `json:"knownWordCount"`
	ContentType    domain.ContentType       `json:"contentType"`
	Tiers          map[domain.TierName]Tier `json:"tiers"`
	ExcludedCount  int                      `json:"excludedCount"`
	GeneratedAt    string                   `json:"generatedAt"`
}

// Recommend scores every content item admitted by the type filter against
// the cumulative known set at lessonID and shapes the results into the
// three fixed tiers. Items below the exclusion threshold are counted but
// not returned. An unknown lesson identifier yields an empty known set,
// which makes everything look unknown; that is deliberate conservatism
// and is logged as a data-quality signal rather than failing the call.
func (s *Service) Recommend(lessonID string, contentType domain.ContentType, itemsPerTier int) (*Recommendation, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	if itemsPerTier <= 0 {
		itemsPerTier = DefaultItemsPerTier
	}

	known, ok := snap.KnownWords(lessonID)
	if !ok {
		s.logger.Warn("lesson id not in curriculum, treating known set as empty",
			slog.String("lesson_id", lessonID))
		known = map[string]struct{}{}
	}

	var scored []ScoredItem
	if contentType.Includes(domain.ContentTypeStory) {
		for _, story := range snap.Stories() {
			item := scoreTokens(story.Tokens, known)
			item.Type = domain.ContentTypeStory
			item.ID = story.ID
			item.Title = story.Title
			item.HSKLevel = story.HSKLevel
			item.TotalTokens = story.TotalTokens
			scored = append(scored, item)
		}
	}
	if contentType.Includes(domain.ContentTypeAudiobook) {
		for _, ab := range snap.Audiobooks() {
			item := scoreTokens(ab.Tokens, known)
			item.Type = domain.ContentTypeAudiobook
			item.ID = ab.ID
			item.Title = ab.Title
			item.HSKLevel = ab.HSKLevel
			item.TotalTokens = ab.TotalTokens
			scored = append(scored, item)
		}
	}

	// Stable sort so equally comprehensible items keep content-load order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].rawRatio > scored[j].rawRatio
	})

	tiers := make(map[domain.TierName]Tier, len(domain.Tiers))
	excluded := 0
	for _, spec := range domain.Tiers {
		items := make([]ScoredItem, 0, itemsPerTier)
		for _, item := range scored {
			if !spec.Contains(item.rawRatio) {
				continue
			}
			if len(items) == itemsPerTier {
				break
			}
			items = append(items, item)
		}
		tiers[spec.Name] = Tier{
			Label:       spec.Label,
			Description: spec.Description,
			Emoji:       spec.Emoji,
			Range:       [2]float64{spec.Min, spec.Max},
			Items:       items,
		}
	}
	for _, item := range scored {
		if item.rawRatio < domain.ExclusionThreshold {
			excluded++
		}
	}

	rec := &Recommendation{
		LessonID:       lessonID,
		KnownWordCount: len(known),
		ContentType:    contentType,
		Tiers:          tiers,
		ExcludedCount:  excluded,
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	s.logger.Debug("recommendation built",
		slog.String("lesson_id", lessonID),
		slog.Int("scored", len(scored)),
		slog.Int("excluded", excluded))
	return rec, nil
}

// scoreTokens computes token-level comprehension for one content item.
//
// Only tokens carrying a curriculum identifier enter the denominator;
// an item with none is vacuously fully comprehensible (ratio 1.0, no
// unknowns), which avoids division by zero and avoids penalizing content
// with no tracked vocabulary. The ratio is occurrence-weighted: a word
// repeated ten times contributes ten denominator entries. Unknown words
// are collected uniquely in first-occurrence order.
func scoreTokens(tokens []domain.Token, known map[string]struct{}) ScoredItem {
	var denominator, knownCount int
	seen := make(map[string]struct{})
	var unknown []UnknownWord

	for _, tok := range tokens {
		if tok.WordID == "" {
			continue
		}
		denominator++
		if _, ok := known[tok.WordID]; ok {
			knownCount++
			continue
		}
		if _, dup := seen[tok.WordID]; dup {
			continue
		}
		seen[tok.WordID] = struct{}{}
		unknown = append(unknown, UnknownWord{WordID: tok.WordID, Hanzi: tok.Hanzi})
	}

	ratio := 1.0
	if denominator > 0 {
		ratio = float64(knownCount) / float64(denominator)
	}

	preview := unknown
	if len(preview) > unknownPreviewLimit {
		preview = preview[:unknownPreviewLimit]
	}
	if preview == nil {
		preview = []UnknownWord{}
	}

	return ScoredItem{
		Comprehension: round3(ratio),
		UnknownWords:  preview,
		UnknownCount:  len(unknown),
		rawRatio:      ratio,
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
