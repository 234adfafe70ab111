// Package segment wraps the external Chinese word segmenter behind a small
// interface and filters the punctuation and whitespace tokens it emits.
package segment

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-ego/gse"
)

// punctuation is the fixed set of characters treated as non-words: both
// full-width (Chinese) and half-width (ASCII) punctuation plus whitespace.
// A token made up entirely of these characters is dropped.
const punctuation = "，。！？、；：“”‘’（）【】《》…—·,.!?;:\"'()[]<>-_ \n\t\r"

// Segmenter turns raw text into an ordered sequence of surface tokens and
// accepts curriculum words as preferred segmentation units.
type Segmenter interface {
	// Cut segments text into surface tokens with punctuation and
	// whitespace tokens removed. Each call is independent; no state is
	// carried between calls.
	Cut(text string) []string

	// AddPreferredWord biases segmentation toward treating word as a
	// single unit, so multi-character curriculum words are not split into
	// characters that resolve to the wrong curriculum positions.
	// Registration is idempotent and must be re-applied after every
	// snapshot reload.
	AddPreferredWord(word string)
}

// preferredFrequency is high enough that a registered curriculum word wins
// over its single-character constituents during segmentation.
const preferredFrequency = 1000

// GseSegmenter adapts a gse dictionary segmenter to the Segmenter
// interface. Cuts run concurrently under a read lock; vocabulary
// registration, which happens only on snapshot reload, takes the write
// lock.
type GseSegmenter struct {
	mu  sync.RWMutex
	seg gse.Segmenter
}

// New loads the embedded Chinese dictionary and returns a ready segmenter.
func New() (*GseSegmenter, error) {
	s := &GseSegmenter{}
	if err := s.seg.LoadDict(); err != nil {
		return nil, fmt.Errorf("loading segmentation dictionary: %w", err)
	}
	return s, nil
}

// Cut implements Segmenter.
func (s *GseSegmenter) Cut(text string) []string {
	s.mu.RLock()
	raw := s.seg.Cut(text, true)
	s.mu.RUnlock()
	return Filter(raw)
}

// AddPreferredWord implements Segmenter.
func (s *GseSegmenter) AddPreferredWord(word string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// AddToken only errors on dictionary-file operations, which do not
	// apply to in-memory registration.
	_ = s.seg.AddToken(word, preferredFrequency)
}

// Filter drops tokens that are empty, whitespace, or pure punctuation.
func Filter(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if strings.TrimSpace(tok) == "" || isPunctuation(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func isPunctuation(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune(punctuation, r) {
			return false
		}
	}
	return true
}
