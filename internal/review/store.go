package review

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"shopfront/internal/model"
)

// Rating is a single product's stored rating.
type Rating struct {
	Rating int `json:"rating"`
}

// Store persists per-product ratings to a local JSON file as a mapping of
// product ID to rating. The whole file is loaded at start and rewritten on
// every change; the data set is a handful of entries, not a database.
type Store struct {
	mu      sync.Mutex
	path    string
	ratings map[int]Rating
	logger  zerolog.Logger
}

// NewStore creates a ratings store backed by the given file, loading any
// existing ratings. A missing file is an empty store, not an error.
func NewStore(path string, logger zerolog.Logger) (*Store, error) {
	s := &Store{
		path:    path,
		ratings: make(map[int]Rating),
		logger:  logger.With().Str("component", "review-store").Logger(),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read ratings file %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &s.ratings); err != nil {
		return nil, fmt.Errorf("failed to parse ratings file %s: %w", path, err)
	}

	s.logger.Info().Int("ratings", len(s.ratings)).Str("file", path).Msg("ratings loaded")
	return s, nil
}

// Set stores a rating for the product and writes it through to disk.
// Ratings are 1 to 5 stars.
func (s *Store) Set(productID, rating int) error {
	if rating < 1 || rating > 5 {
		return model.ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ratings[productID] = Rating{Rating: rating}
	if err := s.flush(); err != nil {
		return err
	}

	s.logger.Debug().Int("product_id", productID).Int("rating", rating).Msg("rating stored")
	return nil
}

// Get returns the stored rating for the product, if any.
func (s *Store) Get(productID int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.ratings[productID]
	return r.Rating, ok
}

// All returns a copy of every stored rating keyed by product ID.
func (s *Store) All() map[int]Rating {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[int]Rating, len(s.ratings))
	for id, r := range s.ratings {
		out[id] = r
	}
	return out
}

// flush writes the ratings map to disk. Callers must hold the lock.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.ratings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ratings: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create ratings directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write ratings file %s: %w", s.path, err)
	}
	return nil
}
