package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cv-generator/internal/model"
	"cv-generator/internal/slug"
)

var (
	// ErrNotFound covers missing records as well as unreadable or invalid
	// ones; callers never learn which.
	ErrNotFound = errors.New("cv not found")
	// ErrSlugTaken is returned by Create when the slug already has a record.
	ErrSlugTaken = slug.ErrTaken
	ErrBadSlug   = errors.New("invalid slug")
)

// Store persists CV documents keyed by slug. Get always re-normalizes what
// it reads.
type Store interface {
	Put(ctx context.Context, slug string, cv model.CV) error
	Create(ctx context.Context, slug string, cv model.CV) error
	Get(ctx context.Context, slug string) (model.CV, error)
	Exists(ctx context.Context, slug string) (bool, error)
}

// encodeCV produces the canonical on-disk form: two-space indented JSON.
func encodeCV(cv model.CV) ([]byte, error) {
	b, err := json.MarshalIndent(cv, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal cv: %w", err)
	}
	return b, nil
}

func decodeCV(key string, b []byte) (model.CV, error) {
	cv, err := model.NormalizeJSON(b)
	if err != nil {
		return model.CV{}, notFound(key, err)
	}
	return cv, nil
}

func notFound(key string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return fmt.Errorf("%s: %w (%v)", key, ErrNotFound, cause)
}

func taken(key string) error {
	return fmt.Errorf("%s: %w", key, ErrSlugTaken)
}

func checkWriteSlug(s string) error {
	if !slug.Valid(s) {
		return fmt.Errorf("%q: %w", s, ErrBadSlug)
	}
	return nil
}
