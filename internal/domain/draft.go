package domain

import (
	"time"

	"cv-generator/internal/model"

	"github.com/google/uuid"
)

// DraftKey prefixes every cached draft.
const DraftKey = "cv-generator-draft"

// DraftSession is one editor's in-progress CV. It is passed explicitly
// between requests; nothing about it lives in process-wide state.
type DraftSession struct {
	ID        uuid.UUID `json:"sessionId"`
	CV        model.CV  `json:"draft"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewDraftSession() *DraftSession {
	return &DraftSession{ID: uuid.New(), CV: model.DefaultCV(), UpdatedAt: time.Now().UTC()}
}

// DraftCacheKey is the cache key for the session id.
func DraftCacheKey(id uuid.UUID) string {
	return DraftKey + ":" + id.String()
}
