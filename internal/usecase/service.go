package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cv-generator/internal/adapter/repository"
	"cv-generator/internal/domain"
	"cv-generator/internal/model"
	"cv-generator/internal/render"
	"cv-generator/internal/slug"
	"cv-generator/pkg/metrics"

	"github.com/google/uuid"
)

var ErrRendererUnavailable = errors.New("pdf renderer not configured")

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// Service wires normalization, slug allocation and persistence together.
// It holds no per-request state.
type Service struct {
	store    repository.Store
	drafts   repository.DraftCache
	renderer Renderer
	log      *slog.Logger
}

// NewService builds a Service. drafts and renderer may be nil; the matching
// operations then fail or fall back to an in-memory cache.
func NewService(store repository.Store, drafts repository.DraftCache, renderer Renderer, log *slog.Logger) *Service {
	if drafts == nil {
		drafts = repository.NewMemoryDrafts()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, drafts: drafts, renderer: renderer, log: log}
}

// Normalize runs untrusted JSON through the normalizer, counting failures
// under source.
func (s *Service) Normalize(b []byte, source string) (model.CV, error) {
	cv, err := model.NormalizeJSON(b)
	if err != nil {
		metrics.ValidationFailures.WithLabelValues(source).Inc()
		return model.CV{}, err
	}
	return cv, nil
}

// Save normalizes body and stores it under a freshly claimed slug.
func (s *Service) Save(ctx context.Context, body []byte) (string, error) {
	cv, err := s.Normalize(body, "save")
	if err != nil {
		return "", err
	}
	return s.SaveCV(ctx, cv)
}

// SaveCV stores an already normalized CV under a new slug derived from the
// profile name.
func (s *Service) SaveCV(ctx context.Context, cv model.CV) (string, error) {
	if err := model.ValidateCV(cv); err != nil {
		return "", fmt.Errorf("canonical cv rejected: %w", err)
	}
	key, collisions, err := slug.Claim(ctx, cv.Profile.FullName, func(ctx context.Context, candidate string) error {
		return s.store.Create(ctx, candidate, cv)
	})
	if collisions > 0 {
		metrics.SlugCollisions.Add(float64(collisions))
	}
	if err != nil {
		return "", fmt.Errorf("store cv: %w", err)
	}
	metrics.DocumentsSaved.Inc()
	s.log.Info("cv saved", "slug", key, "collisions", collisions)
	return key, nil
}

func (s *Service) Fetch(ctx context.Context, key string) (model.CV, error) {
	cv, err := s.store.Get(ctx, key)
	if err != nil {
		metrics.DocumentsFetched.WithLabelValues("not_found").Inc()
		return model.CV{}, err
	}
	metrics.DocumentsFetched.WithLabelValues("found").Inc()
	return cv, nil
}

func (s *Service) RenderHTML(ctx context.Context, key string) ([]byte, error) {
	cv, err := s.Fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	return render.HTML(cv)
}

func (s *Service) RenderPDF(ctx context.Context, key string) ([]byte, error) {
	html, err := s.RenderHTML(ctx, key)
	if err != nil {
		return nil, err
	}
	if s.renderer == nil {
		return nil, ErrRendererUnavailable
	}
	pdf, err := s.renderer.RenderHTMLToPDF(ctx, string(html))
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return pdf, nil
}

// NewDraft starts an editing session from the blank document. Nothing is
// cached until the first SaveDraft.
func (s *Service) NewDraft() *domain.DraftSession {
	return domain.NewDraftSession()
}

// OpenDraft returns the cached draft for id. A missing draft yields the
// blank document; a draft that no longer normalizes is discarded.
func (s *Service) OpenDraft(ctx context.Context, id uuid.UUID) (*domain.DraftSession, error) {
	key := domain.DraftCacheKey(id)
	b, ok, err := s.drafts.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	sess := &domain.DraftSession{ID: id, CV: model.DefaultCV(), UpdatedAt: time.Now().UTC()}
	if !ok {
		return sess, nil
	}
	cv, err := s.Normalize(b, "draft")
	if err != nil {
		s.log.Warn("discarding unusable draft", "session", id, "error", err)
		if derr := s.drafts.Delete(ctx, key); derr != nil {
			s.log.Error("delete draft failed", "session", id, "error", derr)
		}
		return sess, nil
	}
	sess.CV = cv
	return sess, nil
}

// SaveDraft caches the editor state verbatim. Incomplete drafts are
// allowed; they are only normalized when opened again.
func (s *Service) SaveDraft(ctx context.Context, id uuid.UUID, body []byte) error {
	var probe map[string]interface{}
	if err := json.Unmarshal(body, &probe); err != nil || probe == nil {
		metrics.ValidationFailures.WithLabelValues("draft").Inc()
		return &model.ValidationError{Msg: "Invalid CV payload"}
	}
	return s.drafts.Save(ctx, domain.DraftCacheKey(id), body)
}

func (s *Service) DiscardDraft(ctx context.Context, id uuid.UUID) error {
	return s.drafts.Delete(ctx, domain.DraftCacheKey(id))
}
