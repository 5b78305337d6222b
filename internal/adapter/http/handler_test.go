package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cv-generator/internal/adapter/repository"
	"cv-generator/internal/model"
	"cv-generator/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct{}

func (stubRenderer) RenderHTMLToPDF(context.Context, string) ([]byte, error) {
	return []byte("%PDF-1.7 stub"), nil
}

func newTestApp(t *testing.T, renderer usecase.Renderer) (*fiber.App, *repository.MemoryStore) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewMemoryStore()
	svc := usecase.NewService(store, repository.NewMemoryDrafts(), renderer, log)
	app := NewApp(AppConfig{MaxBodySize: 1 << 20, Gatherer: prometheus.NewRegistry()}, NewHandler(svc, log))
	return app, store
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, b
}

func TestCreateAndGetCV(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, body := do(t, app, http.MethodPost, "/cv", `{"profile":{"fullName":"Jane Smith","role":"Engineer"},"theme":"purple"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"slug":"jane-smith"}`, string(body))

	resp, body = do(t, app, http.MethodPost, "/cv", `{"profile":{"fullName":"Jane Smith","role":"Engineer"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"slug":"jane-smith-1"}`, string(body))

	resp, body = do(t, app, http.MethodGet, "/cv/jane-smith", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cv model.CV
	require.NoError(t, json.Unmarshal(body, &cv))
	require.Equal(t, "Jane Smith", cv.Profile.FullName)
	require.Equal(t, model.DefaultTheme, cv.Theme)
	require.Equal(t, []string{}, cv.Skills)
}

func TestCreateCVValidationError(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, body := do(t, app, http.MethodPost, "/cv", `{}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.JSONEq(t, `{"error":"Profile name and role are required"}`, string(body))

	resp, _ = do(t, app, http.MethodPost, "/cv", `not json`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

type brokenStore struct{ repository.Store }

func (brokenStore) Create(context.Context, string, model.CV) error { return errors.New("disk full") }

func TestCreateCVStorageFailure(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := usecase.NewService(brokenStore{}, nil, nil, log)
	app := NewApp(AppConfig{MaxBodySize: 1 << 20, Gatherer: prometheus.NewRegistry()}, NewHandler(svc, log))

	resp, body := do(t, app, http.MethodPost, "/cv", `{"profile":{"fullName":"Ada","role":"Engineer"}}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.JSONEq(t, `{"error":"Failed to save CV"}`, string(body))
}

func TestCreateCVMultibyteAccent(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, body := do(t, app, http.MethodPost, "/cv", `{"profile":{"fullName":"Ada","role":"Engineer"},"accentColor":"éé"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"slug":"ada"}`, string(body))
}

func TestGetCVNotFound(t *testing.T) {
	app, store := newTestApp(t, nil)
	store.PutRaw("corrupt", []byte(`{"profile":`))

	for _, path := range []string{"/cv/nobody", "/cv/corrupt", "/cv/nobody/html", "/cv/nobody/pdf"} {
		resp, body := do(t, app, http.MethodGet, path, "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		if !strings.HasSuffix(path, "/pdf") {
			require.JSONEq(t, `{"error":"Not found"}`, string(body), path)
		}
	}
}

func TestRenderRoutes(t *testing.T) {
	app, _ := newTestApp(t, stubRenderer{})
	_, body := do(t, app, http.MethodPost, "/cv", `{"profile":{"fullName":"Ada","role":"Engineer"}}`)
	require.JSONEq(t, `{"slug":"ada"}`, string(body))

	resp, body := do(t, app, http.MethodGet, "/cv/ada/html", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	require.Contains(t, string(body), "<h1>Ada</h1>")

	resp, body = do(t, app, http.MethodGet, "/cv/ada/pdf", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	require.Equal(t, "%PDF-1.7 stub", string(body))
}

func TestPDFWithoutRenderer(t *testing.T) {
	app, _ := newTestApp(t, nil)
	do(t, app, http.MethodPost, "/cv", `{"profile":{"fullName":"Ada","role":"Engineer"}}`)
	resp, _ := do(t, app, http.MethodGet, "/cv/ada/pdf", "")
	require.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestNormalizeRoute(t *testing.T) {
	app, store := newTestApp(t, nil)

	resp, body := do(t, app, http.MethodPost, "/normalize", `{"profile":{"fullName":"Ada","role":"Engineer"},"skills":[1]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cv model.CV
	require.NoError(t, json.Unmarshal(body, &cv))
	require.Equal(t, []string{"1"}, cv.Skills)

	ok, err := store.Exists(context.Background(), "ada")
	require.NoError(t, err)
	require.False(t, ok, "normalize must not persist")

	resp, _ = do(t, app, http.MethodPost, "/normalize", `[]`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDraftRoutes(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, body := do(t, app, http.MethodPost, "/drafts", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		SessionID uuid.UUID `json:"sessionId"`
		Draft     model.CV  `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotEqual(t, uuid.Nil, created.SessionID)
	require.Equal(t, model.DefaultTheme, created.Draft.Theme)

	path := "/drafts/" + created.SessionID.String()
	resp, _ = do(t, app, http.MethodPut, path, `{"profile":{"fullName":"Ada","role":"Engineer"},"theme":"teal"}`)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = do(t, app, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &created))
	require.Equal(t, "Ada", created.Draft.Profile.FullName)
	require.Equal(t, model.ThemeTeal, created.Draft.Theme)

	resp, _ = do(t, app, http.MethodDelete, path, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/drafts/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	app, _ := newTestApp(t, nil)
	resp, _ := do(t, app, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, app, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
