package http

import (
	"errors"
	"log/slog"

	"cv-generator/internal/adapter/repository"
	"cv-generator/internal/model"
	"cv-generator/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	svc *usecase.Service
	log *slog.Logger
}

func NewHandler(svc *usecase.Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, log: log}
}

func errorBody(msg string) fiber.Map {
	return fiber.Map{"error": msg}
}

func (h *Handler) notFound(c *fiber.Ctx, err error) error {
	h.log.Debug("cv lookup failed", "slug", c.Params("slug"), "error", err)
	return c.Status(fiber.StatusNotFound).JSON(errorBody("Not found"))
}

// CreateCV normalizes the body and stores it under a new slug. Every
// failure is a 400; storage causes are logged but not echoed.
func (h *Handler) CreateCV(c *fiber.Ctx) error {
	key, err := h.svc.Save(c.UserContext(), c.Body())
	if err != nil {
		h.log.Error("save cv failed", "error", err)
		if errors.Is(err, model.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(errorBody(err.Error()))
		}
		return c.Status(fiber.StatusBadRequest).JSON(errorBody("Failed to save CV"))
	}
	return c.JSON(fiber.Map{"slug": key})
}

// GetCV answers 404 for every failure so storage problems stay private.
func (h *Handler) GetCV(c *fiber.Ctx) error {
	cv, err := h.svc.Fetch(c.UserContext(), c.Params("slug"))
	if err != nil {
		return h.notFound(c, err)
	}
	return c.JSON(cv)
}

func (h *Handler) GetCVHTML(c *fiber.Ctx) error {
	page, err := h.svc.RenderHTML(c.UserContext(), c.Params("slug"))
	if err != nil {
		return h.notFound(c, err)
	}
	c.Type("html", "utf-8")
	return c.Send(page)
}

func (h *Handler) GetCVPDF(c *fiber.Ctx) error {
	pdf, err := h.svc.RenderPDF(c.UserContext(), c.Params("slug"))
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrRendererUnavailable):
		return c.Status(fiber.StatusNotImplemented).JSON(errorBody(err.Error()))
	case errors.Is(err, repository.ErrNotFound):
		return h.notFound(c, err)
	default:
		h.log.Error("render pdf failed", "slug", c.Params("slug"), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorBody("Failed to render CV"))
	}
	c.Type("pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+c.Params("slug")+`.pdf"`)
	return c.Send(pdf)
}

// Normalize previews an import: the canonical document or the reason it
// was rejected. Nothing is stored.
func (h *Handler) Normalize(c *fiber.Ctx) error {
	cv, err := h.svc.Normalize(c.Body(), "import")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(err.Error()))
	}
	return c.JSON(cv)
}

func (h *Handler) CreateDraft(c *fiber.Ctx) error {
	return c.Status(fiber.StatusCreated).JSON(h.svc.NewDraft())
}

func (h *Handler) GetDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody("invalid session id"))
	}
	sess, err := h.svc.OpenDraft(c.UserContext(), id)
	if err != nil {
		h.log.Error("open draft failed", "session", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorBody("Failed to load draft"))
	}
	return c.JSON(sess)
}

func (h *Handler) PutDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody("invalid session id"))
	}
	if err := h.svc.SaveDraft(c.UserContext(), id, c.Body()); err != nil {
		if errors.Is(err, model.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(errorBody(err.Error()))
		}
		h.log.Error("save draft failed", "session", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorBody("Failed to save draft"))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) DeleteDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody("invalid session id"))
	}
	if err := h.svc.DiscardDraft(c.UserContext(), id); err != nil {
		h.log.Error("discard draft failed", "session", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorBody("Failed to discard draft"))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
