package handler

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gpa-go-api/internal/dto"
	"github.com/noah-isme/gpa-go-api/internal/service"
	"github.com/noah-isme/gpa-go-api/internal/utils"
)

// SessionHandler wires calculation session HTTP routes.
type SessionHandler struct {
	sessions     service.SessionService
	calculations service.CalculationService
	logger       zerolog.Logger
}

// NewSessionHandler constructs the handler.
func NewSessionHandler(sessions service.SessionService, calculations service.CalculationService, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions:     sessions,
		calculations: calculations,
		logger:       logger.With().Str("component", "session_handler").Logger(),
	}
}

// Register attaches session endpoints to the router group.
func (h *SessionHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id/count", h.setCount)
	router.Patch("/:id/subjects/:subjectID", h.updateSubject)
	router.Post("/:id/calculate", h.calculate)
	router.Post("/:id/export", h.export)
	router.Post("/:id/dismiss", h.dismiss)
}

func (h *SessionHandler) create(c *fiber.Ctx) error {
	var payload dto.SessionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.sessions.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "session created", session)
}

func (h *SessionHandler) get(c *fiber.Ctx) error {
	session, err := h.sessions.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "session retrieved", session)
}

func (h *SessionHandler) setCount(c *fiber.Ctx) error {
	var payload dto.SubjectCountRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.sessions.SetSubjectCount(c.Context(), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "subject count updated", session)
}

func (h *SessionHandler) updateSubject(c *fiber.Ctx) error {
	var payload dto.SubjectUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.sessions.UpdateSubject(c.Context(), c.Params("id"), c.Params("subjectID"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "subject updated", session)
}

func (h *SessionHandler) calculate(c *fiber.Ctx) error {
	session, err := h.calculations.Calculate(c.Context(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "calculation completed", session)
}

func (h *SessionHandler) export(c *fiber.Ctx) error {
	document, filename, err := h.calculations.Export(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrNoResult) {
			// Nothing to export is not a failure; the gesture simply does
			// nothing.
			return c.SendStatus(fiber.StatusNoContent)
		}
		return h.handleError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(document)
}

func (h *SessionHandler) dismiss(c *fiber.Ctx) error {
	session, err := h.calculations.Dismiss(c.Context(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "result dismissed", session)
}

func (h *SessionHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "session not found")
	case errors.Is(err, service.ErrSubjectNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "subject not found")
	case errors.Is(err, service.ErrEmptyInput), errors.Is(err, service.ErrIncompleteData):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrExportFailed):
		return utils.SendError(c, fiber.StatusBadGateway, service.ErrExportFailed.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
