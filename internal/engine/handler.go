package engine

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"volunteer-backend/internal/metadata"
	"volunteer-backend/internal/store"
)

// Handler serves every resource endpoint from the descriptor registry.
// There is one parameterized engine rather than per-entity handlers.
type Handler struct {
	store    *store.Store
	registry *metadata.Registry
}

func NewHandler(s *store.Store, reg *metadata.Registry) *Handler {
	return &Handler{store: s, registry: reg}
}

// List handles GET /api/:entity. An `id` query parameter short-circuits
// to a single-row fetch, bypassing pagination and filtering.
func (h *Handler) List(c *fiber.Ctx) error {
	entity, err := h.resolveEntity(c)
	if err != nil {
		return err
	}

	if raw := c.Query("id"); raw != "" {
		id, appErr := parseID(raw)
		if appErr != nil {
			return respondError(c, appErr)
		}
		return h.respondSingle(c, entity, id)
	}

	plan, appErr := ParseListQuery(c, entity)
	if appErr != nil {
		return respondError(c, appErr)
	}

	sql, params := BuildSelectSQL(plan, h.store.Dialect)
	rows, qerr := store.QueryRows(c.Context(), h.store.DB, sql, params...)
	if qerr != nil {
		return fmt.Errorf("list %s: %w", entity.Name, qerr)
	}
	DecodeRows(entity, rows, h.store.Dialect)

	// Ensure non-nil slice for JSON
	if rows == nil {
		rows = []map[string]any{}
	}
	return c.JSON(rows)
}

// GetByID handles GET /api/:entity/:id.
func (h *Handler) GetByID(c *fiber.Ctx) error {
	entity, err := h.resolveEntity(c)
	if err != nil {
		return err
	}
	id, appErr := parseID(c.Params("id"))
	if appErr != nil {
		return respondError(c, appErr)
	}
	return h.respondSingle(c, entity, id)
}

// Create handles POST /api/:entity.
func (h *Handler) Create(c *fiber.Ctx) error {
	entity, err := h.resolveEntity(c)
	if err != nil {
		return err
	}

	body, appErr := parseBody(c)
	if appErr != nil {
		return respondError(c, appErr)
	}

	record, appErr := CreateRecord(c.Context(), h.store, h.registry, entity, body)
	if appErr != nil {
		return respondError(c, appErr)
	}
	return c.Status(201).JSON(record)
}

// Update handles PUT /api/:entity/:id and PUT /api/:entity?id=.
func (h *Handler) Update(c *fiber.Ctx) error {
	entity, err := h.resolveEntity(c)
	if err != nil {
		return err
	}
	id, appErr := requestID(c)
	if appErr != nil {
		return respondError(c, appErr)
	}

	current, appErr := h.load(c, entity, id)
	if appErr != nil {
		return respondError(c, appErr)
	}

	body, appErr := parseBody(c)
	if appErr != nil {
		return respondError(c, appErr)
	}

	record, appErr := UpdateRecord(c.Context(), h.store, entity, id, current, body)
	if appErr != nil {
		return respondError(c, appErr)
	}
	return c.JSON(record)
}

// Delete handles DELETE /api/:entity/:id and DELETE /api/:entity?id=.
// The response carries the deleted row under the entity's envelope key.
func (h *Handler) Delete(c *fiber.Ctx) error {
	entity, err := h.resolveEntity(c)
	if err != nil {
		return err
	}
	id, appErr := requestID(c)
	if appErr != nil {
		return respondError(c, appErr)
	}

	current, appErr := h.load(c, entity, id)
	if appErr != nil {
		return respondError(c, appErr)
	}

	deleted, appErr := DeleteRecord(c.Context(), h.store, entity, id, current)
	if appErr != nil {
		return respondError(c, appErr)
	}

	return c.JSON(fiber.Map{
		"message":                fmt.Sprintf("%s deleted successfully", entity.Singular),
		entity.DeleteEnvelopeKey: deleted,
	})
}

func (h *Handler) respondSingle(c *fiber.Ctx, entity *metadata.Entity, id int64) error {
	row, appErr := h.load(c, entity, id)
	if appErr != nil {
		return respondError(c, appErr)
	}
	return c.JSON(row)
}

func (h *Handler) load(c *fiber.Ctx, entity *metadata.Entity, id int64) (map[string]any, *AppError) {
	return fetchRecord(c.Context(), h.store, entity, id)
}

func (h *Handler) resolveEntity(c *fiber.Ctx) (*metadata.Entity, error) {
	name := c.Params("entity")
	entity := h.registry.GetEntity(name)
	if entity == nil {
		return nil, UnknownEntityError(name)
	}
	return entity, nil
}

// requestID resolves the target identity from the path or, on the
// collection routes, the id query parameter.
func requestID(c *fiber.Ctx) (int64, *AppError) {
	raw := c.Params("id")
	if raw == "" {
		raw = c.Query("id")
	}
	return parseID(raw)
}

func parseID(raw string) (int64, *AppError) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, InvalidIDError()
	}
	return id, nil
}

func parseBody(c *fiber.Ctx) (map[string]any, *AppError) {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return nil, NewAppError("INVALID_PAYLOAD", 400, "Invalid JSON body")
	}
	return body, nil
}

func respondError(c *fiber.Ctx, appErr *AppError) error {
	return c.Status(appErr.Status).JSON(appErr)
}

// ErrorHandler is the fiber app-level error handler: AppErrors keep their
// status and envelope, everything else becomes a 500 with the message
// text only.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return respondError(c, appErr)
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < 500 {
		return c.Status(fiberErr.Code).JSON(&AppError{Message: fiberErr.Message})
	}
	return respondError(c, InternalError(err))
}
