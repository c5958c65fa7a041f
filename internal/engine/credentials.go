package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"volunteer-backend/internal/store"
)

// CredentialHandler serves the officer credential resource. It is keyed
// by officerId rather than a numeric identity and exposes read and
// password-update only, so it sits outside the dynamic descriptor routes.
type CredentialHandler struct {
	store *store.Store
}

func NewCredentialHandler(s *store.Store) *CredentialHandler {
	return &CredentialHandler{store: s}
}

const credentialColumns = `id, officer_id AS "officerId", password, updated_at AS "updatedAt"`

// Get handles GET /api/officer-credentials. The officerId parameter
// defaults to the well-known row.
func (h *CredentialHandler) Get(c *fiber.Ctx) error {
	officerID := c.Query("officerId")
	if officerID == "" {
		officerID = store.WellKnownOfficerID
	}

	row, appErr := h.fetch(c, officerID)
	if appErr != nil {
		return respondError(c, appErr)
	}
	return c.JSON(row)
}

// Update handles PUT /api/officer-credentials?officerId=. Only the
// password can change; updatedAt refreshes alongside it.
func (h *CredentialHandler) Update(c *fiber.Ctx) error {
	officerID := strings.TrimSpace(c.Query("officerId"))
	if officerID == "" {
		return respondError(c, NewAppError("MISSING_OFFICER_ID", 400, "Officer ID is required"))
	}

	var body struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, NewAppError("INVALID_PAYLOAD", 400, "Invalid JSON body"))
	}
	password := strings.TrimSpace(body.Password)
	if password == "" {
		return respondError(c, NewAppError("MISSING_PASSWORD", 400, "Password is required"))
	}

	if _, appErr := h.fetch(c, officerID); appErr != nil {
		return respondError(c, appErr)
	}

	pb := h.store.Dialect.NewParamBuilder()
	sql := fmt.Sprintf("UPDATE officer_credentials SET password = %s, updated_at = %s WHERE officer_id = %s",
		pb.Add(password), pb.Add(nowISO()), pb.Add(officerID))
	affected, err := store.Exec(c.Context(), h.store.DB, sql, pb.Params()...)
	if err != nil {
		return fmt.Errorf("update officer credentials: %w", err)
	}
	if affected == 0 {
		// Row vanished between the existence check and the update.
		return respondError(c, NewAppError("UPDATE_FAILED", 500, "Failed to update officer credentials"))
	}

	row, appErr := h.fetch(c, officerID)
	if appErr != nil {
		return respondError(c, appErr)
	}
	return c.JSON(row)
}

func (h *CredentialHandler) fetch(c *fiber.Ctx, officerID string) (map[string]any, *AppError) {
	pb := h.store.Dialect.NewParamBuilder()
	sql := fmt.Sprintf("SELECT %s FROM officer_credentials WHERE officer_id = %s",
		credentialColumns, pb.Add(officerID))
	row, err := store.QueryRow(c.Context(), h.store.DB, sql, pb.Params()...)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NewAppError("NOT_FOUND", 404, "Officer credentials not found")
		}
		return nil, InternalError(err)
	}
	return row, nil
}
