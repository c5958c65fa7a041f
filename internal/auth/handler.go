package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"volunteer-backend/internal/engine"
)

// Handler exposes the login endpoint.
type Handler struct {
	authenticator Authenticator
	jwtSecret     string
}

func NewHandler(a Authenticator, jwtSecret string) *Handler {
	return &Handler{authenticator: a, jwtSecret: jwtSecret}
}

type loginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// Login authenticates an id/password pair and returns a signed token
// together with the matched account.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return engine.NewAppError("INVALID_BODY", fiber.StatusBadRequest, "Invalid request body")
	}
	if req.ID == "" || req.Password == "" {
		return engine.NewAppError("MISSING_CREDENTIALS", fiber.StatusBadRequest, "ID and password are required")
	}

	user, err := h.authenticator.Authenticate(c.Context(), req.ID, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return engine.NewAppError("INVALID_CREDENTIALS", fiber.StatusUnauthorized, "Invalid credentials")
		}
		return engine.InternalError(err)
	}

	token, err := GenerateToken(req.ID, user.Role, h.jwtSecret)
	if err != nil {
		return engine.InternalError(err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"role":  user.Role,
		"user":  user.Record,
	})
}

// RegisterRoutes mounts the auth endpoints on the /api group.
func (h *Handler) RegisterRoutes(api fiber.Router) {
	api.Post("/auth/login", h.Login)
}
