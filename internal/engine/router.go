package engine

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the credential routes and the dynamic entity
// routes. The credential routes register first so "officer-credentials"
// never reaches the :entity matcher.
func RegisterRoutes(app *fiber.App, h *Handler, creds *CredentialHandler) {
	api := app.Group("/api")

	api.Get("/officer-credentials", creds.Get)
	api.Put("/officer-credentials", creds.Update)

	api.Get("/:entity", h.List)
	api.Get("/:entity/:id", h.GetByID)
	api.Post("/:entity", h.Create)
	api.Put("/:entity", h.Update)
	api.Put("/:entity/:id", h.Update)
	api.Delete("/:entity", h.Delete)
	api.Delete("/:entity/:id", h.Delete)
}
