package server

import (
	"tone/internal/models"
	"tone/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SearchItems handles GET /api/items/search?q=
func (s *Server) SearchItems(c *fiber.Ctx) error {
	items, err := s.itemService.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"items": items})
}

// CreateItem handles POST /api/items
// Used when a search comes up empty and the user adds the item themselves.
func (s *Server) CreateItem(c *fiber.Ctx) error {
	var req struct {
		Title    string `json:"title"`
		Category string `json:"category"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item, err := s.itemService.Create(c.UserContext(), service.CreateItemInput{
		Title:    req.Title,
		Category: req.Category,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}
