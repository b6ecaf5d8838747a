package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetPublicProfile handles GET /api/u/:username
// No authentication required; only logs the owner marked public are included.
func (s *Server) GetPublicProfile(c *fiber.Ctx) error {
	view, err := s.profileService.PublicProfile(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(view)
}
