package server

import (
	"tone/internal/models"
	"tone/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetLogs handles GET /api/logs
// Returns the caller's full log history, private entries included.
func (s *Server) GetLogs(c *fiber.Ctx) error {
	logs, err := s.logService.List(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"logs": logs})
}

// CreateLog handles POST /api/logs
func (s *Server) CreateLog(c *fiber.Ctx) error {
	var req struct {
		ItemID   uint   `json:"item_id"`
		Stamp    string `json:"stamp"`
		Memo     string `json:"memo"`
		IsPublic *bool  `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	log, err := s.logService.Create(c.UserContext(), service.CreateLogInput{
		UserID:   currentUserID(c),
		ItemID:   req.ItemID,
		Stamp:    req.Stamp,
		Memo:     req.Memo,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(log)
}

// UpdateLog handles PUT /api/logs/:id
// Absent fields are left unchanged; an explicit empty memo clears it.
func (s *Server) UpdateLog(c *fiber.Ctx) error {
	logID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Stamp    *string `json:"stamp"`
		Memo     *string `json:"memo"`
		IsPublic *bool   `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	log, err := s.logService.Update(c.UserContext(), service.UpdateLogInput{
		UserID:   currentUserID(c),
		LogID:    logID,
		Stamp:    req.Stamp,
		Memo:     req.Memo,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(log)
}

// DeleteLog handles DELETE /api/logs/:id
func (s *Server) DeleteLog(c *fiber.Ctx) error {
	logID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.logService.Delete(c.UserContext(), currentUserID(c), logID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Log deleted"})
}
