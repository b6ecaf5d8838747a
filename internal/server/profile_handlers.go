package server

import (
	"io"

	"tone/internal/models"
	"tone/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profile
// A user who has not set up their profile yet gets a null profile, not a 404.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.Get(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"profile": profile})
}

// UpdateMyProfile handles PUT /api/profile
// Creates the profile on first save, updates it afterwards.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Username    string `json:"username"`
		DisplayName string `json:"display_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.Upsert(c.UserContext(), service.UpsertProfileInput{
		UserID:      currentUserID(c),
		Username:    req.Username,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"profile": profile})
}

// UploadAvatar handles POST /api/profile/avatar (multipart field "avatar")
func (s *Server) UploadAvatar(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Avatar file is required"))
	}
	if fileHeader.Size > service.MaxAvatarSize {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Avatar exceeds the 2MB limit"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read avatar file"))
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxAvatarSize+1))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	url, err := s.avatarService.Upload(c.UserContext(), currentUserID(c), data)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"avatar_url": url})
}
