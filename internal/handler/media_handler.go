package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cargobridge/internal/domain"
	"cargobridge/internal/middleware"
	"cargobridge/internal/service/media"
)

type MediaHandler struct {
	mediaService media.Service
}

func NewMediaHandler(mediaService media.Service) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload accepts one multipart file for a ticket or case.
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	entity := domain.AttachmentEntity(c.Params("entity"))
	entityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid entity ID")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Could not read file")
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	att, err := h.mediaService.Upload(c.Context(), middleware.GetCurrentUser(c), entity, entityID,
		fileHeader.Filename, fileHeader.Size, mimeType, file)
	if err != nil {
		return mapMediaErr(err)
	}
	return c.Status(fiber.StatusCreated).JSON(att)
}

func (h *MediaHandler) ListForEntity(c *fiber.Ctx) error {
	entity := domain.AttachmentEntity(c.Params("entity"))
	entityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid entity ID")
	}

	attachments, err := h.mediaService.ListForEntity(c.Context(), middleware.GetCurrentUser(c), entity, entityID)
	if err != nil {
		return mapMediaErr(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"attachments": attachments})
}

func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid attachment ID")
	}

	if err := h.mediaService.Delete(c.Context(), middleware.GetCurrentUser(c), id); err != nil {
		return mapMediaErr(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Attachment deleted",
	})
}

func mapMediaErr(err error) error {
	switch err {
	case media.ErrAttachmentNotFound:
		return middleware.NotFound("Attachment not found")
	case media.ErrEntityNotFound:
		return middleware.NotFound("Attachment target not found")
	case media.ErrAccessDenied:
		return middleware.Forbidden("Access denied")
	case media.ErrInvalidEntity:
		return middleware.BadRequest("Invalid attachment entity type")
	case media.ErrFileTooLarge:
		return middleware.BadRequest("File exceeds the size limit")
	}
	return err
}
