package server

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/petsivet/petsi-backend/internal/documents"
)

type renameRequest struct {
	Name string `json:"name"`
}

type createFolderRequest struct {
	Name           string `json:"name"`
	ParentFolderID string `json:"parentFolderId"`
}

// fail maps a service error onto the wire: validation failures become 400
// with the field name, everything else becomes the uniform 500 envelope.
// The original error is logged server-side and never reaches the client.
func (s *Server) fail(c *fiber.Ctx, err error, publicMsg string) error {
	var vErr *documents.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Error()})
	}

	s.logger.Error().Err(err).Str("path", c.Path()).Msg(publicMsg)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": publicMsg})
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "OK", "message": "Veterinaria backend is running"})
}

func (s *Server) listFolders(c *fiber.Ctx) error {
	folders, err := s.docs.ListFolders(c.UserContext())
	if err != nil {
		return s.fail(c, err, "Failed to list folders")
	}
	return c.JSON(folders)
}

func (s *Server) listFiles(c *fiber.Ctx) error {
	folderID := c.Params("folderId")
	if folderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Folder ID is required"})
	}

	files, err := s.docs.ListFiles(c.UserContext(), folderID)
	if err != nil {
		return s.fail(c, err, "Failed to list files")
	}
	return c.JSON(files)
}

func (s *Server) createFolder(c *fiber.Ctx) error {
	var req createFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Folder name is required"})
	}

	folder, err := s.docs.CreateFolder(c.UserContext(), req.Name, req.ParentFolderID)
	if err != nil {
		return s.fail(c, err, "Failed to create folder")
	}
	return c.JSON(folder)
}

func (s *Server) renameFolder(c *fiber.Ctx) error {
	folderID := c.Params("folderId")
	if folderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Folder ID is required"})
	}

	var req renameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "New folder name is required"})
	}

	folder, err := s.docs.RenameFolder(c.UserContext(), folderID, req.Name)
	if err != nil {
		return s.fail(c, err, "Failed to rename folder")
	}
	return c.JSON(folder)
}

func (s *Server) deleteFolder(c *fiber.Ctx) error {
	folderID := c.Params("folderId")
	if folderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Folder ID is required"})
	}

	if err := s.docs.Delete(c.UserContext(), folderID); err != nil {
		return s.fail(c, err, "Failed to delete folder")
	}
	return c.JSON(fiber.Map{"success": true})
}

func (s *Server) uploadFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded"})
	}

	// Enforced before the proxy service is invoked; a payload of exactly
	// the ceiling is accepted, one byte more is rejected.
	if fileHeader.Size > s.cfg.MaxUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": fmt.Sprintf("File exceeds the maximum upload size of %d bytes", s.cfg.MaxUploadBytes),
		})
	}

	content, err := fileHeader.Open()
	if err != nil {
		return s.fail(c, err, "Failed to upload file")
	}
	defer content.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	uploaded, err := s.docs.Upload(c.UserContext(), content, fileHeader.Filename, mimeType, c.FormValue("folderId"))
	if err != nil {
		return s.fail(c, err, "Failed to upload file")
	}
	return c.JSON(uploaded)
}

func (s *Server) renameFile(c *fiber.Ctx) error {
	fileID := c.Params("fileId")
	if fileID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File ID is required"})
	}

	var req renameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "New file name is required"})
	}

	file, err := s.docs.RenameFile(c.UserContext(), fileID, req.Name)
	if err != nil {
		return s.fail(c, err, "Failed to rename file")
	}
	return c.JSON(file)
}

func (s *Server) downloadFile(c *fiber.Ctx) error {
	fileID := c.Params("fileId")
	if fileID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File ID is required"})
	}

	meta, data, err := s.docs.Download(c.UserContext(), fileID)
	if err != nil {
		return s.fail(c, err, "Failed to download file")
	}

	c.Set(fiber.HeaderContentType, meta.MimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", meta.Name))
	return c.Send(data)
}

func (s *Server) deleteFile(c *fiber.Ctx) error {
	fileID := c.Params("fileId")
	if fileID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File ID is required"})
	}

	if err := s.docs.Delete(c.UserContext(), fileID); err != nil {
		return s.fail(c, err, "Failed to delete file")
	}
	return c.JSON(fiber.Map{"success": true})
}

func (s *Server) listInventario(c *fiber.Ctx) error {
	products, err := s.inventario.List(c.UserContext())
	if err != nil {
		return s.fail(c, err, "Failed to read inventory")
	}
	return c.JSON(products)
}

func (s *Server) listCitas(c *fiber.Ctx) error {
	citas, err := s.citas.List(c.UserContext())
	if err != nil {
		return s.fail(c, err, "Failed to read appointments")
	}
	return c.JSON(citas)
}

func (s *Server) getDashboard(c *fiber.Ctx) error {
	summary, err := s.dashboard.Summarize(c.UserContext())
	if err != nil {
		return s.fail(c, err, "Failed to build dashboard summary")
	}
	return c.JSON(summary)
}
