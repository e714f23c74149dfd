package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"alfredoptarigan/ai-interviewer/internal/models"
	"alfredoptarigan/ai-interviewer/internal/repositories"
	"alfredoptarigan/ai-interviewer/internal/services"
)

// UploadHandler ingests context PDFs (candidate resume, role description)
// into the memory store so feedback generation can draw on them.
type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	pdfParser      services.PDFParserService
	chunker        services.TextChunker
	memory         services.MemoryStore
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	chunker services.TextChunker,
	memory services.MemoryStore,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		pdfParser:      pdfParser,
		chunker:        chunker,
		memory:         memory,
		maxFileSize:    maxFileSize,
	}
}

// uploadFields maps multipart field names to stored doc types.
var uploadFields = []struct {
	Field   string
	DocType string
}{
	{"resume", services.DocTypeResume},
	{"role_description", services.DocTypeRole},
}

func (h *UploadHandler) HandleContextUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	ctx := c.UserContext()
	var responses []models.UploadResponse

	for _, field := range uploadFields {
		files, exists := form.File[field.Field]
		if !exists || len(files) == 0 {
			continue
		}
		file := files[0]

		if file.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("%s file too large. Max size: %d bytes", field.Field, h.maxFileSize),
			})
		}

		filename, filePath, err := h.storageService.SaveFile(file, field.DocType)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to save %s file: %v", field.Field, err),
			})
		}

		content, err := h.pdfParser.ExtractText(filePath)
		if err != nil {
			h.storageService.DeleteFile(filename)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to parse %s PDF: %v", field.Field, err),
			})
		}

		doc := models.Document{
			ID:               uuid.New(),
			Filename:         filename,
			OriginalFileName: file.Filename,
			DocType:          field.DocType,
			FilePath:         filePath,
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		}

		if err := h.docRepo.Create(&doc); err != nil {
			h.storageService.DeleteFile(filename)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to save %s document record: %v", field.Field, err),
			})
		}

		// Index the chunks, best effort: a missing snippet degrades recall,
		// it does not fail the upload.
		for _, chunk := range h.chunker.ChunkText(content.Text, 1000) {
			if err := h.memory.StoreSnippet(ctx, doc.ID.String(), field.DocType, chunk); err != nil {
				log.WithError(err).WithField("document_id", doc.ID).Warn("failed to index context chunk")
			}
		}

		responses = append(responses, models.UploadResponse{
			ID:           doc.ID.String(),
			Filename:     doc.Filename,
			OriginalName: doc.OriginalFileName,
			DocType:      doc.DocType,
		})
	}

	if len(responses) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No valid files uploaded. Please upload 'resume' and/or 'role_description' as PDF files.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Files uploaded successfully",
		"documents": responses,
	})
}

// HandleListDocuments handles GET /context/documents. Lists stored context
// documents of one type (doc_type query parameter).
func (h *UploadHandler) HandleListDocuments(c *fiber.Ctx) error {
	docType := c.Query("doc_type")
	if docType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "doc_type query parameter is required",
		})
	}

	docs, err := h.docRepo.FindByDocType(docType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list documents",
		})
	}

	responses := make([]models.UploadResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, models.UploadResponse{
			ID:           doc.ID.String(),
			Filename:     doc.Filename,
			OriginalName: doc.OriginalFileName,
			DocType:      doc.DocType,
		})
	}

	return c.JSON(fiber.Map{
		"documents": responses,
	})
}

// HandleGetDocument handles GET /context/documents/:id
func (h *UploadHandler) HandleGetDocument(c *fiber.Ctx) error {
	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID format",
		})
	}

	doc, err := h.docRepo.FindByID(docID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	return c.JSON(models.UploadResponse{
		ID:           doc.ID.String(),
		Filename:     doc.Filename,
		OriginalName: doc.OriginalFileName,
		DocType:      doc.DocType,
	})
}
