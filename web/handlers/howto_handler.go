package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/myairobotics/myaisells-admin/internal/ccc/db"
	"github.com/myairobotics/myaisells-admin/internal/ccc/logging"
	"github.com/myairobotics/myaisells-admin/internal/helpvideos"
)

type HowToHandler struct {
	logger     logging.Logger
	workflow   *helpvideos.UploadWorkflow
	repo       helpvideos.HowToRepository
	scratchDir string
}

// NewHowToHandler creates a handler for the help video endpoints. Uploaded
// files are spooled to scratchDir before they are handed to the workflow.
func NewHowToHandler(logger logging.Logger, workflow *helpvideos.UploadWorkflow, repo helpvideos.HowToRepository, scratchDir string) *HowToHandler {
	return &HowToHandler{
		logger:     logger,
		workflow:   workflow,
		repo:       repo,
		scratchDir: scratchDir,
	}
}

// ListHowTos handles GET /api/howtos
func (h *HowToHandler) ListHowTos(c *gin.Context) {
	query := helpvideos.HowToQuery{}

	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			query.Limit = &limit
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			query.Offset = &offset
		}
	}

	howtos, total, err := h.repo.Query(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("Failed to query help videos", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to load help videos")
		return
	}

	data := make([]gin.H, 0, len(howtos))
	for _, howto := range howtos {
		data = append(data, howToJSON(howto))
	}

	respondData(c, gin.H{
		"data":  data,
		"total": total,
	})
}

// GetHowTo handles GET /api/howtos/:id
func (h *HowToHandler) GetHowTo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid help video id")
		return
	}

	howto, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get help video", "id", id, "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to load help video")
		return
	}
	if howto == nil {
		respondError(c, http.StatusNotFound, "Help video not found")
		return
	}

	respondData(c, howToJSON(howto))
}

// GetDraft handles GET /api/howtos/draft
func (h *HowToHandler) GetDraft(c *gin.Context) {
	items := h.workflow.Items()

	data := make([]gin.H, 0, len(items))
	for _, item := range items {
		data = append(data, itemJSON(item))
	}

	respondData(c, gin.H{
		"items":    data,
		"inFlight": h.workflow.InFlight(),
	})
}

// AddDraftItem handles POST /api/howtos/draft/items
func (h *HowToHandler) AddDraftItem(c *gin.Context) {
	item, err := h.workflow.AddItem()
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}

	respondData(c, itemJSON(item))
}

// UpdateDraftItem handles PATCH /api/howtos/draft/items/:id
func (h *HowToHandler) UpdateDraftItem(c *gin.Context) {
	id := c.Param("id")

	var request struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *bool   `json:"status"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var item *helpvideos.UploadItem
	var err error

	if request.Title != nil {
		if item, err = h.workflow.SetField(id, helpvideos.FieldTitle, *request.Title); err != nil {
			h.respondWorkflowError(c, err)
			return
		}
	}
	if request.Description != nil {
		if item, err = h.workflow.SetField(id, helpvideos.FieldDescription, *request.Description); err != nil {
			h.respondWorkflowError(c, err)
			return
		}
	}
	if request.Status != nil {
		if item, err = h.workflow.SetStatus(id, *request.Status); err != nil {
			h.respondWorkflowError(c, err)
			return
		}
	}

	if item == nil {
		if item, err = h.workflow.Item(id); err != nil {
			h.respondWorkflowError(c, err)
			return
		}
	}

	respondData(c, itemJSON(item))
}

// RemoveDraftItem handles DELETE /api/howtos/draft/items/:id
func (h *HowToHandler) RemoveDraftItem(c *gin.Context) {
	if err := h.workflow.RemoveItem(c.Param("id")); err != nil {
		h.respondWorkflowError(c, err)
		return
	}

	respondData(c, gin.H{
		"message": "Item removed",
	})
}

// UploadDraftVideo handles POST /api/howtos/draft/items/:id/video
func (h *HowToHandler) UploadDraftVideo(c *gin.Context) {
	h.attachFile(c, h.workflow.SetMainVideo)
}

// UploadDraftThumbnail handles POST /api/howtos/draft/items/:id/thumbnail
func (h *HowToHandler) UploadDraftThumbnail(c *gin.Context) {
	h.attachFile(c, h.workflow.SetThumbnail)
}

// ClearDraftVideo handles DELETE /api/howtos/draft/items/:id/video
func (h *HowToHandler) ClearDraftVideo(c *gin.Context) {
	item, err := h.workflow.SetMainVideo(c.Param("id"), nil)
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}
	respondData(c, itemJSON(item))
}

// ClearDraftThumbnail handles DELETE /api/howtos/draft/items/:id/thumbnail
func (h *HowToHandler) ClearDraftThumbnail(c *gin.Context) {
	item, err := h.workflow.SetThumbnail(c.Param("id"), nil)
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}
	respondData(c, itemJSON(item))
}

// SubmitDraft handles POST /api/howtos/draft/submit
func (h *HowToHandler) SubmitDraft(c *gin.Context) {
	if err := h.workflow.Submit(c.Request.Context()); err != nil {
		if helpvideos.IsValidationError(err) {
			items := h.workflow.Items()
			data := make([]gin.H, 0, len(items))
			for _, item := range items {
				data = append(data, itemJSON(item))
			}

			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": err.Error(),
				"data":    gin.H{"items": data},
			})
			return
		}
		h.respondWorkflowError(c, err)
		return
	}

	respondData(c, gin.H{
		"message": "Help videos uploaded",
	})
}

// attachFile spools the posted file to the scratch directory and hands it to
// the given workflow mutation
func (h *HowToHandler) attachFile(c *gin.Context, attach func(string, *helpvideos.LocalFile) (*helpvideos.UploadItem, error)) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "A file is required")
		return
	}

	localFile, err := h.spoolFile(c, fileHeader)
	if err != nil {
		h.logger.Error("Failed to spool uploaded file", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to store the uploaded file")
		return
	}

	item, err := attach(c.Param("id"), localFile)
	if err != nil {
		os.Remove(localFile.Path)
		h.respondWorkflowError(c, err)
		return
	}

	respondData(c, itemJSON(item))
}

// spoolFile writes the multipart upload to the scratch directory so the
// workflow can adopt it
func (h *HowToHandler) spoolFile(c *gin.Context, fileHeader *multipart.FileHeader) (*helpvideos.LocalFile, error) {
	if err := os.MkdirAll(h.scratchDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	path := filepath.Join(h.scratchDir, uuid.New().String()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, path); err != nil {
		return nil, fmt.Errorf("failed to save uploaded file: %w", err)
	}

	return &helpvideos.LocalFile{
		Name:        fileHeader.Filename,
		Path:        path,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, nil
}

func (h *HowToHandler) respondWorkflowError(c *gin.Context, err error) {
	switch {
	case helpvideos.IsItemNotFoundError(err):
		respondError(c, http.StatusNotFound, "Upload item not found")
	case helpvideos.IsSubmissionInProgressError(err):
		respondError(c, http.StatusConflict, "A submission is already in progress")
	default:
		h.logger.Error("Upload workflow operation failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Operation failed")
	}
}

func howToJSON(howto *helpvideos.HowTo) gin.H {
	return gin.H{
		"id":                 howto.ID,
		"title":              howto.Title,
		"description":        howto.Description,
		"status":             howto.Status,
		"duration":           howto.Duration,
		"main_asset_id":      howto.MainAssetID,
		"thumbnail_asset_id": howto.ThumbnailAssetID,
		"created_at":         db.TimeToString(howto.CreatedAt),
	}
}

func itemJSON(item *helpvideos.UploadItem) gin.H {
	data := gin.H{
		"id":           item.ID,
		"title":        item.Title,
		"description":  item.Description,
		"status":       item.Status,
		"duration":     item.Duration,
		"videoUrl":     item.VideoURL,
		"thumbnailUrl": item.ThumbnailURL,
		"errors":       item.Errors,
	}
	if item.MainVideo != nil {
		data["mainVideo"] = gin.H{
			"name": item.MainVideo.Name,
			"size": item.MainVideo.Size,
			"type": item.MainVideo.ContentType,
		}
	}
	if item.Thumbnail != nil {
		data["thumbnail"] = gin.H{
			"name": item.Thumbnail.Name,
			"size": item.Thumbnail.Size,
			"type": item.Thumbnail.ContentType,
		}
	}
	return data
}
