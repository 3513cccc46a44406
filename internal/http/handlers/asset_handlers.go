package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/assetsvc/domain"
	"github.com/you/assetsvc/internal/http/middleware"
)

// multipart envelope allowance on top of the file itself
const multipartOverhead = 1 << 20

// AssetHandlers handles asset ingestion HTTP requests
type AssetHandlers struct {
	assetSvc       domain.AssetService
	mediaHost      domain.MediaHost
	storage        domain.LocalStorage
	audit          domain.AuditLogger
	maxUploadBytes int64
}

// NewAssetHandlers creates new asset handlers
func NewAssetHandlers(assetSvc domain.AssetService, mediaHost domain.MediaHost, storage domain.LocalStorage, audit domain.AuditLogger, maxUploadBytes int64) *AssetHandlers {
	return &AssetHandlers{
		assetSvc:       assetSvc,
		mediaHost:      mediaHost,
		storage:        storage,
		audit:          audit,
		maxUploadBytes: maxUploadBytes,
	}
}

// CreateAssetRequest represents an asset creation request
type CreateAssetRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FileURL     string `json:"fileUrl"`
}

// SignatureRequest optionally names the file the client is about to upload
type SignatureRequest struct {
	Filename string `json:"filename"`
}

// Create records a new asset owned by the caller
func (h *AssetHandlers) Create(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID not found in context"})
		return
	}

	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	asset, err := h.assetSvc.Create(c.Request.Context(), ownerID, req.Title, req.Description, req.FileURL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTitleRequired):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Title is required"})
		case errors.Is(err, domain.ErrFileRequired):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Please upload a file"})
		case errors.Is(err, domain.ErrMissingOwner):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create asset"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Asset created successfully",
		"data":    asset,
	})
}

// ListMine returns the caller's assets, newest first
func (h *AssetHandlers) ListMine(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID not found in context"})
		return
	}

	assets, err := h.assetSvc.ListOwned(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list assets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": assets})
}

// Signature issues a direct-to-host upload credential
func (h *AssetHandlers) Signature(c *gin.Context) {
	var req SignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	credential, err := h.mediaHost.SignUpload(c.Request.Context(), req.Filename)
	if err != nil {
		if errors.Is(err, domain.ErrMediaHostDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Cloud uploads are not configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to sign upload"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Upload signature generated",
		"data":    credential,
	})
}

// Upload stores a multipart file on local disk
func (h *AssetHandlers) Upload(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID not found in context"})
		return
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "File too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read upload"})
		return
	}
	defer file.Close()

	stored, err := h.storage.Save(c.Request.Context(), header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBlockedFileType):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Executable files are not allowed"})
		case errors.Is(err, domain.ErrFileTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"message": "File too large"})
		case errors.Is(err, domain.ErrNoFile):
			c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to store file"})
		}
		return
	}

	h.audit.LogEvent(c.Request.Context(), domain.NewAuditEvent(domain.AssetUploadedEvent, ownerID).
		WithMetadata("file_url", stored.FileURL).
		WithMetadata("original_name", stored.OriginalName))

	c.JSON(http.StatusOK, gin.H{
		"message":      "File uploaded successfully",
		"fileUrl":      stored.FileURL,
		"filename":     stored.Filename,
		"originalName": stored.OriginalName,
	})
}
