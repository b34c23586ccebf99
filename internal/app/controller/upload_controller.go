package controller

import (
	"net/http"

	apperrors "github.com/economia-solidaria/backend/internal/errors"
	"github.com/economia-solidaria/backend/internal/middleware"
	"github.com/economia-solidaria/backend/internal/storage"
	"github.com/gin-gonic/gin"
)

// tipos aceitos nos uploads diretos (foto de perfil e de avaliação)
var allowedImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/webp",
}

type UploadController struct {
	s3Storage    *storage.S3Storage
	maxFileBytes int64
}

func NewUploadController(s3Storage *storage.S3Storage, maxFileBytes int64) *UploadController {
	return &UploadController{
		s3Storage:    s3Storage,
		maxFileBytes: maxFileBytes,
	}
}

type PresignedURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	FileSize    int64  `json:"file_size" binding:"required,min=1"`
	Folder      string `json:"folder" binding:"required,oneof=profiles reviews"`
}

// GetPresignedURL issues a pre-signed S3 PUT URL for direct uploads
// POST /api/v1/uploads/presigned-url
func (ctrl *UploadController) GetPresignedURL(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	var req PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados informados não são válidos")
		return
	}

	if err := ctrl.s3Storage.ValidateContentType(req.ContentType, allowedImageTypes); err != nil {
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Tipo de arquivo não permitido. Envie JPEG, PNG ou WebP")
		return
	}

	if err := ctrl.s3Storage.ValidateFileSize(req.FileSize, ctrl.maxFileBytes); err != nil {
		apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "O arquivo excede o tamanho máximo permitido")
		return
	}

	response, err := ctrl.s3Storage.GeneratePresignedURL(req.Filename, req.ContentType, req.Folder)
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"user_id": userID,
			"folder":  req.Folder,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Não foi possível preparar o upload. Tente novamente")
		return
	}

	log.Info("Presigned upload URL issued", map[string]interface{}{
		"user_id": userID,
		"key":     response.Key,
	})

	c.JSON(http.StatusOK, response)
}
