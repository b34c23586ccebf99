package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/economia-solidaria/backend/internal/app/repository"
	"github.com/economia-solidaria/backend/internal/app/service"
	apperrors "github.com/economia-solidaria/backend/internal/errors"
	"github.com/economia-solidaria/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type BusinessController struct {
	businessService service.BusinessService
	reviewService   service.ReviewService
}

func NewBusinessController(businessService service.BusinessService, reviewService service.ReviewService) *BusinessController {
	return &BusinessController{
		businessService: businessService,
		reviewService:   reviewService,
	}
}

type SetBusinessStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// ListBusinesses lists active businesses with optional filters
// GET /api/v1/businesses
func (ctrl *BusinessController) ListBusinesses(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	filter := repository.BusinessFilter{
		Cidade:    c.Query("cidade"),
		Categoria: c.Query("categoria"),
		Busca:     c.Query("busca"),
		Offset:    (page - 1) * pageSize,
		Limit:     pageSize,
	}

	businesses, total, err := ctrl.businessService.List(filter)
	if err != nil {
		log.Error("Failed to list businesses", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list businesses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"businesses": businesses,
		"total":      total,
		"page":       page,
		"page_size":  pageSize,
	})
}

// GetBusiness returns a business by numeric ID
// GET /api/v1/businesses/:id
func (ctrl *BusinessController) GetBusiness(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Identificador de negócio inválido")
		return
	}

	business, err := ctrl.businessService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			apperrors.NotFound(c, apperrors.BusinessNotFound, "Negócio não encontrado")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get business")
		return
	}

	summary, err := ctrl.reviewService.Summary(business.ID)
	if err != nil {
		summary = &service.ReviewSummary{}
	}

	c.JSON(http.StatusOK, gin.H{
		"business": business,
		"reviews":  summary,
	})
}

// GetBusinessBySlug returns a business by its URL slug
// GET /api/v1/businesses/slug/:slug
func (ctrl *BusinessController) GetBusinessBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Informe o identificador do negócio")
		return
	}

	business, err := ctrl.businessService.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			apperrors.NotFound(c, apperrors.BusinessNotFound, "Negócio não encontrado")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get business")
		return
	}

	summary, err := ctrl.reviewService.Summary(business.ID)
	if err != nil {
		summary = &service.ReviewSummary{}
	}

	c.JSON(http.StatusOK, gin.H{
		"business": business,
		"reviews":  summary,
	})
}

// MyBusinesses lists businesses owned by the authenticated user
// GET /api/v1/businesses/my
func (ctrl *BusinessController) MyBusinesses(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	businesses, err := ctrl.businessService.GetMyBusinesses(userID)
	if err != nil {
		log.Error("Failed to list user businesses", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list businesses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"businesses": businesses,
		"total":      len(businesses),
	})
}

// SetBusinessStatus activates or deactivates a business listing
// PUT /api/v1/businesses/:id/status
func (ctrl *BusinessController) SetBusinessStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Identificador de negócio inválido")
		return
	}

	var req SetBusinessStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "O status deve ser active ou inactive")
		return
	}

	business, err := ctrl.businessService.SetStatus(userID, uint(id), req.Status)
	if err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			apperrors.NotFound(c, apperrors.BusinessNotFound, "Negócio não encontrado")
			return
		}
		if errors.Is(err, service.ErrNotBusinessOwner) {
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "Somente o responsável pode alterar este negócio")
			return
		}
		log.Error("Failed to update business status", err, map[string]interface{}{
			"business_id": id,
			"user_id":     userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update business")
		return
	}

	log.Info("Business status updated", map[string]interface{}{
		"business_id": business.ID,
		"status":      business.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":  "Status atualizado com sucesso",
		"business": business,
	})
}
