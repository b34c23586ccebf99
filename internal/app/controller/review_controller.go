package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/economia-solidaria/backend/internal/app/service"
	apperrors "github.com/economia-solidaria/backend/internal/errors"
	"github.com/economia-solidaria/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

type CreateReviewRequest struct {
	Rating  int      `json:"rating" binding:"required,min=1,max=5"`
	Comment string   `json:"comment" binding:"required"`
	Images  []string `json:"images"`
}

// CreateReview creates a review for a business
// POST /api/v1/businesses/:id/reviews
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	businessID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Identificador de negócio inválido")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados informados não são válidos")
		return
	}

	review, err := ctrl.reviewService.Create(userID, uint(businessID), req.Rating, req.Comment, req.Images)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRating) {
			apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "A nota deve estar entre 1 e 5")
			return
		}
		if errors.Is(err, service.ErrReviewBusinessGone) {
			apperrors.NotFound(c, apperrors.BusinessNotFound, "Negócio não encontrado")
			return
		}
		// mensagens das regras de conteúdo vão direto para o usuário
		log.Warn("Review rejected", map[string]interface{}{
			"business_id": businessID,
			"user_id":     userID,
			"reason":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ReviewInvalidText, err.Error())
		return
	}

	log.Info("Review created", map[string]interface{}{
		"review_id":   review.ID,
		"business_id": businessID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Avaliação publicada",
		"review":  review,
	})
}

// ListBusinessReviews lists reviews of a business
// GET /api/v1/businesses/:id/reviews
func (ctrl *ReviewController) ListBusinessReviews(c *gin.Context) {
	businessID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Identificador de negócio inválido")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	reviews, total, err := ctrl.reviewService.ListByBusiness(uint(businessID), (page-1)*pageSize, pageSize)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":   reviews,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetReviewSummary returns the rating aggregate of a business
// GET /api/v1/businesses/:id/reviews/summary
func (ctrl *ReviewController) GetReviewSummary(c *gin.Context) {
	businessID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Identificador de negócio inválido")
		return
	}

	summary, err := ctrl.reviewService.Summary(uint(businessID))
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "review summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// DeleteReview removes a review (author or admin only)
// DELETE /api/v1/reviews/:id
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Identificador de avaliação inválido")
		return
	}

	if err := ctrl.reviewService.Delete(userID, middleware.IsAdmin(c), uint(reviewID)); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Avaliação não encontrada")
			return
		}
		if errors.Is(err, service.ErrReviewNotDeletable) {
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "Apenas o autor ou um administrador pode excluir a avaliação")
			return
		}
		log.Error("Failed to delete review", err, map[string]interface{}{
			"review_id": reviewID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete review")
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
