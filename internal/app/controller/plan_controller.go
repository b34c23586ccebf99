package controller

import (
	"errors"
	"net/http"

	"github.com/economia-solidaria/backend/internal/app/service"
	apperrors "github.com/economia-solidaria/backend/internal/errors"
	"github.com/economia-solidaria/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type PlanController struct {
	planService service.PlanService
}

func NewPlanController(planService service.PlanService) *PlanController {
	return &PlanController{
		planService: planService,
	}
}

type SubscribeRequest struct {
	PlanCode string `json:"plan_code" binding:"required"`
}

// ListPlans lists the available subscription plans
// GET /api/v1/plans
func (ctrl *PlanController) ListPlans(c *gin.Context) {
	plans, err := ctrl.planService.ListPlans()
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list plans")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plans": plans,
	})
}

// MySubscription returns the authenticated user's current subscription
// GET /api/v1/plans/my
func (ctrl *PlanController) MySubscription(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	subscription, err := ctrl.planService.GetMySubscription(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get subscription")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subscription": subscription,
	})
}

// Subscribe puts the user on a plan
// POST /api/v1/plans/subscribe
func (ctrl *PlanController) Subscribe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Informe o plano desejado")
		return
	}

	subscription, err := ctrl.planService.Subscribe(userID, req.PlanCode)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			apperrors.NotFound(c, apperrors.PlanNotFound, "Plano não encontrado")
			return
		}
		if errors.Is(err, service.ErrAlreadyOnPlan) {
			apperrors.Conflict(c, apperrors.PlanAlreadySubscribed, "Você já está neste plano")
			return
		}
		log.Error("Failed to subscribe to plan", err, map[string]interface{}{
			"user_id": userID,
			"plan":    req.PlanCode,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.PlanSubscriptionError, "Não foi possível concluir a assinatura. Tente novamente")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Assinatura realizada com sucesso",
		"subscription": subscription,
	})
}

// CancelSubscription downgrades the user to the free plan
// POST /api/v1/plans/cancel
func (ctrl *PlanController) CancelSubscription(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	if err := ctrl.planService.Cancel(userID); err != nil {
		if errors.Is(err, service.ErrNoActiveSubscription) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Nenhuma assinatura ativa")
			return
		}
		if errors.Is(err, service.ErrCannotCancelFreePlan) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "O plano gratuito não pode ser cancelado")
			return
		}
		log.Error("Failed to cancel subscription", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "cancel subscription")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Assinatura cancelada. Você voltou ao plano gratuito",
	})
}
