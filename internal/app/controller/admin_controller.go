package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/economia-solidaria/backend/internal/app/service"
	apperrors "github.com/economia-solidaria/backend/internal/errors"
	"github.com/economia-solidaria/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AdminController struct {
	moderationService service.ModerationService
}

func NewAdminController(moderationService service.ModerationService) *AdminController {
	return &AdminController{
		moderationService: moderationService,
	}
}

type DenyRegistrationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListPendingRegistrations lists registrations awaiting review
// GET /api/v1/admin/registrations
func (ctrl *AdminController) ListPendingRegistrations(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	registrations, total, err := ctrl.moderationService.ListPending((page-1)*pageSize, pageSize)
	if err != nil {
		log.Error("Failed to list pending registrations", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list registrations")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"registrations": registrations,
		"total":         total,
		"page":          page,
		"page_size":     pageSize,
	})
}

// GetRegistration returns a single registration for review
// GET /api/v1/admin/registrations/:id
func (ctrl *AdminController) GetRegistration(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Identificador de cadastro inválido")
		return
	}

	registration, err := ctrl.moderationService.GetRegistration(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			apperrors.NotFound(c, apperrors.RegistrationNotFound, "Cadastro não encontrado")
			return
		}
		log.Error("Failed to get registration", err, map[string]interface{}{
			"registration_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get registration")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"registration": registration,
	})
}

// ApproveRegistration approves a pending registration
// POST /api/v1/admin/registrations/:id/approve
func (ctrl *AdminController) ApproveRegistration(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	adminID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Identificador de cadastro inválido")
		return
	}

	business, err := ctrl.moderationService.Approve(adminID, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrRegistrationDecided) {
			apperrors.Conflict(c, apperrors.RegistrationAlreadyDecided, "Este cadastro já foi analisado")
			return
		}
		log.Error("Failed to approve registration", err, map[string]interface{}{
			"registration_id": id,
			"admin_id":        adminID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "approve registration")
		return
	}

	log.Info("Registration approved", map[string]interface{}{
		"registration_id": id,
		"business_id":     business.ID,
		"admin_id":        adminID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":  "Cadastro aprovado",
		"business": business,
	})
}

// DenyRegistration denies a pending registration with a reason
// POST /api/v1/admin/registrations/:id/deny
func (ctrl *AdminController) DenyRegistration(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	adminID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Identificador de cadastro inválido")
		return
	}

	var req DenyRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Informe o motivo da recusa")
		return
	}

	registration, err := ctrl.moderationService.Deny(adminID, uint(id), req.Reason)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationDecided) {
			apperrors.Conflict(c, apperrors.RegistrationAlreadyDecided, "Este cadastro já foi analisado")
			return
		}
		if errors.Is(err, service.ErrDenyReasonRequired) {
			apperrors.BadRequest(c, apperrors.ValidationRequired, "Informe o motivo da recusa")
			return
		}
		log.Error("Failed to deny registration", err, map[string]interface{}{
			"registration_id": id,
			"admin_id":        adminID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "deny registration")
		return
	}

	log.Info("Registration denied", map[string]interface{}{
		"registration_id": id,
		"admin_id":        adminID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":      "Cadastro recusado",
		"registration": registration,
	})
}

// ExportPendingRegistrations downloads the pending queue as a spreadsheet
// GET /api/v1/admin/registrations/export
func (ctrl *AdminController) ExportPendingRegistrations(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.moderationService.ExportPending()
	if err != nil {
		log.Error("Failed to export pending registrations", err, nil)
		apperrors.InternalError(c, "Não foi possível gerar a planilha")
		return
	}

	filename := fmt.Sprintf("cadastros-pendentes-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
