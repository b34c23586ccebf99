package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/economia-solidaria/backend/internal/app/media"
	"github.com/economia-solidaria/backend/internal/app/model"
	"github.com/economia-solidaria/backend/internal/app/service"
	apperrors "github.com/economia-solidaria/backend/internal/errors"
	"github.com/economia-solidaria/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type RegistrationController struct {
	registrationService service.RegistrationService
}

func NewRegistrationController(registrationService service.RegistrationService) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
	}
}

// SubmitRegistrationForm campos de texto do formulário multipart.
// O endereço e o horário chegam como JSON nos campos endereco e horario;
// as imagens chegam como arquivos no campo imagens.
type SubmitRegistrationForm struct {
	Nome         string `form:"nome"`
	CNPJ         string `form:"cnpj"`
	Descricao    string `form:"descricao"`
	Categoria    string `form:"categoria"`
	Endereco     string `form:"endereco"`
	TelefoneFixo string `form:"telefone_fixo"`
	Celular      string `form:"celular"`
	Horario      string `form:"horario"`
	Documento    string `form:"documento"`
}

// Submit handles a business registration submission
// POST /api/v1/registrations
func (ctrl *RegistrationController) Submit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	var form SubmitRegistrationForm
	if err := c.ShouldBind(&form); err != nil {
		log.Warn("Invalid registration form", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados informados não são válidos")
		return
	}

	var endereco model.Address
	if form.Endereco != "" {
		if err := json.Unmarshal([]byte(form.Endereco), &endereco); err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "O endereço informado não é válido")
			return
		}
	}

	var horario model.OperatingHours
	if form.Horario != "" {
		if err := json.Unmarshal([]byte(form.Horario), &horario); err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "O horário de funcionamento informado não é válido")
			return
		}
	}

	images, err := ctrl.readImageFiles(c)
	if err != nil {
		log.Warn("Failed to read uploaded images", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.UploadFailed, "Não foi possível ler as imagens enviadas")
		return
	}

	result := ctrl.registrationService.Submit(c.Request.Context(), userID, service.SubmitInput{
		Nome:         form.Nome,
		CNPJ:         form.CNPJ,
		Descricao:    form.Descricao,
		Categoria:    form.Categoria,
		Endereco:     endereco,
		TelefoneFixo: form.TelefoneFixo,
		Celular:      form.Celular,
		Horario:      horario,
		Imagens:      images,
		Documento:    form.Documento,
	})

	if result.State != service.StateSucceeded {
		ctrl.respondSubmissionFailure(c, result)
		return
	}

	log.Info("Registration submitted", map[string]interface{}{
		"registration_id": result.Registration.ID,
		"user_id":         userID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Cadastro enviado para análise",
		"registration": result.Registration,
	})
}

// respondSubmissionFailure mapeia o estado de falha do envio para a
// resposta HTTP adequada
func (ctrl *RegistrationController) respondSubmissionFailure(c *gin.Context, result *service.SubmissionResult) {
	// erros de campo corrigíveis pelo usuário
	if len(result.FieldErrors) > 0 {
		if result.FailedAt == service.StateCheckingUniqueness {
			c.JSON(http.StatusConflict, apperrors.ValidationError{
				Error:   apperrors.RegistrationCNPJExists,
				Message: "Este CNPJ já está cadastrado",
				Fields:  result.FieldErrors,
			})
			return
		}
		apperrors.RespondWithValidationError(c, result.FieldErrors)
		return
	}

	err := result.Err
	switch {
	case errors.Is(err, service.ErrRegistrationLimit):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.RegistrationLimitReached, err.Error())
	case errors.Is(err, service.ErrUniquenessCheckFailed):
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.RegistrationCheckFailed, "Não foi possível verificar o CNPJ. Tente novamente em instantes")
	case errors.Is(err, media.ErrTooManyImages):
		apperrors.BadRequest(c, apperrors.UploadTooManyFiles, err.Error())
	case errors.Is(err, media.ErrUnsupportedType):
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, err.Error())
	case errors.Is(err, media.ErrFileTooLarge):
		apperrors.BadRequest(c, apperrors.UploadFileTooLarge, err.Error())
	case errors.Is(err, media.ErrDecodeFailed):
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, err.Error())
	case errors.Is(err, media.ErrDocumentTooLarge):
		apperrors.BadRequest(c, apperrors.RegistrationDocumentTooBig, err.Error())
	default:
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "submit registration")
	}
}

func (ctrl *RegistrationController) readImageFiles(c *gin.Context) ([]media.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	headers := form.File["imagens"]
	files := make([]media.File, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, media.File{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}

// MyRegistrations lists the authenticated user's registrations
// GET /api/v1/registrations/my
func (ctrl *RegistrationController) MyRegistrations(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	registrations, err := ctrl.registrationService.GetMyRegistrations(userID)
	if err != nil {
		log.Error("Failed to list user registrations", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list registrations")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"registrations": registrations,
		"total":         len(registrations),
	})
}
