package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/economia-solidaria/backend/internal/app/media"
	"github.com/economia-solidaria/backend/internal/app/model"
	"github.com/economia-solidaria/backend/internal/app/repository"
	"github.com/economia-solidaria/backend/internal/app/validator"
	"github.com/economia-solidaria/backend/pkg/logger"
	"github.com/economia-solidaria/backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrRegistrationLimit     = errors.New("limite de cadastros do plano atingido")
	ErrUniquenessCheckFailed = errors.New("não foi possível verificar o CNPJ, tente novamente")
	ErrRegistrationNotFound  = errors.New("cadastro não encontrado")
)

// SubmissionState estado de uma tentativa de envio de cadastro.
// Cada envio percorre os estados em sequência; nenhum estado é
// reentrante e um novo envio recomeça em idle.
type SubmissionState string

const (
	StateIdle               SubmissionState = "idle"
	StateValidating         SubmissionState = "validating"
	StateCheckingUniqueness SubmissionState = "checking_uniqueness"
	StateNormalizingMedia   SubmissionState = "normalizing_media"
	StateSubmitting         SubmissionState = "submitting"
	StateSucceeded          SubmissionState = "succeeded"
	StateFailed             SubmissionState = "failed"
)

// SubmitInput formulário de cadastro com os arquivos de imagem brutos
type SubmitInput struct {
	Nome         string
	CNPJ         string
	Descricao    string
	Categoria    string
	Endereco     model.Address
	TelefoneFixo string
	Celular      string
	Horario      model.OperatingHours
	Imagens      []media.File
	Documento    string
}

// SubmissionResult resultado terminal de um envio: o estado em que a
// tentativa terminou, os erros de campo (quando a falha é corrigível
// pelo usuário) ou o erro externo repassado sem retry.
type SubmissionResult struct {
	State        SubmissionState   // succeeded ou failed
	FailedAt     SubmissionState   // estado em que o envio falhou
	FieldErrors  map[string]string // erros por campo do formulário
	Err          error
	Registration *model.BusinessRegistration
}

type RegistrationService interface {
	Submit(ctx context.Context, ownerID uint, input SubmitInput) *SubmissionResult
	GetMyRegistrations(ownerID uint) ([]model.BusinessRegistration, error)
}

type registrationService struct {
	registrationRepo repository.RegistrationRepository
	planRepo         repository.PlanRepository
	normalizer       *media.Normalizer
}

func NewRegistrationService(
	registrationRepo repository.RegistrationRepository,
	planRepo repository.PlanRepository,
	normalizer *media.Normalizer,
) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		planRepo:         planRepo,
		normalizer:       normalizer,
	}
}

// Submit percorre a máquina de estados do envio:
// idle → validating → checking_uniqueness → normalizing_media →
// submitting → {succeeded | failed}.
// Sem escrita parcial: o registro só é criado depois que as imagens e o
// limite de tamanho do documento passam. Falhas externas são
// repassadas ao chamador sem retry automático.
func (s *registrationService) Submit(ctx context.Context, ownerID uint, input SubmitInput) *SubmissionResult {
	logger.Info("Registration submission started", map[string]interface{}{
		"owner_id": ownerID,
		"name":     input.Nome,
	})

	// validating
	plan, err := s.planForOwner(ownerID)
	if err != nil {
		return failed(StateValidating, err)
	}

	formResult := validator.ValidateRegistration(validator.RegistrationInput{
		Nome:         input.Nome,
		CNPJ:         input.CNPJ,
		Descricao:    input.Descricao,
		Categoria:    input.Categoria,
		Endereco:     input.Endereco,
		TelefoneFixo: input.TelefoneFixo,
		Celular:      input.Celular,
		Horario:      input.Horario,
		ImageCount:   len(input.Imagens),
		Documento:    input.Documento,
	})
	if !formResult.IsValid {
		logger.Warn("Registration submission failed validation", map[string]interface{}{
			"owner_id": ownerID,
			"fields":   len(formResult.Errors),
		})
		return &SubmissionResult{State: StateFailed, FailedAt: StateValidating, FieldErrors: formResult.Errors}
	}

	count, err := s.registrationRepo.CountActiveByOwner(ownerID)
	if err != nil {
		return failed(StateValidating, err)
	}
	if count >= int64(plan.MaxRegistrations) {
		logger.Warn("Registration limit reached for plan", map[string]interface{}{
			"owner_id": ownerID,
			"plan":     plan.Code,
			"count":    count,
		})
		return failed(StateValidating, fmt.Errorf("%w: plano %s permite %d", ErrRegistrationLimit, plan.Name, plan.MaxRegistrations))
	}

	// checking_uniqueness
	cnpj := util.NormalizeTaxID(input.CNPJ)
	exists, err := s.registrationRepo.TaxIDExists(cnpj)
	if err != nil {
		// falha de acesso ao banco: erro distinto de "duplicado",
		// o usuário pode reenviar
		logger.Error("Tax ID uniqueness check failed", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		return failed(StateCheckingUniqueness, ErrUniquenessCheckFailed)
	}
	if exists {
		return &SubmissionResult{
			State:       StateFailed,
			FailedAt:    StateCheckingUniqueness,
			FieldErrors: map[string]string{"cnpj": "Este CNPJ já está cadastrado"},
		}
	}

	// normalizing_media
	images, err := s.normalizer.NormalizeBatch(ctx, input.Imagens, plan.MaxImages)
	if err != nil {
		logger.Warn("Media normalization rejected submission", map[string]interface{}{
			"owner_id": ownerID,
			"error":    err.Error(),
		})
		return failed(StateNormalizingMedia, err)
	}

	registration := &model.BusinessRegistration{
		OwnerID:     ownerID,
		Name:        input.Nome,
		CNPJ:        cnpj,
		Description: input.Descricao,
		Category:    input.Categoria,
		Address:     input.Endereco,
		Landline:    util.DigitsOnly(input.TelefoneFixo),
		Mobile:      util.DigitsOnly(input.Celular),
		Hours:       input.Horario,
		Images:      images,
		Document:    input.Documento,
		Status:      model.RegistrationStatusPending,
	}

	// teto absoluto do documento serializado, verificado depois da
	// codificação das imagens
	if err := s.normalizer.CheckDocumentSize(registration); err != nil {
		return failed(StateNormalizingMedia, err)
	}

	// submitting
	if err := s.registrationRepo.Create(registration); err != nil {
		logger.Error("Registration write failed", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		return failed(StateSubmitting, err)
	}

	logger.Info("Registration submitted successfully", map[string]interface{}{
		"owner_id":        ownerID,
		"registration_id": registration.ID,
	})

	return &SubmissionResult{State: StateSucceeded, Registration: registration}
}

func (s *registrationService) GetMyRegistrations(ownerID uint) ([]model.BusinessRegistration, error) {
	return s.registrationRepo.FindByOwnerID(ownerID)
}

// planForOwner devolve o plano vigente do usuário; sem assinatura vale
// o plano gratuito
func (s *registrationService) planForOwner(ownerID uint) (*model.SubscriptionPlan, error) {
	subscription, err := s.planRepo.FindSubscriptionByUserID(ownerID)
	if err == nil && subscription.Status == model.SubscriptionStatusActive {
		return &subscription.Plan, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return s.planRepo.FindPlanByCode(model.PlanGratuito)
}

func failed(at SubmissionState, err error) *SubmissionResult {
	return &SubmissionResult{State: StateFailed, FailedAt: at, Err: err}
}
