package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/economia-solidaria/backend/internal/app/model"
	"github.com/economia-solidaria/backend/internal/app/repository"
	"github.com/economia-solidaria/backend/pkg/logger"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var (
	ErrRegistrationDecided = errors.New("este cadastro já foi analisado")
	ErrDenyReasonRequired  = errors.New("informe o motivo da recusa")
)

type ModerationService interface {
	ListPending(offset, limit int) ([]model.BusinessRegistration, int64, error)
	GetRegistration(id uint) (*model.BusinessRegistration, error)
	Approve(adminID, registrationID uint) (*model.Business, error)
	Deny(adminID, registrationID uint, reason string) (*model.BusinessRegistration, error)
	ExportPending() ([]byte, error)
}

type moderationService struct {
	db               *gorm.DB
	registrationRepo repository.RegistrationRepository
}

func NewModerationService(db *gorm.DB, registrationRepo repository.RegistrationRepository) ModerationService {
	return &moderationService{
		db:               db,
		registrationRepo: registrationRepo,
	}
}

func (s *moderationService) ListPending(offset, limit int) ([]model.BusinessRegistration, int64, error) {
	return s.registrationRepo.ListPending(offset, limit)
}

func (s *moderationService) GetRegistration(id uint) (*model.BusinessRegistration, error) {
	registration, err := s.registrationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return registration, nil
}

// Approve copia o cadastro pendente para a vitrine de negócios ativos e
// remove o registro pendente, tudo em uma única transação: ou as duas
// coleções mudam juntas, ou nenhuma muda. Dois admins aprovando o mesmo
// cadastro ao mesmo tempo: o segundo não encontra o registro pendente e
// falha de forma limpa.
func (s *moderationService) Approve(adminID, registrationID uint) (*model.Business, error) {
	logger.Info("Approving business registration", map[string]interface{}{
		"admin_id":        adminID,
		"registration_id": registrationID,
	})

	var business *model.Business

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var registration model.BusinessRegistration
	err := tx.Where("id = ? AND status = ?", registrationID, model.RegistrationStatusPending).
		First(&registration).Error
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationDecided
		}
		return nil, err
	}

	now := time.Now()
	business = &model.Business{
		OwnerID:     &registration.OwnerID,
		Name:        registration.Name,
		CNPJ:        registration.CNPJ,
		Description: registration.Description,
		Category:    registration.Category,
		Address:     registration.Address,
		Landline:    registration.Landline,
		Mobile:      registration.Mobile,
		Hours:       registration.Hours,
		Images:      registration.Images,
		Status:      model.BusinessStatusActive,
		Managed:     true,
		ApprovedBy:  &adminID,
		ApprovedAt:  &now,
	}

	if err := tx.Create(business).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create active listing on approval", err, map[string]interface{}{
			"registration_id": registrationID,
		})
		return nil, err
	}

	if err := tx.Delete(&registration).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to remove pending registration on approval", err, map[string]interface{}{
			"registration_id": registrationID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Business registration approved", map[string]interface{}{
		"admin_id":        adminID,
		"registration_id": registrationID,
		"business_id":     business.ID,
	})

	return business, nil
}

// Deny marca o cadastro como negado, no lugar, com a justificativa do
// admin. Não há movimentação entre coleções.
func (s *moderationService) Deny(adminID, registrationID uint, reason string) (*model.BusinessRegistration, error) {
	if reason == "" {
		return nil, ErrDenyReasonRequired
	}

	registration, err := s.registrationRepo.FindByID(registrationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}

	if registration.Status != model.RegistrationStatusPending {
		return nil, ErrRegistrationDecided
	}

	now := time.Now()
	registration.Status = model.RegistrationStatusDenied
	registration.DeniedReason = reason
	registration.ReviewedBy = &adminID
	registration.ReviewedAt = &now

	if err := s.registrationRepo.Update(registration); err != nil {
		logger.Error("Failed to deny registration", err, map[string]interface{}{
			"registration_id": registrationID,
		})
		return nil, err
	}

	logger.Info("Business registration denied", map[string]interface{}{
		"admin_id":        adminID,
		"registration_id": registrationID,
	})

	return registration, nil
}

// ExportPending gera uma planilha XLSX com os cadastros pendentes para
// análise offline pela equipe da prefeitura
func (s *moderationService) ExportPending() ([]byte, error) {
	registrations, _, err := s.registrationRepo.ListPending(0, 10000)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Cadastros Pendentes"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Nome", "CNPJ", "Categoria", "Cidade", "Responsável", "E-mail", "Enviado em"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, reg := range registrations {
		values := []interface{}{
			reg.ID,
			reg.Name,
			reg.CNPJ,
			reg.Category,
			reg.Address.Cidade,
			reg.Owner.Name,
			reg.Owner.Email,
			reg.CreatedAt.Format("02/01/2006 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to build export file: %w", err)
	}

	logger.Info("Pending registrations exported", map[string]interface{}{
		"count": len(registrations),
	})

	return buf.Bytes(), nil
}
