package repository

import (
	"fmt"

	"github.com/economia-solidaria/backend/internal/app/model"
	"github.com/economia-solidaria/backend/pkg/logger"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	Create(registration *model.BusinessRegistration) error
	FindByID(id uint) (*model.BusinessRegistration, error)
	FindByOwnerID(ownerID uint) ([]model.BusinessRegistration, error)
	ListPending(offset, limit int) ([]model.BusinessRegistration, int64, error)
	CountActiveByOwner(ownerID uint) (int64, error)
	TaxIDExists(cnpj string) (bool, error)
	Update(registration *model.BusinessRegistration) error
	Delete(id uint) error
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(registration *model.BusinessRegistration) error {
	logger.Debug("Creating business registration in database", map[string]interface{}{
		"owner_id": registration.OwnerID,
		"cnpj":     registration.CNPJ,
	})

	if err := r.db.Create(registration).Error; err != nil {
		logger.Error("Failed to create business registration in database", err, map[string]interface{}{
			"owner_id": registration.OwnerID,
		})
		return err
	}

	return nil
}

func (r *registrationRepository) FindByID(id uint) (*model.BusinessRegistration, error) {
	var registration model.BusinessRegistration
	if err := r.db.Preload("Owner").First(&registration, id).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}

func (r *registrationRepository) FindByOwnerID(ownerID uint) ([]model.BusinessRegistration, error) {
	var registrations []model.BusinessRegistration
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *registrationRepository) ListPending(offset, limit int) ([]model.BusinessRegistration, int64, error) {
	var registrations []model.BusinessRegistration
	var total int64

	query := r.db.Model(&model.BusinessRegistration{}).
		Where("status = ?", model.RegistrationStatusPending)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Owner").
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&registrations).Error
	if err != nil {
		return nil, 0, err
	}

	return registrations, total, nil
}

// CountActiveByOwner conta cadastros pendentes + negócios aprovados do
// usuário, para o limite do plano
func (r *registrationRepository) CountActiveByOwner(ownerID uint) (int64, error) {
	var pending int64
	err := r.db.Model(&model.BusinessRegistration{}).
		Where("owner_id = ? AND status = ?", ownerID, model.RegistrationStatusPending).
		Count(&pending).Error
	if err != nil {
		return 0, err
	}

	var active int64
	err = r.db.Model(&model.Business{}).
		Where("owner_id = ?", ownerID).
		Count(&active).Error
	if err != nil {
		return 0, err
	}

	return pending + active, nil
}

// TaxIDExists verifica o CNPJ normalizado nas DUAS coleções: cadastros
// pendentes e negócios ativos. Um cadastro pendente bloqueia o mesmo
// CNPJ para qualquer outra conta.
func (r *registrationRepository) TaxIDExists(cnpj string) (bool, error) {
	var count int64
	err := r.db.Model(&model.BusinessRegistration{}).
		Where("cnpj = ? AND status = ?", cnpj, model.RegistrationStatusPending).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to query pending registrations: %w", err)
	}
	if count > 0 {
		return true, nil
	}

	err = r.db.Model(&model.Business{}).
		Where("cnpj = ?", cnpj).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to query active listings: %w", err)
	}

	return count > 0, nil
}

func (r *registrationRepository) Update(registration *model.BusinessRegistration) error {
	return r.db.Save(registration).Error
}

func (r *registrationRepository) Delete(id uint) error {
	return r.db.Delete(&model.BusinessRegistration{}, id).Error
}
