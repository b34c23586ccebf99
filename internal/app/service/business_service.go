package service

import (
	"errors"

	"github.com/economia-solidaria/backend/internal/app/model"
	"github.com/economia-solidaria/backend/internal/app/repository"
	"github.com/economia-solidaria/backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrBusinessNotFound = errors.New("negócio não encontrado")
	ErrNotBusinessOwner = errors.New("você não é o responsável por este negócio")
)

type BusinessService interface {
	List(filter repository.BusinessFilter) ([]model.Business, int64, error)
	GetByID(id uint) (*model.Business, error)
	GetBySlug(slug string) (*model.Business, error)
	GetMyBusinesses(ownerID uint) ([]model.Business, error)
	SetStatus(ownerID, businessID uint, status string) (*model.Business, error)
}

type businessService struct {
	businessRepo repository.BusinessRepository
}

func NewBusinessService(businessRepo repository.BusinessRepository) BusinessService {
	return &businessService{businessRepo: businessRepo}
}

func (s *businessService) List(filter repository.BusinessFilter) ([]model.Business, int64, error) {
	return s.businessRepo.List(filter)
}

func (s *businessService) GetByID(id uint) (*model.Business, error) {
	business, err := s.businessRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	return business, nil
}

func (s *businessService) GetBySlug(slug string) (*model.Business, error) {
	business, err := s.businessRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	return business, nil
}

func (s *businessService) GetMyBusinesses(ownerID uint) ([]model.Business, error) {
	return s.businessRepo.FindByOwnerID(ownerID)
}

// SetStatus ativa ou desativa a listagem; somente o dono pode alterar
func (s *businessService) SetStatus(ownerID, businessID uint, status string) (*model.Business, error) {
	if status != model.BusinessStatusActive && status != model.BusinessStatusInactive {
		return nil, errors.New("status inválido")
	}

	business, err := s.businessRepo.FindByID(businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	if business.OwnerID == nil || *business.OwnerID != ownerID {
		return nil, ErrNotBusinessOwner
	}

	if business.Status == status {
		return business, nil
	}

	business.Status = status
	if err := s.businessRepo.Update(business); err != nil {
		logger.Error("Failed to update business status", err, map[string]interface{}{
			"business_id": businessID,
		})
		return nil, err
	}

	logger.Info("Business status updated", map[string]interface{}{
		"business_id": businessID,
		"owner_id":    ownerID,
		"status":      status,
	})

	return business, nil
}
