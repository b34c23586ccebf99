package repository

import (
	"strings"

	"github.com/economia-solidaria/backend/internal/app/model"
	"gorm.io/gorm"
)

// BusinessFilter filtros da vitrine pública
type BusinessFilter struct {
	Cidade    string
	Categoria string
	Busca     string // busca textual em nome e descrição
	Offset    int
	Limit     int
}

type BusinessRepository interface {
	Create(business *model.Business) error
	CreateInBatches(businesses []model.Business, batchSize int) error
	FindByID(id uint) (*model.Business, error)
	FindBySlug(slug string) (*model.Business, error)
	FindByOwnerID(ownerID uint) ([]model.Business, error)
	List(filter BusinessFilter) ([]model.Business, int64, error)
	CNPJExists(cnpj string) (bool, error)
	Update(business *model.Business) error
	Delete(id uint) error
}

type businessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(business *model.Business) error {
	return r.db.Create(business).Error
}

// CreateInBatches insere listagens em lote (importação da base municipal)
func (r *businessRepository) CreateInBatches(businesses []model.Business, batchSize int) error {
	return r.db.CreateInBatches(businesses, batchSize).Error
}

func (r *businessRepository) FindByID(id uint) (*model.Business, error) {
	var business model.Business
	if err := r.db.Preload("Owner").First(&business, id).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) FindBySlug(slug string) (*model.Business, error) {
	var business model.Business
	if err := r.db.Preload("Owner").Where("slug = ?", slug).First(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) FindByOwnerID(ownerID uint) ([]model.Business, error) {
	var businesses []model.Business
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&businesses).Error
	if err != nil {
		return nil, err
	}
	return businesses, nil
}

// List lista negócios ativos com filtros de cidade, categoria e busca textual
func (r *businessRepository) List(filter BusinessFilter) ([]model.Business, int64, error) {
	var businesses []model.Business
	var total int64

	query := r.db.Model(&model.Business{}).
		Where("status = ?", model.BusinessStatusActive)

	if filter.Cidade != "" {
		query = query.Where("address_cidade = ?", filter.Cidade)
	}
	if filter.Categoria != "" {
		query = query.Where("category = ?", filter.Categoria)
	}
	if filter.Busca != "" {
		pattern := "%" + strings.ToLower(filter.Busca) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	err := query.Order("created_at DESC").
		Offset(filter.Offset).
		Limit(limit).
		Find(&businesses).Error
	if err != nil {
		return nil, 0, err
	}

	return businesses, total, nil
}

func (r *businessRepository) CNPJExists(cnpj string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Business{}).
		Where("cnpj = ?", cnpj).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *businessRepository) Update(business *model.Business) error {
	return r.db.Save(business).Error
}

func (r *businessRepository) Delete(id uint) error {
	return r.db.Delete(&model.Business{}, id).Error
}
