package repository

import (
	"github.com/economia-solidaria/backend/internal/app/model"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.Review) error
	FindByID(id uint) (*model.Review, error)
	ListByBusinessID(businessID uint, offset, limit int) ([]model.Review, int64, error)
	AverageRating(businessID uint) (float64, int64, error)
	Delete(id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.Preload("User").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByBusinessID lista as avaliações de um negócio, mais recentes primeiro
func (r *reviewRepository) ListByBusinessID(businessID uint, offset, limit int) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	query := r.db.Model(&model.Review{}).Where("business_id = ?", businessID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// AverageRating média e total de avaliações de um negócio
func (r *reviewRepository) AverageRating(businessID uint) (float64, int64, error) {
	var count int64
	if err := r.db.Model(&model.Review{}).Where("business_id = ?", businessID).Count(&count).Error; err != nil {
		return 0, 0, err
	}

	var avg float64
	if count > 0 {
		err := r.db.Model(&model.Review{}).
			Where("business_id = ?", businessID).
			Select("AVG(rating)").
			Scan(&avg).Error
		if err != nil {
			return 0, 0, err
		}
	}

	return avg, count, nil
}

func (r *reviewRepository) Delete(id uint) error {
	return r.db.Delete(&model.Review{}, id).Error
}
