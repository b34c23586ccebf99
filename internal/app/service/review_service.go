package service

import (
	"errors"

	"github.com/economia-solidaria/backend/internal/app/model"
	"github.com/economia-solidaria/backend/internal/app/repository"
	"github.com/economia-solidaria/backend/internal/app/validator"
	"github.com/economia-solidaria/backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound     = errors.New("avaliação não encontrada")
	ErrInvalidRating      = errors.New("a nota deve estar entre 1 e 5")
	ErrReviewNotDeletable = errors.New("apenas o autor ou um administrador pode excluir a avaliação")
	ErrReviewBusinessGone = errors.New("negócio não encontrado")
)

// ReviewSummary média e total de avaliações de um negócio
type ReviewSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}

type ReviewService interface {
	Create(userID, businessID uint, rating int, comment string, images []string) (*model.Review, error)
	ListByBusiness(businessID uint, offset, limit int) ([]model.Review, int64, error)
	Summary(businessID uint) (*ReviewSummary, error)
	Delete(userID uint, isAdmin bool, reviewID uint) error
}

type reviewService struct {
	reviewRepo   repository.ReviewRepository
	businessRepo repository.BusinessRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, businessRepo repository.BusinessRepository) ReviewService {
	return &reviewService{
		reviewRepo:   reviewRepo,
		businessRepo: businessRepo,
	}
}

// Create valida a nota e o conteúdo do comentário e grava a avaliação.
// Avaliações são imutáveis: não existe operação de edição.
func (s *reviewService) Create(userID, businessID uint, rating int, comment string, images []string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	if msg := validator.ValidateReviewComment(comment); msg != "" {
		return nil, errors.New(msg)
	}

	if _, err := s.businessRepo.FindByID(businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewBusinessGone
		}
		return nil, err
	}

	review := &model.Review{
		BusinessID: businessID,
		UserID:     userID,
		Rating:     rating,
		Comment:    comment,
		Images:     images,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		logger.Error("Failed to create review", err, map[string]interface{}{
			"business_id": businessID,
			"user_id":     userID,
		})
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id":   review.ID,
		"business_id": businessID,
		"rating":      rating,
	})

	return review, nil
}

func (s *reviewService) ListByBusiness(businessID uint, offset, limit int) ([]model.Review, int64, error) {
	return s.reviewRepo.ListByBusinessID(businessID, offset, limit)
}

func (s *reviewService) Summary(businessID uint) (*ReviewSummary, error) {
	avg, total, err := s.reviewRepo.AverageRating(businessID)
	if err != nil {
		return nil, err
	}
	return &ReviewSummary{AverageRating: avg, TotalReviews: total}, nil
}

// Delete remove a avaliação; permitido apenas ao autor ou a um admin
func (s *reviewService) Delete(userID uint, isAdmin bool, reviewID uint) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if review.UserID != userID && !isAdmin {
		return ErrReviewNotDeletable
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		logger.Error("Failed to delete review", err, map[string]interface{}{
			"review_id": reviewID,
		})
		return err
	}

	logger.Info("Review deleted", map[string]interface{}{
		"review_id":  reviewID,
		"deleted_by": userID,
		"as_admin":   isAdmin,
	})
	return nil
}
