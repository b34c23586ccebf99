package repository

import (
	"time"

	"github.com/economia-solidaria/backend/internal/app/model"
	"gorm.io/gorm"
)

type PlanRepository interface {
	ListPlans() ([]model.SubscriptionPlan, error)
	FindPlanByCode(code string) (*model.SubscriptionPlan, error)
	FindSubscriptionByUserID(userID uint) (*model.UserSubscription, error)
	SaveSubscription(subscription *model.UserSubscription) error
	ListExpired(now time.Time) ([]model.UserSubscription, error)
}

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) ListPlans() ([]model.SubscriptionPlan, error) {
	var plans []model.SubscriptionPlan
	if err := r.db.Order("price_cents ASC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *planRepository) FindPlanByCode(code string) (*model.SubscriptionPlan, error) {
	var plan model.SubscriptionPlan
	if err := r.db.Where("code = ?", code).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) FindSubscriptionByUserID(userID uint) (*model.UserSubscription, error) {
	var subscription model.UserSubscription
	err := r.db.Preload("Plan").Where("user_id = ?", userID).First(&subscription).Error
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

func (r *planRepository) SaveSubscription(subscription *model.UserSubscription) error {
	return r.db.Save(subscription).Error
}

// ListExpired assinaturas ativas com vigência encerrada, para o
// rebaixamento diário do scheduler
func (r *planRepository) ListExpired(now time.Time) ([]model.UserSubscription, error) {
	var subscriptions []model.UserSubscription
	err := r.db.Preload("Plan").
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", model.SubscriptionStatusActive, now).
		Find(&subscriptions).Error
	if err != nil {
		return nil, err
	}
	return subscriptions, nil
}
