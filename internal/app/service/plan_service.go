package service

import (
	"errors"
	"time"

	"github.com/economia-solidaria/backend/internal/app/model"
	"github.com/economia-solidaria/backend/internal/app/repository"
	"github.com/economia-solidaria/backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrPlanNotFound         = errors.New("plano não encontrado")
	ErrAlreadyOnPlan        = errors.New("você já está neste plano")
	ErrNoActiveSubscription = errors.New("nenhuma assinatura ativa")
	ErrCannotCancelFreePlan = errors.New("o plano gratuito não pode ser cancelado")
)

// subscriptionTerm vigência de uma assinatura paga
const subscriptionTerm = 30 * 24 * time.Hour

type PlanService interface {
	ListPlans() ([]model.SubscriptionPlan, error)
	GetMySubscription(userID uint) (*model.UserSubscription, error)
	Subscribe(userID uint, planCode string) (*model.UserSubscription, error)
	Cancel(userID uint) error
	ExpireLapsed(now time.Time) (int, error)
}

type planService struct {
	planRepo repository.PlanRepository
}

func NewPlanService(planRepo repository.PlanRepository) PlanService {
	return &planService{planRepo: planRepo}
}

func (s *planService) ListPlans() ([]model.SubscriptionPlan, error) {
	return s.planRepo.ListPlans()
}

// GetMySubscription devolve a assinatura vigente; sem registro, o
// usuário está implicitamente no plano gratuito
func (s *planService) GetMySubscription(userID uint) (*model.UserSubscription, error) {
	subscription, err := s.planRepo.FindSubscriptionByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			free, err := s.planRepo.FindPlanByCode(model.PlanGratuito)
			if err != nil {
				return nil, err
			}
			return &model.UserSubscription{
				UserID: userID,
				PlanID: free.ID,
				Plan:   *free,
				Status: model.SubscriptionStatusActive,
			}, nil
		}
		return nil, err
	}
	return subscription, nil
}

// Subscribe assina ou troca de plano, com vigência de 30 dias para
// planos pagos
func (s *planService) Subscribe(userID uint, planCode string) (*model.UserSubscription, error) {
	plan, err := s.planRepo.FindPlanByCode(planCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	subscription, err := s.planRepo.FindSubscriptionByUserID(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if subscription == nil {
		subscription = &model.UserSubscription{UserID: userID}
	} else if subscription.PlanID == plan.ID && subscription.Status == model.SubscriptionStatusActive {
		return nil, ErrAlreadyOnPlan
	}

	subscription.PlanID = plan.ID
	subscription.Plan = *plan
	subscription.Status = model.SubscriptionStatusActive

	if plan.PriceCents > 0 {
		expires := time.Now().Add(subscriptionTerm)
		subscription.ExpiresAt = &expires
	} else {
		subscription.ExpiresAt = nil
	}

	if err := s.planRepo.SaveSubscription(subscription); err != nil {
		logger.Error("Failed to save subscription", err, map[string]interface{}{
			"user_id": userID,
			"plan":    planCode,
		})
		return nil, err
	}

	logger.Info("Subscription updated", map[string]interface{}{
		"user_id": userID,
		"plan":    planCode,
	})

	return subscription, nil
}

// Cancel rebaixa o usuário para o plano gratuito
func (s *planService) Cancel(userID uint) error {
	subscription, err := s.planRepo.FindSubscriptionByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveSubscription
		}
		return err
	}

	if subscription.Plan.Code == model.PlanGratuito {
		return ErrCannotCancelFreePlan
	}

	free, err := s.planRepo.FindPlanByCode(model.PlanGratuito)
	if err != nil {
		return err
	}

	subscription.PlanID = free.ID
	subscription.Plan = *free
	subscription.Status = model.SubscriptionStatusCanceled
	subscription.ExpiresAt = nil

	if err := s.planRepo.SaveSubscription(subscription); err != nil {
		return err
	}

	logger.Info("Subscription canceled", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}

// ExpireLapsed rebaixa para o gratuito as assinaturas pagas vencidas.
// Chamado diariamente pelo scheduler.
func (s *planService) ExpireLapsed(now time.Time) (int, error) {
	expired, err := s.planRepo.ListExpired(now)
	if err != nil {
		return 0, err
	}

	free, err := s.planRepo.FindPlanByCode(model.PlanGratuito)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, subscription := range expired {
		subscription.PlanID = free.ID
		subscription.Plan = *free
		subscription.Status = model.SubscriptionStatusExpired
		subscription.ExpiresAt = nil

		if err := s.planRepo.SaveSubscription(&subscription); err != nil {
			logger.Error("Failed to expire subscription", err, map[string]interface{}{
				"subscription_id": subscription.ID,
			})
			continue
		}
		count++
	}

	if count > 0 {
		logger.Info("Expired subscriptions downgraded", map[string]interface{}{
			"count": count,
		})
	}

	return count, nil
}
