package scheduler

import (
	"time"

	"github.com/economia-solidaria/backend/internal/app/service"
	"github.com/economia-solidaria/backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// SubscriptionScheduler rebaixa diariamente as assinaturas pagas que
// venceram o prazo de 30 dias
type SubscriptionScheduler struct {
	cron        *cron.Cron
	planService service.PlanService
}

func NewSubscriptionScheduler(planService service.PlanService) *SubscriptionScheduler {
	return &SubscriptionScheduler{
		cron:        cron.New(),
		planService: planService,
	}
}

// Start agenda a varredura diária de assinaturas vencidas
func (s *SubscriptionScheduler) Start() error {
	// todo dia às 03:00, horário de menor uso
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting scheduled subscription expiry sweep", nil)

		count, err := s.planService.ExpireLapsed(time.Now())
		if err != nil {
			logger.Error("Subscription expiry sweep failed", err)
			return
		}

		logger.Info("Subscription expiry sweep finished", map[string]interface{}{
			"downgraded": count,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for subscription expiry", err)
		return err
	}

	s.cron.Start()
	logger.Info("Subscription scheduler started successfully (daily at 3:00 AM)", nil)

	return nil
}

// Stop para o scheduler
func (s *SubscriptionScheduler) Stop() {
	logger.Info("Stopping subscription scheduler...", nil)
	s.cron.Stop()
	logger.Info("Subscription scheduler stopped", nil)
}
