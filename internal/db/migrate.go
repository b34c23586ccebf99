package db

import (
	"github.com/economia-solidaria/backend/internal/app/model"
	"github.com/economia-solidaria/backend/pkg/logger"
	"github.com/economia-solidaria/backend/pkg/util"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.SubscriptionPlan{},
		&model.UserSubscription{},
		&model.BusinessRegistration{},
		&model.Business{},
		&model.Review{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(DB); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database
func Seed() error {
	return seedInitialData(DB)
}

func seedInitialData(db *gorm.DB) error {
	logger.Info("Seeding initial data...")

	if err := seedPlans(db); err != nil {
		logger.Error("Failed to seed subscription plans", err)
		return err
	}

	if err := seedAdminUser(db); err != nil {
		logger.Error("Failed to seed admin user", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

// seedPlans cria os planos de assinatura padrão
func seedPlans(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.SubscriptionPlan{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Subscription plans already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	plans := []model.SubscriptionPlan{
		{
			Code:             model.PlanGratuito,
			Name:             "Gratuito",
			PriceCents:       0,
			MaxRegistrations: 1,
			MaxImages:        3,
			Description:      "Um cadastro de negócio com até 3 imagens",
		},
		{
			Code:             model.PlanPrata,
			Name:             "Prata",
			PriceCents:       2990,
			MaxRegistrations: 3,
			MaxImages:        6,
			Description:      "Até 3 cadastros de negócio com até 6 imagens cada",
		},
		{
			Code:             model.PlanOuro,
			Name:             "Ouro",
			PriceCents:       4990,
			MaxRegistrations: 10,
			MaxImages:        6,
			Description:      "Até 10 cadastros de negócio com até 6 imagens cada",
		},
	}

	for _, plan := range plans {
		if err := db.Create(&plan).Error; err != nil {
			logger.Error("Failed to create subscription plan", err, map[string]interface{}{
				"plan": plan.Code,
			})
			return err
		}
	}

	logger.Info("Subscription plans seeded successfully", map[string]interface{}{
		"total_plans": len(plans),
	})
	return nil
}

// seedAdminUser cria o usuário administrador inicial
func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Admin user already exists, skipping...")
		return nil
	}

	hash, err := util.HashPassword("admin1234")
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        "admin@economiasolidaria.gov.br",
		PasswordHash: hash,
		Name:         "Administrador",
		Role:         model.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	logger.Info("Admin user seeded successfully", map[string]interface{}{
		"email": admin.Email,
	})
	return nil
}
