package model

import (
	"time"

	"gorm.io/gorm"
)

// Códigos dos planos de assinatura
const (
	PlanGratuito = "gratuito"
	PlanPrata    = "prata"
	PlanOuro     = "ouro"
)

// SubscriptionPlan plano de assinatura com os limites de uso
type SubscriptionPlan struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Code             string         `gorm:"uniqueIndex;not null" json:"code"`  // gratuito, prata, ouro
	Name             string         `gorm:"not null" json:"name"`              // nome de exibição
	PriceCents       int            `gorm:"not null" json:"price_cents"`       // preço mensal em centavos
	MaxRegistrations int            `gorm:"not null" json:"max_registrations"` // cadastros simultâneos permitidos
	MaxImages        int            `gorm:"not null" json:"max_images"`        // imagens por cadastro
	Description      string         `gorm:"type:text" json:"description"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

// Status da assinatura
const (
	SubscriptionStatusActive   = "active"   // vigente
	SubscriptionStatusCanceled = "canceled" // cancelada pelo usuário
	SubscriptionStatusExpired  = "expired"  // expirada (rebaixada pelo scheduler)
)

// UserSubscription assinatura vigente de um usuário
type UserSubscription struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint             `gorm:"uniqueIndex;not null" json:"user_id"` // uma assinatura por usuário
	User   User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	PlanID uint             `gorm:"not null;index" json:"plan_id"`
	Plan   SubscriptionPlan `gorm:"foreignKey:PlanID" json:"plan"`

	Status    string     `gorm:"type:varchar(20);default:'active';index" json:"status"`
	ExpiresAt *time.Time `gorm:"index" json:"expires_at,omitempty"` // nil no plano gratuito
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}
