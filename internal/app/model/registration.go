package model

import (
	"time"

	"gorm.io/gorm"
)

// Status do cadastro pendente
const (
	RegistrationStatusPending = "pending" // aguardando análise do admin
	RegistrationStatusDenied  = "denied"  // negado com justificativa
)

// BusinessRegistration cadastro de negócio aguardando aprovação.
// Na aprovação o registro é copiado para businesses e removido daqui
// dentro de uma única transação.
type BusinessRegistration struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OwnerID uint `gorm:"not null;index" json:"owner_id"` // imutável após a criação
	Owner   User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"owner,omitempty"`

	Name string `gorm:"not null" json:"name"`
	// CNPJ não leva índice único: a unicidade vale só contra cadastros
	// pendentes e negócios ativos (TaxIDExists), então um cadastro
	// negado não pode bloquear o reenvio corrigido do mesmo CNPJ.
	CNPJ        string         `gorm:"index;not null;type:varchar(14)" json:"cnpj"` // somente dígitos
	Description string         `gorm:"type:text;not null" json:"description"`
	Category    string         `gorm:"index;not null" json:"category"`
	Address     Address        `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Landline    string         `gorm:"type:varchar(15)" json:"landline"`
	Mobile      string         `gorm:"type:varchar(15)" json:"mobile"`
	Hours       OperatingHours `gorm:"type:text" json:"hours"`
	Images      StringArray    `gorm:"type:text" json:"images"`                 // imagens comprimidas em base64
	Document    string         `json:"document"`                                // nome do comprovante de conformidade

	Status       string     `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	DeniedReason string     `gorm:"type:text" json:"denied_reason,omitempty"`
	ReviewedBy   *uint      `json:"reviewed_by,omitempty"` // admin que analisou
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
}

func (BusinessRegistration) TableName() string {
	return "business_registrations"
}
