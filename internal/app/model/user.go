package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string // papel do usuário

const (
	RoleUser  UserRole = "user"  // usuário comum (dono de negócio ou visitante)
	RoleAdmin UserRole = "admin" // administrador municipal
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `json:"-"`                                           // vazio para contas criadas via login federado
	Name         string         `gorm:"not null" json:"name"`                        // nome completo
	Phone        string         `json:"phone"`                                       // somente dígitos, ex: 11999998888
	ProfileImage string         `json:"profile_image"`                               // URL da foto de perfil (S3)
	GoogleID     *string        `gorm:"uniqueIndex" json:"-"`                        // sub do Google para contas federadas
	Role         UserRole       `gorm:"type:varchar(20);default:'user'" json:"role"` // papel
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Registrations []BusinessRegistration `gorm:"foreignKey:OwnerID" json:"registrations,omitempty"` // cadastros pendentes
	Businesses    []Business             `gorm:"foreignKey:OwnerID" json:"businesses,omitempty"`    // negócios aprovados
}

func (User) TableName() string {
	return "users"
}
