package model

import (
	"time"

	"gorm.io/gorm"
)

// Review avaliação de um negócio. Imutável após a criação:
// só pode ser excluída, pelo autor ou por um admin.
type Review struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BusinessID uint     `gorm:"not null;index" json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	UserID     uint     `gorm:"not null;index" json:"user_id"`
	User       User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Rating  int         `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"` // nota 1-5
	Comment string      `gorm:"type:text;not null" json:"comment"`
	Images  StringArray `gorm:"type:text" json:"images,omitempty"` // URLs de fotos (S3)
}

func (Review) TableName() string {
	return "reviews"
}
