package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

// StringArray tipo customizado para arrays serializados em JSON
type StringArray []string

// Value implementa database/sql/driver.Valuer
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implementa database/sql.Scanner
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan StringArray")
		}
		bytes = []byte(str)
	}

	return json.Unmarshal(bytes, s)
}

// TimeWindow janela de horário no formato HH:MM
type TimeWindow struct {
	Abre  string `json:"abre"`
	Fecha string `json:"fecha"`
}

// OperatingHours horários de funcionamento do negócio.
// Cada grupo de dias é opcional: nil significa fechado. Um negócio só
// de fim de semana deixa Semana nulo.
type OperatingHours struct {
	Semana  *TimeWindow `json:"semana,omitempty"`
	Sabado  *TimeWindow `json:"sabado,omitempty"`
	Domingo *TimeWindow `json:"domingo,omitempty"`
	Almoco  *TimeWindow `json:"almoco,omitempty"` // intervalo de almoço, dentro do horário da semana
}

// Value implementa database/sql/driver.Valuer
func (h OperatingHours) Value() (driver.Value, error) {
	return json.Marshal(h)
}

// Scan implementa database/sql.Scanner
func (h *OperatingHours) Scan(value interface{}) error {
	if value == nil {
		*h = OperatingHours{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan OperatingHours")
		}
		bytes = []byte(str)
	}

	return json.Unmarshal(bytes, h)
}

// Address endereço do negócio (embutido)
type Address struct {
	Rua         string `gorm:"not null" json:"rua"`
	Numero      string `gorm:"type:varchar(20)" json:"numero"`
	Complemento string `json:"complemento,omitempty"`
	Bairro      string `gorm:"index;not null" json:"bairro"`
	Cidade      string `gorm:"index;not null" json:"cidade"`
	Estado      string `gorm:"type:varchar(2);not null" json:"estado"` // sigla UF
}

// Status do negócio ativo
const (
	BusinessStatusActive   = "active"   // visível na vitrine pública
	BusinessStatusInactive = "inactive" // oculto pelo dono
)

// Business negócio aprovado, visível na vitrine pública
type Business struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OwnerID *uint `gorm:"index" json:"owner_id"` // nil para negócios importados da base municipal
	Owner   *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Name        string         `gorm:"not null" json:"name"`
	Slug        string         `gorm:"uniqueIndex" json:"slug"` // identificador para URL
	CNPJ        string         `gorm:"uniqueIndex;not null;type:varchar(14)" json:"cnpj"` // somente dígitos
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"index;not null" json:"category"`
	Address     Address        `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Landline    string         `gorm:"type:varchar(15)" json:"landline"` // telefone fixo, somente dígitos
	Mobile      string         `gorm:"type:varchar(15)" json:"mobile"`   // celular, somente dígitos
	Hours       OperatingHours `gorm:"type:text" json:"hours"`
	Images      StringArray    `gorm:"type:text" json:"images"` // imagens comprimidas em base64

	Status  string `gorm:"type:varchar(20);default:'active';index" json:"status"`
	Managed bool   `gorm:"default:true;index" json:"managed"` // false para listagens importadas sem dono

	ApprovedBy *uint      `json:"approved_by,omitempty"` // admin que aprovou
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
}

func (Business) TableName() string {
	return "businesses"
}

// generateSlug monta o identificador de URL a partir da cidade e do nome
func generateSlug(cidade, name string) string {
	slug := fmt.Sprintf("%s-%s", cidade, name)

	// apenas letras, números e hífens
	reg := regexp.MustCompile(`[^\p{L}\p{N}-]+`)
	slug = reg.ReplaceAllString(slug, "-")

	reg = regexp.MustCompile(`-+`)
	slug = reg.ReplaceAllString(slug, "-")

	slug = strings.Trim(slug, "-")
	slug = strings.ToLower(slug)

	return slug
}

// BeforeCreate gera o slug automaticamente, com sufixo numérico em caso de colisão
func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.Slug == "" {
		baseSlug := generateSlug(b.Address.Cidade, b.Name)
		slug := baseSlug

		counter := 1
		for {
			var count int64
			if err := tx.Model(&Business{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
				return err
			}

			if count == 0 {
				break
			}

			counter++
			slug = fmt.Sprintf("%s-%d", baseSlug, counter)
		}

		b.Slug = slug
	}
	return nil
}
