package service

import (
	"testing"

	"github.com/economia-solidaria/backend/internal/app/model"
	"github.com/economia-solidaria/backend/internal/app/repository"
	"github.com/economia-solidaria/backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBusinessServiceTest(t *testing.T) (BusinessService, *gorm.DB) {
	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	svc := NewBusinessService(repository.NewBusinessRepository(testDB))
	return svc, testDB
}

func seedBusiness(t *testing.T, testDB *gorm.DB, ownerID *uint, name, cnpj, cidade, categoria, status string) *model.Business {
	t.Helper()

	business := &model.Business{
		OwnerID:     ownerID,
		Name:        name,
		CNPJ:        cnpj,
		Description: "Descrição de teste",
		Category:    categoria,
		Address: model.Address{
			Rua:    "Rua das Flores",
			Numero: "123",
			Bairro: "Centro",
			Cidade: cidade,
			Estado: "SP",
		},
		Status:  status,
		Managed: ownerID != nil,
	}
	require.NoError(t, testDB.Create(business).Error)
	return business
}

func TestBusinessService_List(t *testing.T) {
	svc, testDB := setupBusinessServiceTest(t)
	owner := newTestUser(t, testDB, "dono@example.com")

	seedBusiness(t, testDB, &owner.ID, "Padaria Central", "11222333000181", "Campinas", "restaurante", model.BusinessStatusActive)
	seedBusiness(t, testDB, &owner.ID, "Oficina do Zé", "11444777000161", "Campinas", "servicos", model.BusinessStatusActive)
	seedBusiness(t, testDB, nil, "Mercadinho Fechado", "06990590000123", "Campinas", "mercado", model.BusinessStatusInactive)

	tests := []struct {
		name      string
		filter    repository.BusinessFilter
		wantTotal int64
	}{
		{
			name:      "All active",
			filter:    repository.BusinessFilter{},
			wantTotal: 2,
		},
		{
			name:      "By category",
			filter:    repository.BusinessFilter{Categoria: "servicos"},
			wantTotal: 1,
		},
		{
			name:      "Text search",
			filter:    repository.BusinessFilter{Busca: "padaria"},
			wantTotal: 1,
		},
		{
			name:      "No match",
			filter:    repository.BusinessFilter{Busca: "farmácia"},
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			businesses, total, err := svc.List(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			assert.Len(t, businesses, int(tt.wantTotal))
		})
	}
}

func TestBusinessService_GetBySlug(t *testing.T) {
	svc, testDB := setupBusinessServiceTest(t)
	owner := newTestUser(t, testDB, "dono@example.com")

	created := seedBusiness(t, testDB, &owner.ID, "Padaria Central", "11222333000181", "Campinas", "restaurante", model.BusinessStatusActive)
	require.NotEmpty(t, created.Slug)

	found, err := svc.GetBySlug(created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetBySlug("nao-existe")
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestBusinessService_SetStatus(t *testing.T) {
	svc, testDB := setupBusinessServiceTest(t)
	owner := newTestUser(t, testDB, "dono@example.com")
	stranger := newTestUser(t, testDB, "outro@example.com")

	business := seedBusiness(t, testDB, &owner.ID, "Padaria Central", "11222333000181", "Campinas", "restaurante", model.BusinessStatusActive)

	// só o dono altera o status
	_, err := svc.SetStatus(stranger.ID, business.ID, model.BusinessStatusInactive)
	assert.ErrorIs(t, err, ErrNotBusinessOwner)

	updated, err := svc.SetStatus(owner.ID, business.ID, model.BusinessStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, model.BusinessStatusInactive, updated.Status)

	// negócio desativado some da listagem pública
	_, total, err := svc.List(repository.BusinessFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	_, err = svc.SetStatus(owner.ID, business.ID, "pausado")
	assert.Error(t, err)
}

func TestBusinessService_SetStatus_ImportedBusiness(t *testing.T) {
	svc, testDB := setupBusinessServiceTest(t)
	user := newTestUser(t, testDB, "alguem@example.com")

	// importado da planilha municipal, sem dono
	business := seedBusiness(t, testDB, nil, "Mercadinho da Esquina", "11222333000181", "Campinas", "mercado", model.BusinessStatusInactive)

	_, err := svc.SetStatus(user.ID, business.ID, model.BusinessStatusActive)
	assert.ErrorIs(t, err, ErrNotBusinessOwner)
}
