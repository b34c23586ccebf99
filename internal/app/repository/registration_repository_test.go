package repository

import (
	"testing"

	"github.com/economia-solidaria/backend/internal/app/model"
	"github.com/economia-solidaria/backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRegistrationRepoTest(t *testing.T) (RegistrationRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)
	return NewRegistrationRepository(testDB), testDB
}

func createTestOwner(t *testing.T, testDB *gorm.DB, email string) *model.User {
	t.Helper()
	owner := &model.User{
		Email:        email,
		PasswordHash: "hash",
		Name:         "Dono de Teste",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(owner).Error)
	return owner
}

func pendingRegistration(ownerID uint, cnpj string) *model.BusinessRegistration {
	return &model.BusinessRegistration{
		OwnerID:     ownerID,
		Name:        "Padaria do Bairro",
		CNPJ:        cnpj,
		Description: "Pães artesanais e café",
		Category:    "restaurante",
		Address: model.Address{
			Rua:    "Rua das Flores",
			Numero: "123",
			Bairro: "Centro",
			Cidade: "Campinas",
			Estado: "SP",
		},
		Landline: "1933334444",
		Hours: model.OperatingHours{
			Semana: &model.TimeWindow{Abre: "08:00", Fecha: "18:00"},
		},
		Images:   model.StringArray{"data:image/jpeg;base64,aaa"},
		Document: "comprovante.pdf",
		Status:   model.RegistrationStatusPending,
	}
}

func TestRegistrationRepository_TaxIDExists(t *testing.T) {
	repo, testDB := setupRegistrationRepoTest(t)
	owner := createTestOwner(t, testDB, "dono@example.com")

	// CNPJ em cadastro pendente
	require.NoError(t, repo.Create(pendingRegistration(owner.ID, "11222333000181")))

	// CNPJ em negócio ativo
	require.NoError(t, testDB.Create(&model.Business{
		OwnerID:  &owner.ID,
		Name:     "Mercearia Central",
		CNPJ:     "11444777000161",
		Category: "comercio",
		Address:  model.Address{Rua: "Av. Brasil", Numero: "10", Bairro: "Centro", Cidade: "Campinas", Estado: "SP"},
		Status:   model.BusinessStatusActive,
	}).Error)

	tests := []struct {
		name string
		cnpj string
		want bool
	}{
		{"Found in pending collection", "11222333000181", true},
		{"Found in active collection", "11444777000161", true},
		{"Not registered anywhere", "57601826000175", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exists, err := repo.TaxIDExists(tt.cnpj)
			require.NoError(t, err)
			assert.Equal(t, tt.want, exists)
		})
	}
}

func TestRegistrationRepository_TaxIDExists_IgnoresDenied(t *testing.T) {
	repo, testDB := setupRegistrationRepoTest(t)
	owner := createTestOwner(t, testDB, "dono@example.com")

	denied := pendingRegistration(owner.ID, "11222333000181")
	denied.Status = model.RegistrationStatusDenied
	denied.DeniedReason = "Documento ilegível"
	require.NoError(t, testDB.Create(denied).Error)

	exists, err := repo.TaxIDExists("11222333000181")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRegistrationRepository_CountActiveByOwner(t *testing.T) {
	repo, testDB := setupRegistrationRepoTest(t)
	owner := createTestOwner(t, testDB, "dono@example.com")
	other := createTestOwner(t, testDB, "outro@example.com")

	require.NoError(t, repo.Create(pendingRegistration(owner.ID, "11222333000181")))
	require.NoError(t, testDB.Create(&model.Business{
		OwnerID:  &owner.ID,
		Name:     "Mercearia Central",
		CNPJ:     "11444777000161",
		Category: "comercio",
		Address:  model.Address{Rua: "Av. Brasil", Numero: "10", Bairro: "Centro", Cidade: "Campinas", Estado: "SP"},
		Status:   model.BusinessStatusActive,
	}).Error)
	require.NoError(t, repo.Create(pendingRegistration(other.ID, "57601826000175")))

	count, err := repo.CountActiveByOwner(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountActiveByOwner(other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRegistrationRepository_ListPending(t *testing.T) {
	repo, testDB := setupRegistrationRepoTest(t)
	owner := createTestOwner(t, testDB, "dono@example.com")

	require.NoError(t, repo.Create(pendingRegistration(owner.ID, "11222333000181")))
	require.NoError(t, repo.Create(pendingRegistration(owner.ID, "11444777000161")))

	denied := pendingRegistration(owner.ID, "57601826000175")
	denied.Status = model.RegistrationStatusDenied
	require.NoError(t, testDB.Create(denied).Error)

	pending, total, err := repo.ListPending(0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, pending, 2)
	for _, reg := range pending {
		assert.Equal(t, model.RegistrationStatusPending, reg.Status)
	}
}
