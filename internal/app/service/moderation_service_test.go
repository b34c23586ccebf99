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

func setupModerationServiceTest(t *testing.T) (ModerationService, *gorm.DB) {
	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	svc := NewModerationService(testDB, repository.NewRegistrationRepository(testDB))
	return svc, testDB
}

func createPendingRegistration(t *testing.T, testDB *gorm.DB, ownerID uint, cnpj string) *model.BusinessRegistration {
	t.Helper()

	registration := &model.BusinessRegistration{
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
		Mobile:   "19999998888",
		Hours: model.OperatingHours{
			Semana: &model.TimeWindow{Abre: "08:00", Fecha: "18:00"},
			Almoco: &model.TimeWindow{Abre: "12:00", Fecha: "13:00"},
		},
		Images:   model.StringArray{"data:image/jpeg;base64,aaa", "data:image/jpeg;base64,bbb"},
		Document: "comprovante.pdf",
		Status:   model.RegistrationStatusPending,
	}
	require.NoError(t, testDB.Create(registration).Error)
	return registration
}

func TestModerationService_Approve(t *testing.T) {
	svc, testDB := setupModerationServiceTest(t)

	owner := newTestUser(t, testDB, "dono@example.com")
	admin := newTestUser(t, testDB, "staff@example.com")
	registration := createPendingRegistration(t, testDB, owner.ID, "11222333000181")

	business, err := svc.Approve(admin.ID, registration.ID)
	require.NoError(t, err)
	require.NotNil(t, business)

	// os campos migram inalterados para a listagem ativa
	assert.Equal(t, registration.Name, business.Name)
	assert.Equal(t, registration.CNPJ, business.CNPJ)
	assert.Equal(t, registration.Description, business.Description)
	assert.Equal(t, registration.Category, business.Category)
	assert.Equal(t, registration.Address, business.Address)
	assert.Equal(t, registration.Landline, business.Landline)
	assert.Equal(t, registration.Images, business.Images)
	require.NotNil(t, business.OwnerID)
	assert.Equal(t, owner.ID, *business.OwnerID)
	assert.Equal(t, model.BusinessStatusActive, business.Status)
	require.NotNil(t, business.ApprovedBy)
	assert.Equal(t, admin.ID, *business.ApprovedBy)

	// o registro pendente some da coleção de pendentes
	var pendingCount int64
	testDB.Model(&model.BusinessRegistration{}).
		Where("status = ?", model.RegistrationStatusPending).
		Count(&pendingCount)
	assert.Equal(t, int64(0), pendingCount)

	// as duas cópias nunca coexistem
	var businessCount int64
	testDB.Model(&model.Business{}).Where("cnpj = ?", registration.CNPJ).Count(&businessCount)
	assert.Equal(t, int64(1), businessCount)
}

func TestModerationService_Approve_AlreadyDecided(t *testing.T) {
	svc, testDB := setupModerationServiceTest(t)

	owner := newTestUser(t, testDB, "dono@example.com")
	admin := newTestUser(t, testDB, "staff@example.com")
	registration := createPendingRegistration(t, testDB, owner.ID, "11222333000181")

	_, err := svc.Approve(admin.ID, registration.ID)
	require.NoError(t, err)

	// segunda aprovação do mesmo cadastro falha de forma limpa
	_, err = svc.Approve(admin.ID, registration.ID)
	assert.ErrorIs(t, err, ErrRegistrationDecided)
}

func TestModerationService_Deny(t *testing.T) {
	svc, testDB := setupModerationServiceTest(t)

	owner := newTestUser(t, testDB, "dono@example.com")
	admin := newTestUser(t, testDB, "staff@example.com")
	registration := createPendingRegistration(t, testDB, owner.ID, "11222333000181")

	denied, err := svc.Deny(admin.ID, registration.ID, "Documento ilegível")
	require.NoError(t, err)

	// mutação de status no lugar, sem mover de coleção
	assert.Equal(t, model.RegistrationStatusDenied, denied.Status)
	assert.Equal(t, "Documento ilegível", denied.DeniedReason)
	require.NotNil(t, denied.ReviewedBy)
	assert.Equal(t, admin.ID, *denied.ReviewedBy)

	var businessCount int64
	testDB.Model(&model.Business{}).Count(&businessCount)
	assert.Equal(t, int64(0), businessCount)

	// não dá para negar duas vezes
	_, err = svc.Deny(admin.ID, registration.ID, "Outro motivo")
	assert.ErrorIs(t, err, ErrRegistrationDecided)
}

func TestModerationService_Deny_RequiresReason(t *testing.T) {
	svc, testDB := setupModerationServiceTest(t)

	owner := newTestUser(t, testDB, "dono@example.com")
	registration := createPendingRegistration(t, testDB, owner.ID, "11222333000181")

	_, err := svc.Deny(1, registration.ID, "")
	assert.ErrorIs(t, err, ErrDenyReasonRequired)
}

func TestModerationService_ListPending(t *testing.T) {
	svc, testDB := setupModerationServiceTest(t)

	owner := newTestUser(t, testDB, "dono@example.com")
	createPendingRegistration(t, testDB, owner.ID, "11222333000181")
	createPendingRegistration(t, testDB, owner.ID, "11444777000161")

	pending, total, err := svc.ListPending(0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, pending, 2)
}

func TestModerationService_ExportPending(t *testing.T) {
	svc, testDB := setupModerationServiceTest(t)

	owner := newTestUser(t, testDB, "dono@example.com")
	createPendingRegistration(t, testDB, owner.ID, "11222333000181")

	data, err := svc.ExportPending()
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	// XLSX é um zip: assinatura PK
	assert.Equal(t, byte('P'), data[0])
	assert.Equal(t, byte('K'), data[1])
}
