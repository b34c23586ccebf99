package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/economia-solidaria/backend/config"
	"github.com/economia-solidaria/backend/internal/app/media"
	"github.com/economia-solidaria/backend/internal/app/model"
	"github.com/economia-solidaria/backend/internal/app/repository"
	"github.com/economia-solidaria/backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRegistrationServiceTest(t *testing.T) (RegistrationService, *gorm.DB) {
	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	normalizer := media.NewNormalizer(config.UploadConfig{
		MaxImageBytes:    5 * 1024 * 1024,
		TargetImageBytes: 300 * 1024,
		MaxPixelSize:     1280,
		MaxDocumentBytes: 1048576,
	})

	svc := NewRegistrationService(
		repository.NewRegistrationRepository(testDB),
		repository.NewPlanRepository(testDB),
		normalizer,
	)
	return svc, testDB
}

func newTestUser(t *testing.T, testDB *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, PasswordHash: "hash", Name: "Dono de Teste", Role: model.RoleUser}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func testImage(t *testing.T) media.File {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			img.Set(x, y, color.RGBA{R: 180, G: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return media.File{Name: "fachada.png", ContentType: "image/png", Data: buf.Bytes()}
}

func validSubmitInput(t *testing.T, cnpj string) SubmitInput {
	return SubmitInput{
		Nome:      "Padaria do Bairro",
		CNPJ:      cnpj,
		Descricao: "Pães artesanais e café coado",
		Categoria: "restaurante",
		Endereco: model.Address{
			Rua:    "Rua das Flores",
			Numero: "123",
			Bairro: "Centro",
			Cidade: "Campinas",
			Estado: "SP",
		},
		TelefoneFixo: "(19) 3333-4444",
		Horario: model.OperatingHours{
			Semana: &model.TimeWindow{Abre: "08:00", Fecha: "18:00"},
		},
		Imagens:   []media.File{testImage(t)},
		Documento: "comprovante-cnpj.pdf",
	}
}

func TestRegistrationService_Submit_Succeeds(t *testing.T) {
	svc, testDB := setupRegistrationServiceTest(t)
	owner := newTestUser(t, testDB, "dono@example.com")

	result := svc.Submit(context.Background(), owner.ID, validSubmitInput(t, "11.222.333/0001-81"))

	require.Equal(t, StateSucceeded, result.State)
	require.NotNil(t, result.Registration)
	assert.Equal(t, model.RegistrationStatusPending, result.Registration.Status)
	assert.Equal(t, "11222333000181", result.Registration.CNPJ)
	assert.Equal(t, "1933334444", result.Registration.Landline)
	assert.Equal(t, owner.ID, result.Registration.OwnerID)
	require.Len(t, result.Registration.Images, 1)
	assert.Contains(t, result.Registration.Images[0], "data:image/jpeg;base64,")
}

func TestRegistrationService_Submit_ValidationFailure(t *testing.T) {
	svc, testDB := setupRegistrationServiceTest(t)
	owner := newTestUser(t, testDB, "dono@example.com")

	input := validSubmitInput(t, "11.222.333/0001-81")
	input.Nome = "Ana"
	input.Descricao = "Padaria"

	result := svc.Submit(context.Background(), owner.ID, input)

	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, StateValidating, result.FailedAt)
	assert.Contains(t, result.FieldErrors, "nome")
	assert.Contains(t, result.FieldErrors, "descricao")

	// nenhuma escrita parcial
	var count int64
	testDB.Model(&model.BusinessRegistration{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRegistrationService_Submit_DuplicateCNPJ(t *testing.T) {
	svc, testDB := setupRegistrationServiceTest(t)
	owner := newTestUser(t, testDB, "dono@example.com")
	other := newTestUser(t, testDB, "outro@example.com")

	first := svc.Submit(context.Background(), owner.ID, validSubmitInput(t, "11.222.333/0001-81"))
	require.Equal(t, StateSucceeded, first.State)

	// o mesmo CNPJ pendente bloqueia qualquer outra conta
	second := svc.Submit(context.Background(), other.ID, validSubmitInput(t, "11222333000181"))

	assert.Equal(t, StateFailed, second.State)
	assert.Equal(t, StateCheckingUniqueness, second.FailedAt)
	assert.Contains(t, second.FieldErrors, "cnpj")
}

func TestRegistrationService_Submit_ResubmitAfterDeny(t *testing.T) {
	svc, testDB := setupRegistrationServiceTest(t)
	owner := newTestUser(t, testDB, "dono@example.com")

	first := svc.Submit(context.Background(), owner.ID, validSubmitInput(t, "11.222.333/0001-81"))
	require.Equal(t, StateSucceeded, first.State)

	// admin nega o cadastro
	first.Registration.Status = model.RegistrationStatusDenied
	first.Registration.DeniedReason = "Comprovante ilegível"
	require.NoError(t, testDB.Save(first.Registration).Error)

	// o reenvio corrigido com o MESMO CNPJ deve passar: cadastro negado
	// não reserva o CNPJ
	second := svc.Submit(context.Background(), owner.ID, validSubmitInput(t, "11.222.333/0001-81"))

	require.Equal(t, StateSucceeded, second.State)
	assert.Equal(t, model.RegistrationStatusPending, second.Registration.Status)
	assert.NotEqual(t, first.Registration.ID, second.Registration.ID)
}

func TestRegistrationService_Submit_PlanLimit(t *testing.T) {
	svc, testDB := setupRegistrationServiceTest(t)
	owner := newTestUser(t, testDB, "dono@example.com")

	// plano gratuito permite um único cadastro
	first := svc.Submit(context.Background(), owner.ID, validSubmitInput(t, "11.222.333/0001-81"))
	require.Equal(t, StateSucceeded, first.State)

	second := svc.Submit(context.Background(), owner.ID, validSubmitInput(t, "11.444.777/0001-61"))

	assert.Equal(t, StateFailed, second.State)
	assert.ErrorIs(t, second.Err, ErrRegistrationLimit)
}

func TestRegistrationService_Submit_PaidPlanAllowsMore(t *testing.T) {
	svc, testDB := setupRegistrationServiceTest(t)
	owner := newTestUser(t, testDB, "dono@example.com")

	var prata model.SubscriptionPlan
	require.NoError(t, testDB.Where("code = ?", model.PlanPrata).First(&prata).Error)
	require.NoError(t, testDB.Create(&model.UserSubscription{
		UserID: owner.ID,
		PlanID: prata.ID,
		Status: model.SubscriptionStatusActive,
	}).Error)

	first := svc.Submit(context.Background(), owner.ID, validSubmitInput(t, "11.222.333/0001-81"))
	require.Equal(t, StateSucceeded, first.State)

	second := svc.Submit(context.Background(), owner.ID, validSubmitInput(t, "11.444.777/0001-61"))
	assert.Equal(t, StateSucceeded, second.State)
}

func TestRegistrationService_Submit_MediaRejection(t *testing.T) {
	svc, testDB := setupRegistrationServiceTest(t)
	owner := newTestUser(t, testDB, "dono@example.com")

	input := validSubmitInput(t, "11.222.333/0001-81")
	input.Imagens = append(input.Imagens, media.File{
		Name:        "laudo.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-"),
	})

	result := svc.Submit(context.Background(), owner.ID, input)

	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, StateNormalizingMedia, result.FailedAt)
	assert.ErrorIs(t, result.Err, media.ErrUnsupportedType)

	var count int64
	testDB.Model(&model.BusinessRegistration{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
