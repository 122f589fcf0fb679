package services

import (
	"testing"
	"time"

	"github.com/sitecrew/sitecrew-api/internal/models"
	"github.com/sitecrew/sitecrew-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationMember{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewAuthService(repository.NewUserRepository(db)), db
}

func TestAuthService_SignupCreatesPersonalOrganization(t *testing.T) {
	service, db := setupAuthService(t)

	user, err := service.Signup(SignupInput{
		Name:     "Dana Mason",
		Email:    "Dana@Example.com",
		Password: "supersecret",
		Role:     "foreman",
	})
	require.NoError(t, err)
	require.Equal(t, "dana@example.com", user.Email)
	require.True(t, user.Active)

	var member models.OrganizationMember
	require.NoError(t, db.Preload("Organization").Where("user_id = ?", user.ID).First(&member).Error)
	require.Equal(t, models.RoleOwner, member.Role)
	require.Equal(t, "Dana Mason's Company", member.Organization.Name)
}

func TestAuthService_SignupRejectsDuplicateEmail(t *testing.T) {
	service, _ := setupAuthService(t)

	_, err := service.Signup(SignupInput{Name: "First", Email: "dup@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = service.Signup(SignupInput{Name: "Second", Email: "DUP@example.com", Password: "supersecret"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_SignupRejectsShortPassword(t *testing.T) {
	service, _ := setupAuthService(t)

	_, err := service.Signup(SignupInput{Name: "Short", Email: "short@example.com", Password: "tiny"})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_LoginVerifiesCredentials(t *testing.T) {
	service, _ := setupAuthService(t)

	created, err := service.Signup(SignupInput{Name: "Login", Email: "login@example.com", Password: "supersecret"})
	require.NoError(t, err)

	user, err := service.Login(LoginInput{Email: "login@example.com", Password: "supersecret"})
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)

	_, err = service.Login(LoginInput{Email: "login@example.com", Password: "wrongpass"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginRefusesDeactivatedUser(t *testing.T) {
	service, db := setupAuthService(t)

	user, err := service.Signup(SignupInput{Name: "Gone", Email: "gone@example.com", Password: "supersecret"})
	require.NoError(t, err)

	// Deactivate the way the offboarding executor does
	now := time.Now()
	require.NoError(t, repository.NewUserRepository(db).Deactivate(user.ID, now))

	_, err = service.Login(LoginInput{Email: "gone@example.com", Password: "supersecret"})
	require.ErrorIs(t, err, ErrAccountDeactivated)

	// Reactivation lifts the refusal
	require.NoError(t, repository.NewUserRepository(db).Reactivate(user.ID))
	_, err = service.Login(LoginInput{Email: "gone@example.com", Password: "supersecret"})
	require.NoError(t, err)
}
