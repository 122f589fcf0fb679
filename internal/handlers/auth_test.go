package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sitecrew/sitecrew-api/internal/constants"
	"github.com/sitecrew/sitecrew-api/internal/database"
	"github.com/sitecrew/sitecrew-api/internal/dto"
	"github.com/sitecrew/sitecrew-api/internal/models"
	"github.com/sitecrew/sitecrew-api/internal/repository"
	"github.com/sitecrew/sitecrew-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationMember{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	handler := NewAuthHandler(authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
	}
}

func newAuthRouter(env authTestEnv) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/signup", env.handler.Signup)
	r.POST("/api/auth/login", env.handler.Login)
	return r
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	payload := map[string]string{
		"name":     "Dana Mason",
		"email":    "dana@example.com",
		"password": "supersecret",
		"role":     "foreman",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, payload["email"], response.Email)
	require.Equal(t, payload["role"], response.Role)
	require.True(t, response.Active)
}

func TestAuthHandler_SignupDuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	_, err := env.authService.Signup(services.SignupInput{
		Name:     "First",
		Email:    "dup@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	payload := map[string]string{
		"name":     "Second",
		"email":    "dup@example.com",
		"password": "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	_, err := env.authService.Signup(services.SignupInput{
		Name:     "Existing",
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	payload := map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, payload["email"], response.Email)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
}

func TestAuthHandler_LoginDeactivatedUser(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	user, err := env.authService.Signup(services.SignupInput{
		Name:     "Gone",
		Email:    "gone@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("active", false).Error)

	payload := map[string]string{
		"email":    "gone@example.com",
		"password": "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Signup(services.SignupInput{
		Name:     "Current",
		Email:    "current@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.Email, response.Email)
}
