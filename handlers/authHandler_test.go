package handlers

import (
	"NutriCare/models"
	"NutriCare/repositories"
	"NutriCare/services"
	"NutriCare/utils"
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

type mockUserRepo struct {
	createUserFunc func(ctx context.Context, user *models.User) error
	getUserFunc    func(ctx context.Context, userID string) (*models.User, error)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	return m.createUserFunc(ctx, user)
}

func (m *mockUserRepo) GetUserByUserID(ctx context.Context, userID string) (*models.User, error) {
	return m.getUserFunc(ctx, userID)
}

func newAuthRouter(repo repositories.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(services.NewAuthService(repo))
	router := gin.New()
	router.POST("/api/signup", handler.Signup)
	router.POST("/api/login", handler.Login)
	return router
}

func TestSignup_Created(t *testing.T) {
	repo := &mockUserRepo{
		createUserFunc: func(ctx context.Context, user *models.User) error {
			return nil
		},
	}
	router := newAuthRouter(repo)

	recorder := performJSON(t, router, http.MethodPost, "/api/signup", map[string]string{
		"name":     "Dr. Anita Rao",
		"email":    "anita.rao@example.org",
		"userId":   "arao",
		"password": "s3cret-pass",
	})

	if recorder.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	body := decodeBody(t, recorder)
	if body["message"] != "Signup successful!" {
		t.Errorf("Unexpected message: %v", body["message"])
	}
}

func TestSignup_DuplicateConflict(t *testing.T) {
	repo := &mockUserRepo{
		createUserFunc: func(ctx context.Context, user *models.User) error {
			return repositories.ErrDuplicate
		},
	}
	router := newAuthRouter(repo)

	recorder := performJSON(t, router, http.MethodPost, "/api/signup", map[string]string{
		"name":     "Dr. Anita Rao",
		"email":    "anita.rao@example.org",
		"userId":   "arao",
		"password": "s3cret-pass",
	})

	if recorder.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d", recorder.Code)
	}
	body := decodeBody(t, recorder)
	if body["error"] != "Email or User ID already exists." {
		t.Errorf("Unexpected error message: %v", body["error"])
	}
}

func TestLogin_SameResponseForUnknownUserAndWrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("right-pass")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	repo := &mockUserRepo{
		getUserFunc: func(ctx context.Context, userID string) (*models.User, error) {
			if userID == "arao" {
				return &models.User{UserID: "arao", Password: hash}, nil
			}
			return nil, repositories.ErrNotFound
		},
	}
	router := newAuthRouter(repo)

	unknown := performJSON(t, router, http.MethodPost, "/api/login", map[string]string{
		"userId":   "nobody",
		"password": "right-pass",
	})
	wrongPass := performJSON(t, router, http.MethodPost, "/api/login", map[string]string{
		"userId":   "arao",
		"password": "wrong-pass",
	})

	if unknown.Code != http.StatusUnauthorized || wrongPass.Code != http.StatusUnauthorized {
		t.Fatalf("Expected both 401, got %d and %d", unknown.Code, wrongPass.Code)
	}
	if unknown.Body.String() != wrongPass.Body.String() {
		t.Errorf("Expected identical bodies, got %q and %q", unknown.Body.String(), wrongPass.Body.String())
	}
}

func TestLogin_SuccessOmitsPasswordHash(t *testing.T) {
	hash, err := utils.HashPassword("right-pass")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	repo := &mockUserRepo{
		getUserFunc: func(ctx context.Context, userID string) (*models.User, error) {
			return &models.User{UserID: userID, Name: "Dr. Anita Rao", Email: "anita.rao@example.org", Password: hash}, nil
		},
	}
	router := newAuthRouter(repo)

	recorder := performJSON(t, router, http.MethodPost, "/api/login", map[string]string{
		"userId":   "arao",
		"password": "right-pass",
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	body := decodeBody(t, recorder)
	user, ok := body["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected user object, got %v", body)
	}
	if user["userId"] != "arao" || user["name"] != "Dr. Anita Rao" || user["email"] != "anita.rao@example.org" {
		t.Errorf("Unexpected user payload: %v", user)
	}
	if _, present := user["password"]; present {
		t.Error("Expected no password field in login response")
	}
}
