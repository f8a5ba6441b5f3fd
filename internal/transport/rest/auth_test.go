package rest

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
	"github.com/heartmarshall/bookswap-backend/internal/service/auth"
)

type authServiceMock struct {
	RegisterFunc         func(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	LoginFunc            func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	ForgotPasswordFunc   func(ctx context.Context, input auth.ForgotPasswordInput) (string, error)
	VerifyResetTokenFunc func(ctx context.Context, rawToken string) error
	ResetPasswordFunc    func(ctx context.Context, input auth.ResetPasswordInput) error
	CheckEmailFunc       func(ctx context.Context, email string) (bool, error)
}

func (m *authServiceMock) Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
	return m.RegisterFunc(ctx, input)
}

func (m *authServiceMock) Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
	return m.LoginFunc(ctx, input)
}

func (m *authServiceMock) ForgotPassword(ctx context.Context, input auth.ForgotPasswordInput) (string, error) {
	return m.ForgotPasswordFunc(ctx, input)
}

func (m *authServiceMock) VerifyResetToken(ctx context.Context, rawToken string) error {
	return m.VerifyResetTokenFunc(ctx, rawToken)
}

func (m *authServiceMock) ResetPassword(ctx context.Context, input auth.ResetPasswordInput) error {
	return m.ResetPasswordFunc(ctx, input)
}

func (m *authServiceMock) CheckEmail(ctx context.Context, email string) (bool, error) {
	return m.CheckEmailFunc(ctx, email)
}

func sampleAuthResult() *auth.AuthResult {
	return &auth.AuthResult{
		AccessToken: "signed.jwt.token",
		User: &domain.User{
			ID:       uuid.New(),
			Username: "lena",
			Email:    "lena@example.com",
		},
	}
}

func TestAuthRegister_Created(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		RegisterFunc: func(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
			if input.Email != "lena@example.com" || input.Username != "lena" {
				t.Errorf("input = %+v", input)
			}
			return sampleAuthResult(), nil
		},
	}
	h := NewAuthHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		bytes.NewBufferString(`{"username":"lena","email":"lena@example.com","password":"secret123","location":"Berlin"}`))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["token"] != "signed.jwt.token" {
		t.Errorf("token = %v", body["token"])
	}
	user, _ := body["user"].(map[string]any)
	if user["username"] != "lena" {
		t.Errorf("user = %v", user)
	}
}

func TestAuthRegister_Duplicate409(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		RegisterFunc: func(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
			return nil, domain.ErrAlreadyExists
		},
	}
	h := NewAuthHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		bytes.NewBufferString(`{"username":"lena","email":"lena@example.com","password":"secret123"}`))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestAuthLogin_BadCredentials401(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		LoginFunc: func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	h := NewAuthHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewBufferString(`{"email":"lena@example.com","password":"wrong"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "unauthorized" {
		t.Error("error body must not reveal which credential failed")
	}
}

func TestAuthLogin_MalformedBody400(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&authServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{not json`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAuthForgotPassword_ReturnsToken(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		ForgotPasswordFunc: func(ctx context.Context, input auth.ForgotPasswordInput) (string, error) {
			return "raw-reset-token", nil
		},
	}
	h := NewAuthHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password",
		bytes.NewBufferString(`{"email":"lena@example.com"}`))
	rec := httptest.NewRecorder()

	h.ForgotPassword(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if decodeBody(t, rec)["resetToken"] != "raw-reset-token" {
		t.Error("response must carry the raw reset token")
	}
}

func TestAuthResetPassword_UsesPathToken(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		ResetPasswordFunc: func(ctx context.Context, input auth.ResetPasswordInput) error {
			if input.Token != "tok123" {
				t.Errorf("token = %q", input.Token)
			}
			if input.Password != "newsecret1" {
				t.Errorf("password = %q", input.Password)
			}
			return nil
		},
	}
	h := NewAuthHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/reset-password/tok123",
		bytes.NewBufferString(`{"password":"newsecret1"}`))
	req.SetPathValue("token", "tok123")
	rec := httptest.NewRecorder()

	h.ResetPassword(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAuthVerifyResetToken_Invalid404(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		VerifyResetTokenFunc: func(ctx context.Context, rawToken string) error {
			return domain.ErrNotFound
		},
	}
	h := NewAuthHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify-reset-token/expired", nil)
	req.SetPathValue("token", "expired")
	rec := httptest.NewRecorder()

	h.VerifyResetToken(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAuthCheckEmail(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		CheckEmailFunc: func(ctx context.Context, email string) (bool, error) {
			return email == "taken@example.com", nil
		},
	}
	h := NewAuthHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check-email/taken@example.com", nil)
	req.SetPathValue("email", "taken@example.com")
	rec := httptest.NewRecorder()

	h.CheckEmail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if decodeBody(t, rec)["exists"] != true {
		t.Error("exists must be true for a taken email")
	}
}
