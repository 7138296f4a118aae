package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"taxibe/internal/shared/config"
	"taxibe/internal/users"

	"github.com/google/uuid"
)

type fakeRepo struct {
	byEmail map[string]*users.User
	byID    map[string]*users.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byEmail: make(map[string]*users.User),
		byID:    make(map[string]*users.User),
	}
}

func (f *fakeRepo) CreateUser(ctx context.Context, user *users.User) error {
	user.ID = uuid.New()
	f.byEmail[user.Email] = user
	f.byID[user.ID.String()] = user
	return nil
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepo) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepo) UpdateUserPassword(ctx context.Context, userID, hashedPassword string) error {
	user, ok := f.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (f *fakeRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func testService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
	return NewService(repo, cfg), repo
}

func registerReq() *RegisterRequest {
	return &RegisterRequest{
		FirstName: "Hery",
		LastName:  "Rakoto",
		Email:     "hery@example.mg",
		Phone:     "0331112233",
		Password:  "password123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := testService()

	resp, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.User.Role != string(users.RoleUser) {
		t.Errorf("Role = %q, self-registration must create a passenger", resp.User.Role)
	}
	if resp.User.Phone != "0331112233" {
		t.Errorf("Phone = %q", resp.User.Phone)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("token pair missing")
	}

	login, err := svc.Login(context.Background(), &LoginRequest{Email: "hery@example.mg", Password: "password123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.User.Email != "hery@example.mg" {
		t.Errorf("Email = %q", login.User.Email)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := testService()

	if _, err := svc.Register(context.Background(), registerReq()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerReq()); !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("err = %v, want ErrUserAlreadyExists", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := testService()
	if _, err := svc.Register(context.Background(), registerReq()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "hery@example.mg", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "nobody@example.mg", Password: "password123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v, want ErrInvalidCredentials", err)
	}
}

func TestTokenValidationAndRefresh(t *testing.T) {
	svc, _ := testService()
	resp, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	claims, err := svc.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.Type != "access" || claims.Email != "hery@example.mg" {
		t.Errorf("claims = %+v", claims)
	}

	// The access token must not pass for a refresh token.
	if _, err := svc.RefreshToken(context.Background(), resp.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh with access token err = %v, want ErrInvalidToken", err)
	}

	pair, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if pair.AccessToken == "" {
		t.Error("refreshed access token missing")
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := testService()
	resp, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	err = svc.ChangePassword(context.Background(), resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpassword456",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}

	err = svc.ChangePassword(context.Background(), resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "newpassword456",
	})
	if err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), &LoginRequest{Email: "hery@example.mg", Password: "newpassword456"}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
}
