package usecase

import (
	"context"
	"errors"
	"testing"

	"career-compass/internal/pkg/jwt"
	"career-compass/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	byEmail    map[string]repository.User
	byID       map[uuid.UUID]repository.User
	createdErr error
	created    *repository.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byEmail: map[string]repository.User{},
		byID:    map[uuid.UUID]repository.User{},
	}
}

func (m *mockUserRepo) CreateUser(_ context.Context, u repository.User) error {
	if m.createdErr != nil {
		return m.createdErr
	}
	m.created = &u
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return nil
}
func (m *mockUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}
func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (repository.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}
func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}
func (m *mockUserRepo) CountUsers(context.Context) (int64, error) {
	return int64(len(m.byID)), nil
}

type fakeJWT struct {
	refresh bool
	claims  jwt.Claims
	valErr  error
}

func (f fakeJWT) GenerateAccessToken(userID uuid.UUID, email, role string) (string, error) {
	return "access-" + userID.String(), nil
}
func (f fakeJWT) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return "refresh-" + userID.String(), nil
}
func (f fakeJWT) ValidateToken(string) (jwt.Claims, error) { return f.claims, f.valErr }
func (f fakeJWT) IsRefreshToken(jwt.Claims) bool           { return f.refresh }

func TestAuthUsecase_Register_ShortPassword(t *testing.T) {
	uc := NewAuthUsecase(newMockUserRepo(), fakeJWT{})

	_, _, _, err := uc.Register(context.Background(), RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "short",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthUsecase_Register_NormalizesEmailAndHashes(t *testing.T) {
	users := newMockUserRepo()
	uc := NewAuthUsecase(users, fakeJWT{})

	user, access, refresh, err := uc.Register(context.Background(), RegisterInput{
		Name: "Ana", Email: "  Ana@Example.COM ", Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected token pair, got %q / %q", access, refresh)
	}
	if users.created == nil {
		t.Fatalf("expected user persisted")
	}
	if users.created.PasswordHash == "secret-password" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(users.created.PasswordHash), []byte("secret-password")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	users := newMockUserRepo()
	users.byEmail["ana@example.com"] = repository.User{ID: uuid.New(), Email: "ana@example.com"}
	uc := NewAuthUsecase(users, fakeJWT{})

	_, _, _, err := uc.Register(context.Background(), RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "secret-password",
	})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestAuthUsecase_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatal(err)
	}
	users := newMockUserRepo()
	id := uuid.New()
	users.byEmail["ana@example.com"] = repository.User{
		ID: id, Email: "ana@example.com", PasswordHash: string(hash), Role: "user",
	}
	uc := NewAuthUsecase(users, fakeJWT{})

	if _, _, _, err := uc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, _, err := uc.Login(context.Background(), LoginInput{Email: "missing@example.com", Password: "secret-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	user, access, _, err := uc.Login(context.Background(), LoginInput{Email: "Ana@example.com", Password: "secret-password"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if user.ID != id || access == "" {
		t.Fatalf("unexpected login result: %+v %q", user, access)
	}
}

func TestAuthUsecase_Refresh_RejectsAccessToken(t *testing.T) {
	users := newMockUserRepo()
	id := uuid.New()
	users.byID[id] = repository.User{ID: id, Email: "ana@example.com"}

	uc := NewAuthUsecase(users, fakeJWT{refresh: false, claims: jwt.Claims{UserID: id}})

	_, _, err := uc.Refresh(context.Background(), "some-token")
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestAuthUsecase_Refresh_Success(t *testing.T) {
	users := newMockUserRepo()
	id := uuid.New()
	users.byID[id] = repository.User{ID: id, Email: "ana@example.com", Role: "user"}

	uc := NewAuthUsecase(users, fakeJWT{refresh: true, claims: jwt.Claims{UserID: id, TokenType: jwt.TokenTypeRefresh}})

	access, refresh, err := uc.Refresh(context.Background(), "some-token")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected new token pair, got %q / %q", access, refresh)
	}
}
