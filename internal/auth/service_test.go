package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	pkgauth "github.com/lacomanda/comanda-backend/pkg/auth"
	"github.com/lacomanda/comanda-backend/pkg/auth/session"
	"github.com/lacomanda/comanda-backend/pkg/config"
	"github.com/lacomanda/comanda-backend/pkg/enums"
	pkgerrors "github.com/lacomanda/comanda-backend/pkg/errors"
)

const userSchema = `
CREATE TABLE users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	full_name TEXT NOT NULL,
	phone TEXT,
	role TEXT NOT NULL DEFAULT 'customer',
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME,
	updated_at DATETIME
);
`

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	for _, stmt := range strings.Split(userSchema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

// stubSessionManager mimics the Redis-backed manager in memory.
type stubSessionManager struct {
	sessions map[string]string
	counter  int
}

func newStubSessionManager() *stubSessionManager {
	return &stubSessionManager{sessions: make(map[string]string)}
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.counter++
	token := fmt.Sprintf("refresh-%d", s.counter)
	s.sessions[accessID] = token
	return token, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := s.sessions[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.sessions, oldAccessID)
	newAccessID := session.NewAccessID()
	token, _ := s.Generate(ctx, newAccessID)
	return newAccessID, token, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	delete(s.sessions, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret",
		Issuer:                 "comanda-test",
		ExpirationMinutes:      15,
		RefreshTokenTTLMinutes: 43200,
	}
}

func newTestService(t *testing.T) (Service, *stubSessionManager) {
	t.Helper()
	sessions := newStubSessionManager()
	svc, err := NewService(ServiceParams{
		UserRepo:       NewRepository(openTestDB(t)),
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: config.PasswordConfig{
			ArgonMemoryKB:    8192,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
	})
	require.NoError(t, err)
	return svc, sessions
}

func assertCoded(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected coded error, got %v", err)
	require.Equal(t, code, typed.Code())
}

func TestService_RegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{FullName: "Ana", Email: " ", Password: "supersecret"})
	assertCoded(t, err, pkgerrors.CodeValidation)

	_, err = svc.Register(ctx, RegisterRequest{FullName: " ", Email: "ana@example.com", Password: "supersecret"})
	assertCoded(t, err, pkgerrors.CodeValidation)

	_, err = svc.Register(ctx, RegisterRequest{FullName: "Ana", Email: "ana@example.com", Password: "short"})
	assertCoded(t, err, pkgerrors.CodeValidation)
}

func TestService_RegisterNormalizesEmailAndDefaultsRole(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{
		FullName: "Ana Lopez",
		Email:    "  Ana@Example.COM ",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", user.Email)
	require.Equal(t, enums.UserRoleCustomer, user.Role)
	require.NotEqual(t, uuid.Nil, user.ID)
}

func TestService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := RegisterRequest{FullName: "Ana", Email: "ana@example.com", Password: "supersecret"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assertCoded(t, err, pkgerrors.CodeConflict)
}

func TestService_LoginFlow(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{FullName: "Ana", Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "wrong-password"})
	assertCoded(t, err, pkgerrors.CodeUnauthorized)

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "supersecret"})
	assertCoded(t, err, pkgerrors.CodeUnauthorized)

	resp, err := svc.Login(ctx, LoginRequest{Email: " ANA@example.com ", Password: "supersecret"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, "ana@example.com", resp.User.Email)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, claims.UserID)
	require.Equal(t, enums.UserRoleCustomer, claims.Role)
	require.NotEmpty(t, claims.ID)
}

func TestService_RefreshRotatesSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{FullName: "Ana", Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)
	login, err := svc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	require.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	require.NotEmpty(t, refreshed.AccessToken)

	// The old pair is invalid after rotation.
	_, err = svc.Refresh(ctx, RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	assertCoded(t, err, pkgerrors.CodeUnauthorized)
}

func TestService_RefreshRejectsForgedToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Refresh(ctx, RefreshRequest{
		AccessToken:  "not-a-jwt",
		RefreshToken: "whatever",
	})
	assertCoded(t, err, pkgerrors.CodeUnauthorized)
}

func TestService_LogoutRevokesSession(t *testing.T) {
	svc, sessions := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{FullName: "Ana", Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)
	login, err := svc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), login.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims.ID))
	require.Empty(t, sessions.sessions)

	_, err = svc.Refresh(ctx, RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	assertCoded(t, err, pkgerrors.CodeUnauthorized)

	err = svc.Logout(ctx, "  ")
	assertCoded(t, err, pkgerrors.CodeUnauthorized)
}
