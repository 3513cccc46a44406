package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/you/assetsvc/domain"
)

// setupTestRedis starts an in-process Redis and returns a client for it
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// discardLogger returns a logger that drops everything
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedGenerator always returns the same code
type fixedGenerator string

func (g fixedGenerator) Generate() string { return string(g) }

// sequenceGenerator returns codes in order, repeating the last one
type sequenceGenerator struct {
	codes []string
	next  int
}

func (g *sequenceGenerator) Generate() string {
	code := g.codes[g.next]
	if g.next < len(g.codes)-1 {
		g.next++
	}
	return code
}

// createValidUser creates a valid user entity for testing
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           1,
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: "hashed_password123",
		Role:         "user",
		CreatedAt:    time.Now().Add(-24 * time.Hour),
		UpdatedAt:    time.Now().Add(-1 * time.Hour),
	}
}

// assertAuthResult validates the structure and content of an AuthResult
func assertAuthResult(t *testing.T, result *domain.AuthResult, expectedEmail string) {
	t.Helper()

	if result == nil {
		t.Fatal("AuthResult is nil")
	}
	if result.User == nil {
		t.Fatal("AuthResult.User is nil")
	}
	if result.User.Email != expectedEmail {
		t.Errorf("expected email %s, got %s", expectedEmail, result.User.Email)
	}
	if result.User.PasswordHash != "" {
		t.Error("password hash must not leave the service")
	}
	if result.Token == "" {
		t.Error("expected a non-empty token")
	}
}
