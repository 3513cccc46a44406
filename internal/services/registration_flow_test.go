package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/you/assetsvc/domain"
	"github.com/you/assetsvc/internal/infrastructure/auth"
	"github.com/you/assetsvc/internal/mocks"
)

// memoryUsers backs a MockUserRepository with a map
func memoryUsers() *mocks.MockUserRepository {
	var mu sync.Mutex
	byEmail := map[string]*domain.User{}
	var nextID uint

	repo := mocks.NewMockUserRepository()
	repo.CreateFunc = func(ctx context.Context, user *domain.User) error {
		mu.Lock()
		defer mu.Unlock()
		if _, ok := byEmail[user.Email]; ok {
			return domain.ErrUserAlreadyExists
		}
		nextID++
		user.ID = nextID
		stored := *user
		byEmail[user.Email] = &stored
		return nil
	}
	repo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		mu.Lock()
		defer mu.Unlock()
		if u, ok := byEmail[email]; ok {
			copied := *u
			return &copied, nil
		}
		return nil, domain.ErrUserNotFound
	}
	repo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		mu.Lock()
		defer mu.Unlock()
		for _, u := range byEmail {
			if u.ID == id {
				copied := *u
				return &copied, nil
			}
		}
		return nil, domain.ErrUserNotFound
	}
	return repo
}

func TestRegistrationFlow_DeliveryFailureStillVerifies(t *testing.T) {
	_, client := setupTestRedis(t)

	transport := mocks.NewMockEmailTransport()
	transport.SendEmailFunc = func(ctx context.Context, to, subject, body string) error {
		return errors.New("smtp unavailable")
	}

	otpSvc := NewOTPService(client, fixedGenerator("123456"), OTPConfig{TTL: 300 * time.Second})
	dispatcher := NewNotificationDispatcher(transport, 300*time.Second, discardLogger())
	tokenSvc := auth.NewJWTService("flow-secret", "assetsvc", time.Hour, 15*time.Minute)
	users := memoryUsers()
	audit := mocks.NewMockAuditLogger()

	svc := NewRegistrationService(users, auth.NewPasswordServiceWithCost(bcrypt.MinCost), tokenSvc, otpSvc, dispatcher, audit,
		RegistrationConfig{RequireVerification: true})
	ctx := context.Background()

	requested, err := svc.RequestCode(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, &domain.CodeRequestResult{Issued: true, Delivered: false}, requested)
	assert.Len(t, audit.Events(domain.OTPDeliveryFailedEvent), 1)

	verified, err := svc.VerifyCode(ctx, "a@x.com", "123456")
	require.NoError(t, err)
	require.True(t, verified.Verified)

	again, err := svc.VerifyCode(ctx, "a@x.com", "123456")
	require.NoError(t, err)
	assert.False(t, again.Verified, "passcode is single use")

	registered, err := svc.CompleteRegistration(ctx, "Ada", "a@x.com", "s3cret", verified.Ticket)
	require.NoError(t, err)
	assertAuthResult(t, registered, "a@x.com")

	claims, err := tokenSvc.ValidateAccessToken(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)

	// Second account for the same email is a conflict even with a fresh verification
	_, err = svc.RequestCode(ctx, "a@x.com")
	require.NoError(t, err)
	fresh, err := svc.VerifyCode(ctx, "a@x.com", "123456")
	require.NoError(t, err)
	require.True(t, fresh.Verified)

	_, err = svc.CompleteRegistration(ctx, "Ada", "a@x.com", "other", fresh.Ticket)
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	loggedIn, err := svc.Login(ctx, "A@X.com", "s3cret")
	require.NoError(t, err)
	assertAuthResult(t, loggedIn, "a@x.com")

	_, err = svc.Login(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@x.com", "s3cret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	profile, err := svc.GetUserProfile(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Name)
	assert.Empty(t, profile.PasswordHash)
}

func TestRegistrationServiceImpl_Login(t *testing.T) {
	svc, deps := createRegistrationServiceForTest(t, true)
	ctx := context.Background()

	deps.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		if email == "test@example.com" {
			return createValidUser(t), nil
		}
		return nil, domain.ErrUserNotFound
	}

	result, err := svc.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	assertAuthResult(t, result, "test@example.com")
	assert.Len(t, deps.audit.Events(domain.UserLoginEvent), 1)

	_, err = svc.Login(ctx, "test@example.com", "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "", "password123")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 2, deps.passwordSvc.VerifyCalls())

	assert.Len(t, deps.audit.Events(domain.UserLoginFailureEvent), 1)
}

func TestRegistrationServiceImpl_GetUserProfile(t *testing.T) {
	svc, deps := createRegistrationServiceForTest(t, true)

	deps.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		if id == 1 {
			return createValidUser(t), nil
		}
		return nil, domain.ErrUserNotFound
	}

	user, err := svc.GetUserProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Test User", user.Name)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.GetUserProfile(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
