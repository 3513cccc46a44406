package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/assetsvc/domain"
)

// verifyScript deletes the record only when the submitted code matches, so
// two concurrent verifies of the same code cannot both succeed.
var verifyScript = redis.NewScript(`
if redis.call("HGET", KEYS[1], "code") == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// OTPServiceImpl implements domain.OTPService using Redis persistence
type OTPServiceImpl struct {
	redisClient *redis.Client
	generator   domain.PasscodeGenerator
	config      OTPConfig
	now         func() time.Time
}

type OTPConfig struct {
	TTL time.Duration
}

// NewOTPService creates a new Redis-based passcode store
func NewOTPService(redisClient *redis.Client, generator domain.PasscodeGenerator, config OTPConfig) domain.OTPService {
	if config.TTL <= 0 {
		config.TTL = 300 * time.Second
	}
	return &OTPServiceImpl{
		redisClient: redisClient,
		generator:   generator,
		config:      config,
		now:         time.Now,
	}
}

// NormalizeEmail lowercases and trims an address; passcodes are keyed on the result
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func otpKey(email string) string {
	return "otp:" + email
}

// Issue replaces any live passcode for email with a fresh one
func (s *OTPServiceImpl) Issue(ctx context.Context, email string) (*domain.Passcode, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, domain.ErrEmailRequired
	}

	passcode := &domain.Passcode{
		Email:    email,
		Code:     s.generator.Generate(),
		IssuedAt: s.now().UTC(),
	}

	key := otpKey(email)
	_, err := s.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			"code", passcode.Code,
			"issued_at", strconv.FormatInt(passcode.IssuedAt.UnixMilli(), 10),
		)
		pipe.Expire(ctx, key, s.config.TTL)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store OTP in Redis: %w", err)
	}

	return passcode, nil
}

// Verify consumes the passcode when it matches. Wrong, expired and never-issued codes all return false.
func (s *OTPServiceImpl) Verify(ctx context.Context, email, code string) (bool, error) {
	email = NormalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return false, nil
	}

	deleted, err := verifyScript.Run(ctx, s.redisClient, []string{otpKey(email)}, code).Int()
	if err != nil {
		return false, fmt.Errorf("failed to verify OTP in Redis: %w", err)
	}
	return deleted > 0, nil
}
