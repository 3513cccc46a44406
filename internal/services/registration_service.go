package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/you/assetsvc/domain"
)

// Reason returned for every failed verification; wrong, expired and unknown codes are not told apart
const InvalidOTPReason = "Invalid or expired OTP"

// RegistrationConfig tunes the account workflow
type RegistrationConfig struct {
	// RequireVerification makes CompleteRegistration demand a ticket from VerifyCode
	RequireVerification bool
	DefaultRole         string
}

// RegistrationServiceImpl implements domain.RegistrationService
type RegistrationServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	dispatcher  domain.NotificationDispatcher
	audit       domain.AuditLogger
	config      RegistrationConfig
}

// NewRegistrationService creates the OTP-verified registration workflow
func NewRegistrationService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	dispatcher domain.NotificationDispatcher,
	audit domain.AuditLogger,
	config RegistrationConfig,
) domain.RegistrationService {
	if config.DefaultRole == "" {
		config.DefaultRole = "user"
	}
	return &RegistrationServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		dispatcher:  dispatcher,
		audit:       audit,
		config:      config,
	}
}

// RequestCode issues a passcode and attempts delivery. A failed delivery leaves the code valid.
func (s *RegistrationServiceImpl) RequestCode(ctx context.Context, email string) (*domain.CodeRequestResult, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, domain.ErrEmailRequired
	}

	passcode, err := s.otpSvc.Issue(ctx, email)
	if err != nil {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.OTPIssuedEvent, 0).WithEmail(email).WithError(err))
		return nil, fmt.Errorf("issue passcode: %w", err)
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.OTPIssuedEvent, 0).WithEmail(email))

	delivered := s.dispatcher.Deliver(ctx, passcode.Email, passcode.Code)
	if delivered {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.OTPDeliveredEvent, 0).WithEmail(email))
	} else {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.OTPDeliveryFailedEvent, 0).
			WithEmail(email).
			WithError(domain.ErrDeliveryFailed))
	}

	return &domain.CodeRequestResult{Issued: true, Delivered: delivered}, nil
}

// VerifyCode consumes the passcode and, on success, returns a verification ticket for CompleteRegistration
func (s *RegistrationServiceImpl) VerifyCode(ctx context.Context, email, code string) (*domain.VerificationResult, error) {
	email = NormalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return nil, fmt.Errorf("%w: email and otp are required", domain.ErrValidation)
	}

	// Signed before the passcode is consumed so a signing failure leaves the code usable.
	// The ticket is only handed out when Verify succeeds.
	ticket, err := s.tokenSvc.GenerateVerificationTicket(email)
	if err != nil {
		return nil, fmt.Errorf("issue verification ticket: %w", err)
	}

	ok, err := s.otpSvc.Verify(ctx, email, code)
	if err != nil {
		return nil, fmt.Errorf("verify passcode: %w", err)
	}
	if !ok {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.OTPRejectedEvent, 0).
			WithEmail(email).
			WithError(domain.ErrInvalidOrExpiredOTP))
		return &domain.VerificationResult{Verified: false, Reason: InvalidOTPReason}, nil
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.OTPVerifiedEvent, 0).WithEmail(email))

	return &domain.VerificationResult{Verified: true, Ticket: ticket}, nil
}

// CompleteRegistration creates the account and signs the caller in
func (s *RegistrationServiceImpl) CompleteRegistration(ctx context.Context, name, email, password, ticket string) (*domain.AuthResult, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}

	// Conflict is reported before the ticket is looked at, even for a freshly verified email
	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrUserAlreadyExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if s.config.RequireVerification {
		verified, err := s.tokenSvc.ValidateVerificationTicket(ticket)
		if err != nil || verified != email {
			return nil, domain.ErrVerificationRequired
		}
	}

	hashed, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         s.config.DefaultRole,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, user.ID).WithEmail(email))

	user.PasswordHash = ""
	return &domain.AuthResult{User: user, Token: token}, nil
}

// Login checks credentials. Unknown email and wrong password are both ErrInvalidCredentials.
func (s *RegistrationServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, 0).
				WithEmail(email).
				WithError(domain.ErrInvalidCredentials))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).
			WithEmail(email).
			WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID).WithEmail(email))

	user.PasswordHash = ""
	return &domain.AuthResult{User: user, Token: token}, nil
}

// GetUserProfile implements domain.RegistrationService
func (s *RegistrationServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}
