package domain

import (
	"context"
	"io"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
}

// AssetRepository defines asset data access operations
type AssetRepository interface {
	Create(ctx context.Context, asset *Asset) error
	ListByOwner(ctx context.Context, ownerID uint) ([]Asset, error)
}

// PasscodeGenerator produces one-time passcodes
type PasscodeGenerator interface {
	Generate() string
}

// OTPService is the time-expiring passcode store keyed by email
type OTPService interface {
	Issue(ctx context.Context, email string) (*Passcode, error)
	Verify(ctx context.Context, email, code string) (bool, error)
}

// NotificationDispatcher delivers passcodes; it reports failure instead of returning it
type NotificationDispatcher interface {
	Deliver(ctx context.Context, email, code string) bool
}

// RegistrationService defines the OTP-verified account workflow
type RegistrationService interface {
	RequestCode(ctx context.Context, email string) (*CodeRequestResult, error)
	VerifyCode(ctx context.Context, email, code string) (*VerificationResult, error)
	CompleteRegistration(ctx context.Context, name, email, password, ticket string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
}

// AssetClassifier derives category, media type and size from a source reference
type AssetClassifier interface {
	Classify(ctx context.Context, sourceRef string) Classification
}

// AssetService defines asset ingestion and listing
type AssetService interface {
	Create(ctx context.Context, ownerID uint, title, description, sourceRef string) (*Asset, error)
	ListOwned(ctx context.Context, ownerID uint) ([]Asset, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID uint, role string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	GenerateVerificationTicket(email string) (string, error)
	ValidateVerificationTicket(ticket string) (string, error)
}

// EmailTransport sends a single email message
type EmailTransport interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// MediaHost is the third-party cloud media host
type MediaHost interface {
	FetchResourceMetadata(ctx context.Context, resourceID string) (*ResourceMetadata, error)
	ResourceID(fileURL string) string
	SignUpload(ctx context.Context, filename string) (*UploadCredential, error)
}

// LocalStorage is the local fallback for binary content
type LocalStorage interface {
	Save(ctx context.Context, originalName string, r io.Reader) (*StoredFile, error)
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
