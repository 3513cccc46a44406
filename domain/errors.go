package domain

import "errors"

// Validation errors
var (
	ErrValidation      = errors.New("validation failed")
	ErrEmailRequired   = errors.New("email is required")
	ErrTitleRequired   = errors.New("title required")
	ErrFileRequired    = errors.New("file required")
	ErrNoFile          = errors.New("no file uploaded")
	ErrBlockedFileType = errors.New("executable files are not allowed")
	ErrFileTooLarge    = errors.New("file exceeds upload limit")
	ErrMissingOwner    = errors.New("owner is required")
)

// Authentication errors
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrVerificationRequired = errors.New("email verification required")
)

// OTP errors. Wrong code, expiry and never-issued all collapse into one error.
var (
	ErrInvalidOrExpiredOTP = errors.New("invalid or expired OTP")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Upstream errors
var (
	ErrResourceNotFound  = errors.New("resource not found")
	ErrMediaHostDisabled = errors.New("media host not configured")
	ErrDeliveryFailed    = errors.New("delivery failed")
)
