package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/you/assetsvc/domain"
)

const verificationPurpose = "email_verification"

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey       []byte
	issuer          string
	accessTokenTTL  time.Duration
	verificationTTL time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey string, issuer string, accessTTL, verificationTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey:       []byte(secretKey),
		issuer:          issuer,
		accessTokenTTL:  accessTTL,
		verificationTTL: verificationTTL,
	}
}

func (j *JWTServiceImpl) sign(claims jwt.MapClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims["iss"] = j.issuer
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(ttl).Unix()
	claims["jti"] = uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// GenerateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateAccessToken(userID uint, role string) (string, error) {
	return j.sign(jwt.MapClaims{
		"user_id": userID,
		"role":    role,
	}, j.accessTokenTTL)
}

// GenerateVerificationTicket issues a short-lived proof that email passed OTP verification
func (j *JWTServiceImpl) GenerateVerificationTicket(email string) (string, error) {
	return j.sign(jwt.MapClaims{
		"sub":     strings.ToLower(strings.TrimSpace(email)),
		"purpose": verificationPurpose,
	}, j.verificationTTL)
}

// ValidateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if _, isTicket := claims["purpose"]; isTicket {
		return nil, domain.ErrTokenInvalid
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	return &domain.TokenClaims{
		UserID:    uint(userID),
		Role:      role,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}

// ValidateVerificationTicket returns the verified email carried by ticket
func (j *JWTServiceImpl) ValidateVerificationTicket(ticket string) (string, error) {
	claims, err := j.parse(ticket)
	if err != nil {
		return "", err
	}
	if purpose, _ := claims["purpose"].(string); purpose != verificationPurpose {
		return "", domain.ErrTokenInvalid
	}
	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return "", domain.ErrTokenMalformed
	}
	return email, nil
}

func (j *JWTServiceImpl) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	}, jwt.WithIssuer(j.issuer), jwt.WithExpirationRequired())

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domain.ErrTokenExpired
	case err != nil, !token.Valid:
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	return claims, nil
}
