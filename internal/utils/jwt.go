package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-order-desk/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")
	ErrEmptySubject               = errors.New("empty subject")
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT for userID. The client
// never signs tokens for the gateway; this is used by fake gateways in tests
// and by the local tooling.
func GenerateJWTToken(issuer string, userID int64, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{RegisteredClaims: claims, SignedString: signed}, nil
}

// ParseUnverifiedToken decodes the claims of a gateway access token without
// checking its signature. The gateway owns the signing key; the client only
// needs the subject and expiry to drive its session.
func ParseUnverifiedToken(tokenString string) (models.Token, error) {
	var token models.Token
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &token.RegisteredClaims); err != nil {
		return models.Token{}, fmt.Errorf("error parsing access token: %w", err)
	}
	if token.Subject == "" {
		return models.Token{}, ErrEmptySubject
	}

	token.SignedString = tokenString
	return token, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrInvalidAuthorizationHeader
	}
	return strings.TrimSpace(token), nil
}
