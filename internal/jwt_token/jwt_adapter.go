package jwttoken

import (
	"time"

	"leavedesk/internal/platform/middleware"
)

// MiddlewareAdapter adapts JWTService to the middleware.JWTValidator interface
// so the auth middleware does not depend on this package's claim type.
type MiddlewareAdapter struct {
	service *JWTService
}

func NewMiddlewareAdapter(service *JWTService) *MiddlewareAdapter {
	return &MiddlewareAdapter{service: service}
}

func (a *MiddlewareAdapter) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	expiresAt := time.Time{}
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return &middleware.JWTClaims{
		UserID:    claims.UserID,
		JTI:       claims.ID,
		ExpiresAt: expiresAt,
	}, nil
}
