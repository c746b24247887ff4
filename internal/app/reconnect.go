package app

import (
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// ReconnectService issues and verifies seat-reclaim tokens. A client that
// holds a valid token for a match may remap its seat to a fresh session
// identity after a dropped connection.
type ReconnectService struct {
	secret string
	issuer string
	ttl    time.Duration
}

// ReconnectClaims is the verified content of a reclaim token.
type ReconnectClaims struct {
	MatchID string
	OwnerID string
}

func NewReconnectService(secret, issuer string, ttl time.Duration) *ReconnectService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ReconnectService{secret: secret, issuer: issuer, ttl: ttl}
}

// IssueToken signs a token binding the owner identity to a match.
func (s *ReconnectService) IssueToken(matchID, ownerID string) (string, error) {
	if s == nil || s.secret == "" {
		return "", fmt.Errorf("reconnect service is not configured")
	}
	if matchID == "" || ownerID == "" {
		return "", fmt.Errorf("match id and owner id are required")
	}

	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": ownerID,
		"mid": matchID,
		"exp": time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// VerifyToken parses a reclaim token and returns its claims.
func (s *ReconnectService) VerifyToken(tokenString string) (ReconnectClaims, error) {
	if s == nil || s.secret == "" {
		return ReconnectClaims{}, fmt.Errorf("reconnect service is not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return ReconnectClaims{}, fmt.Errorf("invalid reconnect token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return ReconnectClaims{}, fmt.Errorf("invalid reconnect token claims")
	}
	sub, _ := claims["sub"].(string)
	mid, _ := claims["mid"].(string)
	if sub == "" || mid == "" {
		return ReconnectClaims{}, fmt.Errorf("reconnect token missing identity claims")
	}
	return ReconnectClaims{MatchID: mid, OwnerID: sub}, nil
}
