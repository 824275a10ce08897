package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in tokens. Farmer tokens act on their own records; bank
// tokens act on loan decisions for their institution.
const (
	RoleFarmer = "farmer"
	RoleBank   = "bank"
)

// JWTManager mints and verifies HS256 tokens.
type JWTManager struct {
	issuer string
	secret []byte
	ttl    time.Duration
}

// Claims identifies the caller: a farmer or a bank officer.
type Claims struct {
	SubjectID string `json:"sub_id"` // farmer_id or bank_id
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTManager creates a manager with the given signing key and token TTL.
func NewJWTManager(issuer, signingKey string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		issuer: issuer,
		secret: []byte(signingKey),
		ttl:    ttl,
	}
}

// Mint issues a token for the subject with the given role.
func (m *JWTManager) Mint(subjectID, role string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		SubjectID: subjectID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// Parse verifies a token and returns its claims.
func (m *JWTManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Issuer != m.issuer {
		return nil, errors.New("invalid issuer")
	}
	if claims.Role != RoleFarmer && claims.Role != RoleBank {
		return nil, fmt.Errorf("unknown role %q", claims.Role)
	}
	return claims, nil
}
