package jwt

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/teamclock/attendance-api/internal/domain/user"
)

const (
	TokenTypeAccess = "access"
	TokenTypeStream = "stream"

	streamTokenTTL = 5 * time.Minute
)

var ErrWrongTokenType = errors.New("wrong token type")

// Claims is the identity carried by an access token.
type Claims struct {
	UserID     string
	EmployeeID string
	Name       string
	Department string
	Role       user.Role
}

type Service interface {
	GenerateAccessToken(claims Claims) (token string, expiresAt int64, err error)
	GenerateStreamToken(userID string) (token string, expiresIn int, err error)
	ValidateStreamToken(tokenString string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string, expiresAt time.Time)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	revokedTokens         map[string]time.Time
	mu                    sync.RWMutex
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	expDuration, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("access token expiration: %w", err)
	}
	return &JWTService{
		accessTokenExpiration: expDuration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:         make(map[string]time.Time),
	}, nil
}

func (j *JWTService) GenerateAccessToken(c Claims) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id":     c.UserID,
		"employee_id": c.EmployeeID,
		"name":        c.Name,
		"department":  c.Department,
		"role":        string(c.Role),
		"type":        TokenTypeAccess,
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// RevokeToken blocks token until it would have expired anyway.
func (j *JWTService) RevokeToken(token string, expiresAt time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()
	now := time.Now()
	for t, exp := range j.revokedTokens {
		if exp.Before(now) {
			delete(j.revokedTokens, t)
		}
	}
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// GenerateStreamToken generates a short-lived token for the live feed, which
// is opened with EventSource and cannot send an Authorization header.
func (j *JWTService) GenerateStreamToken(userID string) (token string, expiresIn int, err error) {
	expiresAt := time.Now().Add(streamTokenTTL).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    TokenTypeStream,
		"exp":     expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(streamTokenTTL.Seconds()), nil
}

// ValidateStreamToken verifies signature, expiry and type and returns the user ID
func (j *JWTService) ValidateStreamToken(tokenString string) (userID string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeStream {
		return "", ErrWrongTokenType
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	userID, ok = userIDVal.(string)
	if !ok || userID == "" {
		return "", jwt.ErrInvalidJWT()
	}

	return userID, nil
}

// ClaimsFromMap reads Claims back out of a verified token's claim map.
func ClaimsFromMap(m map[string]interface{}) (Claims, error) {
	if t, _ := m["type"].(string); t != TokenTypeAccess {
		return Claims{}, ErrWrongTokenType
	}
	userID, _ := m["user_id"].(string)
	if userID == "" {
		return Claims{}, jwt.ErrInvalidJWT()
	}
	employeeID, _ := m["employee_id"].(string)
	name, _ := m["name"].(string)
	department, _ := m["department"].(string)
	role, _ := m["role"].(string)

	return Claims{
		UserID:     userID,
		EmployeeID: employeeID,
		Name:       name,
		Department: department,
		Role:       user.Role(role),
	}, nil
}
