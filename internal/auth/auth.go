package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the coarse permission level carried in a token.
type Role string

const (
	// RoleAdmin manages queues and may push and pull.
	RoleAdmin Role = "admin"
	// RoleAgent pushes and pulls messages.
	RoleAgent Role = "agent"
	// RoleUser reads queue listings and info only.
	RoleUser Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleUser:
		return true
	}
	return false
}

// ParseRole maps a claim value to a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

var (
	// ErrBadCredentials reports a login with an unknown user or wrong password.
	ErrBadCredentials = errors.New("bad credentials")
	// ErrInvalidToken reports a missing, malformed, expired, or forged token.
	ErrInvalidToken = errors.New("invalid token")
)

// Credential is one row of the static user table.
type Credential struct {
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Role     Role   `json:"role" mapstructure:"role"`
}

// Claims is the verified identity extracted from a token.
type Claims struct {
	Subject   string
	Role      Role
	ExpiresAt time.Time
}

// Manager issues and verifies HS256 bearer tokens against a static
// credential table.
type Manager struct {
	secret []byte
	ttl    time.Duration
	users  map[string]Credential
}

// NewManager builds a Manager. The secret must be non-empty and every
// credential must carry a known role.
func NewManager(secret string, ttl time.Duration, users []Credential) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("auth: jwt secret must not be empty")
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	table := make(map[string]Credential, len(users))
	for _, u := range users {
		if u.Username == "" {
			return nil, errors.New("auth: credential with empty username")
		}
		if !u.Role.Valid() {
			return nil, fmt.Errorf("auth: user %s has unknown role %q", u.Username, u.Role)
		}
		if _, ok := table[u.Username]; ok {
			return nil, fmt.Errorf("auth: duplicate user %s", u.Username)
		}
		table[u.Username] = u
	}
	return &Manager{secret: []byte(secret), ttl: ttl, users: table}, nil
}

// Login authenticates a user and issues a signed token.
func (m *Manager) Login(username, password string) (string, time.Time, error) {
	cred, ok := m.users[username]
	if !ok {
		return "", time.Time{}, ErrBadCredentials
	}
	if subtle.ConstantTimeCompare([]byte(cred.Password), []byte(password)) != 1 {
		return "", time.Time{}, ErrBadCredentials
	}
	now := time.Now().UTC()
	expires := now.Add(m.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  cred.Username,
		"role": string(cred.Role),
		"iat":  now.Unix(),
		"exp":  expires.Unix(),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// Verify parses and validates a token string and returns its claims.
func (m *Manager) Verify(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, ok := mapClaims["sub"].(string)
	if !ok || sub == "" {
		return Claims{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	roleClaim, _ := mapClaims["role"].(string)
	role, ok := ParseRole(roleClaim)
	if !ok {
		return Claims{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, roleClaim)
	}
	claims := Claims{Subject: sub, Role: role}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}
