package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// JWTKey is overridden from config at startup.
var JWTKey = []byte("librarysecretkey123")

type Config struct {
	Secret   string `yaml:"secret" envconfig:"JWT_SECRET"`
	TokenTTL int    `yaml:"tokenTTL" envconfig:"JWT_TTL_HOURS" default:"24"`
}

func SetKey(secret string) {
	if secret != "" {
		JWTKey = []byte(secret)
	}
}

type Claims struct {
	Profile struct {
		UserID   int    `json:"userId"`
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"profile"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type UserInfo struct {
	ID       int
	Username string
	Role     string
}

func (u UserInfo) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type contextKey int

const userKey contextKey = iota + 1

func SetAuthContext(ctx context.Context, user UserInfo) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func FromContext(ctx context.Context) (UserInfo, bool) {
	user, ok := ctx.Value(userKey).(UserInfo)
	return user, ok
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
