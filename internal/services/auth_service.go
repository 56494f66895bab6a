package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shopstack/internal/apperr"
	"shopstack/internal/domain"
	"shopstack/internal/repos"
)

var ErrBadCreds = errors.New("invalid email or password")

// AuthService issues and verifies HS256 bearer tokens. The authenticated
// email is extracted by middleware and passed explicitly into engine calls.
type AuthService struct {
	Users  *repos.UserRepo
	Secret []byte
	TTL    time.Duration
}

func NewAuthService(users *repos.UserRepo, secret string, ttl time.Duration) *AuthService {
	return &AuthService{Users: users, Secret: []byte(secret), TTL: ttl}
}

func (s *AuthService) SignUp(email, name, password string) (UserView, error) {
	if _, err := s.Users.ByEmail(email); err == nil {
		return UserView{}, apperr.Business("User with email %s already exists", email)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return UserView{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return UserView{}, err
	}
	u := domain.User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
		Hash:  string(hash),
		Role:  "USER",
	}
	if err := s.Users.Insert(u); err != nil {
		return UserView{}, err
	}
	return userView(u), nil
}

func (s *AuthService) SignIn(email, password string) (string, UserView, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return "", UserView{}, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", UserView{}, ErrBadCreds
	}
	tok, err := s.IssueToken(u.Email, u.Role)
	if err != nil {
		return "", UserView{}, err
	}
	return tok, userView(*u), nil
}

func (s *AuthService) IssueToken(email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  email,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.TTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// ParseToken verifies signature and expiry and returns (email, role).
func (s *AuthService) ParseToken(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected token signing method")
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}
	email, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if email == "" {
		return "", "", errors.New("token missing subject")
	}
	return email, role, nil
}
