package service

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/medplast/consult-console/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type AuthProvider interface {
	GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error)
	CreateAdmin(ctx context.Context, admin *domain.Admin) error
}

var ErrAdminExists = errors.New("admin already exists")

type AuthService struct {
	repo       AuthProvider
	privateKey *rsa.PrivateKey
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthService(repo AuthProvider, privateKey *rsa.PrivateKey, tokenTTL time.Duration, bcryptCost int) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		repo:       repo,
		privateKey: privateKey,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (*domain.TokenResponse, error) {
	// 1. Аутентификация (Источник правды — Postgres)
	admin, err := s.repo.GetAdminByUsername(ctx, username)
	if err != nil || admin == nil {
		return nil, errors.New("invalid credentials")
	}

	// 2. Проверка пароля (используем bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	// 3. Формирование Claims (Scopes берем из прав оператора в БД)
	expiresAt := time.Now().Add(s.tokenTTL)
	claims := &domain.CustomClaims{
		AdminID: admin.ID,
		Scopes:  admin.Scopes, // Напр. map[string]bool{"requests.write": true}
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "medplast-console",
			Subject:   admin.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	// 4. Подпись токена ЗАКРЫТЫМ КЛЮЧОМ (RS256)
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signedToken, err := token.SignedString(s.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &domain.TokenResponse{
		AccessToken: signedToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
	}, nil
}

// ProvisionAdmin заводит нового оператора консоли. Стоимость bcrypt
// настраивается (auth.bcrypt_cost), пароль в открытом виде никуда не пишем.
func (s *AuthService) ProvisionAdmin(ctx context.Context, username, email, password string, scopes map[string]bool) (*domain.Admin, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	existing, err := s.repo.GetAdminByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check admin: %w", err)
	}
	if existing != nil {
		return nil, ErrAdminExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &domain.Admin{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         "operator",
		Scopes:       scopes,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.repo.CreateAdmin(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

// ParseSigningKey превращает PEM-данные в закрытый ключ для подписи токенов.
// Нужен только Console API, клиентские утилиты обходятся открытым ключом.
func ParseSigningKey(data []byte) (*rsa.PrivateKey, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("private key data is empty")
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return key, nil
}
