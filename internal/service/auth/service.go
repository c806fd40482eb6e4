package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "juice-reservations"

// Config настройки входа администратора
type Config struct {
	Password      string // открытый пароль, используется только если нет хеша
	PasswordHash  string // bcrypt хеш
	SessionSecret string // ключ подписи HS256; пустой - генерируется на время жизни процесса
	SessionTTL    time.Duration
}

// Claims содержимое токена сессии
type Claims struct {
	Admin bool `json:"adm"`
	jwt.RegisteredClaims
}

// Service проверка пароля администратора и выпуск сессий
type Service struct {
	passwordHash []byte
	password     []byte
	secret       []byte
	ttl          time.Duration
	revocations  RevocationStore
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(cfg Config, logger Logger) (*Service, error) {
	s := &Service{
		ttl:          cfg.SessionTTL,
		revocations:  NewMemoryRevocations(),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
	if s.ttl <= 0 {
		s.ttl = 24 * time.Hour
	}

	switch {
	case cfg.PasswordHash != "":
		s.passwordHash = []byte(cfg.PasswordHash)
	case cfg.Password != "":
		logger.Warn("Admin password is configured in plain text, prefer ADMIN_PASSWORD_HASH")
		s.password = []byte(cfg.Password)
	default:
		logger.Warn("No admin password configured: admin login is disabled")
	}

	if cfg.SessionSecret != "" {
		s.secret = []byte(cfg.SessionSecret)
	} else {
		s.secret = make([]byte, 32)
		if _, err := rand.Read(s.secret); err != nil {
			return nil, fmt.Errorf("%w: generate session secret: %v", ErrInternal, err)
		}
		logger.Warn("No session secret configured: admin sessions will not survive a restart")
	}

	return s, nil
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// WithRevocations подменяет хранилище отозванных сессий (Redis при нескольких экземплярах)
func (s *Service) WithRevocations(store RevocationStore) *Service {
	s.revocations = store
	return s
}

// CheckPassword сравнивает пароль с хешем (предпочтительно) или с открытым паролем
func (s *Service) CheckPassword(password string) error {
	switch {
	case s.passwordHash != nil:
		err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		if err != nil {
			s.logger.Error("CheckPassword: bad password hash: %v", err)
			return ErrInvalidCredentials
		}
		return nil
	case s.password != nil:
		if subtle.ConstantTimeCompare(s.password, []byte(password)) != 1 {
			return ErrInvalidCredentials
		}
		return nil
	default:
		return ErrNotConfigured
	}
}

// Login проверяет пароль и выпускает подписанный токен сессии
func (s *Service) Login(password string) (string, time.Time, error) {
	if err := s.CheckPassword(password); err != nil {
		s.logger.Warn("Login: rejected: %v", err)
		return "", time.Time{}, err
	}

	now := s.timeProvider.Now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.logger.Error("Login: sign token: %v", err)
		return "", time.Time{}, fmt.Errorf("%w: sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: admin session issued, expires at %s", expiresAt.Format(time.RFC3339))
	return token, expiresAt, nil
}

// Verify проверяет подпись, срок действия, признак администратора и что сессия не отозвана
func (s *Service) Verify(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Verify: revocation check failed: %v", err)
		return fmt.Errorf("%w: revocation check: %v", ErrInternal, err)
	}
	if revoked {
		return fmt.Errorf("%w: session revoked", ErrInvalidSession)
	}

	return nil
}

// Logout отзывает сессию до конца её срока действия
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}

	if err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		s.logger.Error("Logout: revoke session: %v", err)
		return fmt.Errorf("%w: revoke session: %v", ErrInternal, err)
	}

	s.logger.Info("Logout: admin session revoked")
	return nil
}

func (s *Service) parse(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.timeProvider.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if !claims.Admin || claims.ID == "" {
		return nil, ErrInvalidSession
	}

	return &claims, nil
}

// TTL время жизни сессии
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// HashPassword bcrypt хеш для ADMIN_PASSWORD_HASH
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("%w: hash password: %v", ErrInternal, err)
	}
	return string(hash), nil
}
