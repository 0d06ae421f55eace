// Package services содержит регистрацию, вход и выход пользователей, а также проверку токенов.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Vijay-lanka/hostel-management/internal/cache"
	"github.com/Vijay-lanka/hostel-management/internal/lib/jwt"
	"github.com/Vijay-lanka/hostel-management/internal/lib/password"
	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
	"github.com/Vijay-lanka/hostel-management/internal/models"
	"github.com/Vijay-lanka/hostel-management/internal/storage"
)

// Пути панелей, на которые клиент переходит после входа.
const (
	AdminDashboardPath   = "/admin/dashboard"
	StudentDashboardPath = "/student/dashboard"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrAdminSignUp        = errors.New("admin accounts are created by an admin")
	ErrInvalidToken       = errors.New("invalid or revoked token")
)

// UserRepository описывает хранилище пользователей и профилей.
type UserRepository interface {
	CreateUserWithProfile(ctx context.Context, user models.User, profile models.Profile) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	GetCurrentUser(ctx context.Context, id string) (*models.CurrentUser, error)
}

// TokenStore хранит отозванные токены.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Invalidator сбрасывает закешированные агрегаты.
type Invalidator interface {
	Invalidate(ctx context.Context, key string) error
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	tokens   TokenStore
	cache    Invalidator
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, tokens TokenStore, cache Invalidator, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		tokens:   tokens,
		cache:    cache,
		log:      log,
	}
}

// DashboardPath возвращает путь панели для роли.
func DashboardPath(role string) string {
	if role == models.RoleAdmin {
		return AdminDashboardPath
	}
	return StudentDashboardPath
}

// SignUp регистрирует студента через открытый эндпоинт.
// Пустая роль означает студента. Администратора так создать нельзя.
func (s *AuthService) SignUp(ctx context.Context, req models.DummyRegister) (string, error) {
	switch req.Role {
	case "", models.RoleStudent:
	case models.RoleAdmin:
		s.log.Warn("public admin sign-up rejected", slog.String("email", normalizeEmail(req.Email)))
		return "", ErrAdminSignUp
	default:
		return "", ErrInvalidRole
	}

	id, err := s.createUser(ctx, req.Email, req.Password, req.Name, models.RoleStudent, req.RoomNumber)
	if err != nil {
		return "", err
	}

	if err := s.cache.Invalidate(ctx, cache.DashboardStatsKey); err != nil {
		s.log.Warn("failed to invalidate dashboard stats", sl.Err(err))
	}
	return id, nil
}

// CreateAdmin создаёт администратора. Вызывается только из-под роли admin.
func (s *AuthService) CreateAdmin(ctx context.Context, req models.DummyAdmin) (string, error) {
	return s.createUser(ctx, req.Email, req.Password, req.Name, models.RoleAdmin, "")
}

// EnsureAdmin создаёт первого администратора из конфига, если такой почты ещё нет.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, rawPassword, name string) error {
	_, err := s.createUser(ctx, email, rawPassword, name, models.RoleAdmin, "")
	if errors.Is(err, ErrUserExists) {
		return nil
	}
	return err
}

func (s *AuthService) createUser(ctx context.Context, email, rawPassword, name, role, roomNumber string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}

	profile := models.Profile{
		Name: strings.TrimSpace(name),
		Role: role,
	}
	if room := strings.TrimSpace(roomNumber); role == models.RoleStudent && room != "" {
		profile.RoomNumber = &room
	}

	id, err := s.users.CreateUserWithProfile(ctx, models.User{
		Email:        normalizeEmail(email),
		PasswordHash: hashed,
	}, profile)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return "", ErrUserExists
	}
	if err != nil {
		return "", err
	}

	s.log.Info("user registered", slog.String("user_id", id), slog.String("role", role))
	return id, nil
}

// SignIn проверяет пароль, находит профиль и выпускает токен.
// Без профиля вход невозможен: роль берётся только из него.
func (s *AuthService) SignIn(ctx context.Context, email, rawPassword string) (*models.Session, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			s.log.Error("stored password hash is broken", slog.String("user_id", user.ID), sl.Err(err))
		}
		return nil, ErrInvalidCredentials
	}

	profile, err := s.users.GetProfile(ctx, user.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	token, _, err := s.jwtMaker.GenerateToken(user.ID, profile.Role)
	if err != nil {
		return nil, err
	}

	return &models.Session{
		Token:    token,
		Role:     profile.Role,
		Redirect: DashboardPath(profile.Role),
	}, nil
}

// SignOut отзывает токен до конца его срока действия.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil {
		return ErrInvalidToken
	}
	return s.tokens.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// ValidateToken проверяет подпись, срок и то, что токен не отозван.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*jwt.CustomClaims, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// CurrentUser возвращает профиль вошедшего пользователя.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.CurrentUser, error) {
	user, err := s.users.GetCurrentUser(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
