package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hireflow/internal/domain/admin"
	"hireflow/internal/repository"
)

var (
	ErrUsernameTaken      = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
)

const minPasswordLength = 8

type LoginInput struct {
	Username string
	Password string
}

type Service struct {
	admins repository.AdminRepository
	cost   int
}

func NewService(admins repository.AdminRepository) *Service {
	return &Service{admins: admins, cost: bcrypt.DefaultCost}
}

// Create registers an HR admin with a bcrypt-hashed password.
func (s *Service) Create(ctx context.Context, username, password string) (admin.User, error) {
	username = normalizeUsername(username)
	if username == "" || !isValidPassword(password) {
		return admin.User{}, ErrInvalidInput
	}

	if _, err := s.admins.GetByUsername(ctx, username); err == nil {
		return admin.User{}, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return admin.User{}, ErrInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return admin.User{}, ErrInternal
	}

	u := admin.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.admins.Create(ctx, u); err != nil {
		return admin.User{}, ErrInternal
	}
	return sanitize(u), nil
}

// EnsureDefault creates the configured admin when no admin exists yet.
func (s *Service) EnsureDefault(ctx context.Context, username, password string) (bool, error) {
	n, err := s.admins.Count(ctx)
	if err != nil {
		return false, ErrInternal
	}
	if n > 0 {
		return false, nil
	}
	if _, err := s.Create(ctx, username, password); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (admin.User, error) {
	username := normalizeUsername(in.Username)
	if username == "" || in.Password == "" {
		return admin.User{}, ErrInvalidCredentials
	}

	u, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return admin.User{}, ErrInvalidCredentials
		}
		return admin.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return admin.User{}, ErrInvalidCredentials
	}
	return sanitize(u), nil
}

func normalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= minPasswordLength
}

func sanitize(u admin.User) admin.User {
	u.PasswordHash = ""
	return u
}
