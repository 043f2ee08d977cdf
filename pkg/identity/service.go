package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/Radpid/radGPT/pkg/common/logger"
	"github.com/Radpid/radGPT/pkg/common/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const defaultRole = "clinician"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, ErrUserNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}
	if !user.IsActive {
		return models.User{}, ErrInvalidCredentials
	}

	hash, err := s.repo.GetPasswordHash(ctx, user.ID)
	if err != nil {
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) RegisterUser(ctx context.Context, req models.RegisterUserRequest) (models.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return models.User{}, errors.New("email and password required")
	}

	count, err := s.repo.CountByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	role := req.Role
	if role == "" {
		role = defaultRole
	}

	return s.repo.CreateUser(ctx, CreateUserInput{
		Email:        email,
		Name:         req.Name,
		Role:         role,
		PasswordHash: string(hash),
	})
}

func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (models.User, error) {
	return s.repo.GetUser(ctx, userID)
}

// SeedDefaultUsers creates the demo clinician accounts when they are
// missing so a fresh deployment is immediately usable.
func (s *Service) SeedDefaultUsers(ctx context.Context) error {
	seeds := []models.RegisterUserRequest{
		{Email: "dr.schmidt@klinik.de", Name: "Dr. Schmidt", Password: "password123"},
		{Email: "admin", Name: "Admin", Password: "admin123", Role: "admin"},
	}
	for _, seed := range seeds {
		if _, err := s.RegisterUser(ctx, seed); err != nil {
			if errors.Is(err, ErrEmailTaken) {
				continue
			}
			return err
		}
		logger.Log.WithField("email", seed.Email).Info("seed user created")
	}
	return nil
}
