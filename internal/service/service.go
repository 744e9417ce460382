package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"

	"hospitaldir/internal/auth"
	"hospitaldir/internal/models"
	"hospitaldir/internal/storage"
)

var (
	// ErrIdentityExists is deliberately generic: callers must not learn
	// whether the username or the email collided.
	ErrIdentityExists     = errors.New("user with this email or username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
)

type Service interface {
	Register(ctx context.Context, username, email, password string) (string, models.User, error)
	Login(ctx context.Context, email, password string) (string, models.User, error)

	CreateHospital(ctx context.Context, hospital models.Hospital) (models.Hospital, error)
	GetHospital(ctx context.Context, hospitalID uuid.UUID) (models.Hospital, error)
	ListHospitals(ctx context.Context) ([]models.Hospital, error)
	ListHospitalsByCity(ctx context.Context, city string) ([]models.Hospital, error)
	UpdateHospital(ctx context.Context, hospitalID uuid.UUID, hospital models.Hospital) (models.Hospital, error)
	AddHospitalDetails(ctx context.Context, hospitalID uuid.UUID, details models.HospitalDetails) (models.Hospital, error)
	DeleteHospital(ctx context.Context, hospitalID uuid.UUID) error
}

type service struct {
	storage storage.Storage
	tokens  *auth.TokenManager
}

func NewService(st storage.Storage, tokens *auth.TokenManager) *service {
	return &service{
		storage: st,
		tokens:  tokens,
	}
}

// Register creates an account and returns a session token with its public
// view. Self-registration always yields the "user" role; the single admin
// account is provisioned out-of-band (see cmd/create_admin).
func (s *service) Register(ctx context.Context, username, email, password string) (string, models.User, error) {
	const op = "service.Register"

	exists, err := s.storage.UserExists(ctx, username, email)
	if err != nil {
		return "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return "", models.User{}, ErrIdentityExists
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	userID, err := s.storage.CreateUser(ctx, username, email, passwordHash, models.RoleUser)
	if err != nil {
		// The pre-check above races with concurrent registrations; the
		// unique constraint is the authority.
		if errors.Is(err, storage.ErrDuplicateIdentity) {
			return "", models.User{}, ErrIdentityExists
		}
		return "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return token, user, nil
}

// Login verifies credentials and returns a session token with the account's
// public view. An unknown email and a wrong password both come back as
// ErrInvalidCredentials.
func (s *service) Login(ctx context.Context, email, password string) (string, models.User, error) {
	const op = "service.Login"

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", models.User{}, ErrInvalidCredentials
		}
		return "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if ok := auth.CheckPasswordHash(user.PasswordHash, password); !ok {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return token, user, nil
}
