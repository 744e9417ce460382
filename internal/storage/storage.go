package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"hospitaldir/internal/models"
)

const (
	usersTable     = "users"
	hospitalsTable = "hospitals"
)

var (
	// ErrDuplicateIdentity means an account with the same username or email
	// already exists. The unique constraints on the users table make the
	// check-and-insert atomic under concurrent registrations.
	ErrDuplicateIdentity = errors.New("duplicate identity")
	ErrNotFound          = errors.New("not found")
)

type Storage interface {
	// Accounts
	CreateUser(ctx context.Context, username, email, passwordHash, role string) (uuid.UUID, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	UserExists(ctx context.Context, username, email string) (bool, error)

	// Hospitals
	CreateHospital(ctx context.Context, hospital models.Hospital) (uuid.UUID, error)
	GetHospitalByID(ctx context.Context, hospitalID uuid.UUID) (models.Hospital, error)
	ListHospitals(ctx context.Context) ([]models.Hospital, error)
	ListHospitalsByCity(ctx context.Context, city string) ([]models.Hospital, error)
	UpdateHospital(ctx context.Context, hospital models.Hospital) error
	UpdateHospitalDetails(ctx context.Context, hospitalID uuid.UUID, details models.HospitalDetails) error
	DeleteHospital(ctx context.Context, hospitalID uuid.UUID) error

	Migrate(ctx context.Context) error
	Close()
}

type PostgresStorage struct {
	db    *pgxpool.Pool
	dbURL string
}

func NewPostgresStorage(ctx context.Context, dbURL string) (*PostgresStorage, error) {
	const op = "storage.NewPostgresStorage"

	conn, err := pgxpool.Connect(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &PostgresStorage{
		db:    conn,
		dbURL: dbURL,
	}, nil
}

func (p *PostgresStorage) CreateUser(ctx context.Context, username, email, passwordHash, role string) (uuid.UUID, error) {
	const op = "storage.CreateUser"

	var userID uuid.UUID
	query := fmt.Sprintf("INSERT INTO %s(username, email, password_hash, user_role) VALUES ($1, $2, $3, $4) RETURNING id;", usersTable)

	err := p.db.QueryRow(ctx, query, username, email, passwordHash, role).Scan(&userID)
	if err != nil {
		if isUniqueViolation(err) {
			return userID, fmt.Errorf("%s: %w", op, ErrDuplicateIdentity)
		}
		return userID, fmt.Errorf("%s: %w", op, err)
	}

	return userID, nil
}

func (p *PostgresStorage) GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	const op = "storage.GetUserByID"

	var user models.User
	query := fmt.Sprintf("SELECT id, username, email, password_hash, user_role, created_at FROM %s WHERE id=$1;", usersTable)

	err := p.db.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return user, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (p *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	const op = "storage.GetUserByEmail"

	var user models.User
	query := fmt.Sprintf("SELECT id, username, email, password_hash, user_role, created_at FROM %s WHERE email=$1;", usersTable)

	err := p.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return user, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (p *PostgresStorage) UserExists(ctx context.Context, username, email string) (bool, error) {
	const op = "storage.UserExists"

	var exists bool
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE username=$1 OR email=$2);", usersTable)

	if err := p.db.QueryRow(ctx, query, username, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func (p *PostgresStorage) Close() {
	p.db.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
