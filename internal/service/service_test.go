package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospitaldir/internal/auth"
	"hospitaldir/internal/models"
	"hospitaldir/internal/storage"
)

// memStorage implements storage.Storage for tests. CreateUser holds the lock
// across check and insert, mirroring the database's uniqueness constraint.
type memStorage struct {
	mu        sync.Mutex
	users     map[uuid.UUID]models.User
	hospitals map[uuid.UUID]models.Hospital
}

func newMemStorage() *memStorage {
	return &memStorage{
		users:     make(map[uuid.UUID]models.User),
		hospitals: make(map[uuid.UUID]models.Hospital),
	}
}

func (m *memStorage) CreateUser(_ context.Context, username, email, passwordHash, role string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return uuid.Nil, storage.ErrDuplicateIdentity
		}
	}

	id := uuid.Must(uuid.NewV4())
	m.users[id] = models.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}

	return id, nil
}

func (m *memStorage) GetUserByID(_ context.Context, userID uuid.UUID) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (m *memStorage) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (m *memStorage) UserExists(_ context.Context, username, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStorage) CreateHospital(_ context.Context, hospital models.Hospital) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.Must(uuid.NewV4())
	hospital.ID = id
	m.hospitals[id] = hospital

	return id, nil
}

func (m *memStorage) GetHospitalByID(_ context.Context, hospitalID uuid.UUID) (models.Hospital, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hospital, ok := m.hospitals[hospitalID]
	if !ok {
		return models.Hospital{}, storage.ErrNotFound
	}
	return hospital, nil
}

func (m *memStorage) ListHospitals(_ context.Context) ([]models.Hospital, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var hospitals []models.Hospital
	for _, h := range m.hospitals {
		hospitals = append(hospitals, h)
	}
	return hospitals, nil
}

func (m *memStorage) ListHospitalsByCity(_ context.Context, city string) ([]models.Hospital, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var hospitals []models.Hospital
	for _, h := range m.hospitals {
		if h.City == city {
			hospitals = append(hospitals, h)
		}
	}
	return hospitals, nil
}

func (m *memStorage) UpdateHospital(_ context.Context, hospital models.Hospital) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.hospitals[hospital.ID]; !ok {
		return storage.ErrNotFound
	}
	m.hospitals[hospital.ID] = hospital
	return nil
}

func (m *memStorage) UpdateHospitalDetails(_ context.Context, hospitalID uuid.UUID, details models.HospitalDetails) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	hospital, ok := m.hospitals[hospitalID]
	if !ok {
		return storage.ErrNotFound
	}

	if details.Description != nil {
		hospital.Description = *details.Description
	}
	if details.Images != nil {
		hospital.Images = details.Images
	}
	if details.NumberOfDoctors != nil {
		hospital.NumberOfDoctors = *details.NumberOfDoctors
	}
	if details.NumberOfDepartments != nil {
		hospital.NumberOfDepartments = *details.NumberOfDepartments
	}

	m.hospitals[hospitalID] = hospital
	return nil
}

func (m *memStorage) DeleteHospital(_ context.Context, hospitalID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.hospitals[hospitalID]; !ok {
		return storage.ErrNotFound
	}
	delete(m.hospitals, hospitalID)
	return nil
}

func (m *memStorage) Migrate(_ context.Context) error { return nil }
func (m *memStorage) Close()                          {}

func newTestService(t *testing.T) (*service, *memStorage, *auth.TokenManager) {
	t.Helper()

	st := newMemStorage()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewService(st, tokens), st, tokens
}

func TestRegister_Success(t *testing.T) {
	svc, _, tokens := newTestService(t)

	token, user, err := svc.Register(context.Background(), "alice", "alice@x.com", "p@ss1")
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, uuid.Nil, user.ID)

	gotID, gotRole, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, gotID)
	assert.Equal(t, models.RoleUser, gotRole)
}

func TestRegister_NeverReturnsPlaintextHash(t *testing.T) {
	svc, st, _ := newTestService(t)

	_, user, err := svc.Register(context.Background(), "alice", "alice@x.com", "p@ss1")
	require.NoError(t, err)

	stored, err := st.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "p@ss1", stored.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, _, err := svc.Register(context.Background(), "alice", "alice@x.com", "p@ss1")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "bob", "alice@x.com", "p@ss2")
	assert.ErrorIs(t, err, ErrIdentityExists)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, _, err := svc.Register(context.Background(), "alice", "alice@x.com", "p@ss1")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "alice", "other@x.com", "p@ss2")
	assert.ErrorIs(t, err, ErrIdentityExists)
}

func TestRegister_NeverSelfElevates(t *testing.T) {
	svc, _, _ := newTestService(t)

	// The legacy behavior elevated this exact address; registration must
	// not grant admin to anyone.
	_, user, err := svc.Register(context.Background(), "admin", "admin@admin.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestRegister_ConcurrentSameEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i, username := range []string{"alice", "alice2"} {
		wg.Add(1)
		go func(i int, username string) {
			defer wg.Done()
			_, _, errs[i] = svc.Register(context.Background(), username, "alice@x.com", "p@ss1")
		}(i, username)
	}
	wg.Wait()

	var succeeded, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrIdentityExists):
			duplicates++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, duplicates)
}

func TestLogin_Success(t *testing.T) {
	svc, _, tokens := newTestService(t)

	_, registered, err := svc.Register(context.Background(), "alice", "alice@x.com", "p@ss1")
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "alice@x.com", "p@ss1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	gotID, gotRole, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, gotID)
	assert.Equal(t, models.RoleUser, gotRole)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, _, err := svc.Register(context.Background(), "alice", "alice@x.com", "p@ss1")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alice@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, _, err := svc.Login(context.Background(), "nobody@x.com", "p@ss1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
