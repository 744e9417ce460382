package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"

	"hospitaldir/internal/models"
	"hospitaldir/internal/storage"
)

func (s *service) CreateHospital(ctx context.Context, hospital models.Hospital) (models.Hospital, error) {
	const op = "service.CreateHospital"

	hospitalID, err := s.storage.CreateHospital(ctx, hospital)
	if err != nil {
		return models.Hospital{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.storage.GetHospitalByID(ctx, hospitalID)
	if err != nil {
		return models.Hospital{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (s *service) GetHospital(ctx context.Context, hospitalID uuid.UUID) (models.Hospital, error) {
	const op = "service.GetHospital"

	hospital, err := s.storage.GetHospitalByID(ctx, hospitalID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Hospital{}, ErrNotFound
		}
		return models.Hospital{}, fmt.Errorf("%s: %w", op, err)
	}

	return hospital, nil
}

func (s *service) ListHospitals(ctx context.Context) ([]models.Hospital, error) {
	const op = "service.ListHospitals"

	hospitals, err := s.storage.ListHospitals(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return hospitals, nil
}

func (s *service) ListHospitalsByCity(ctx context.Context, city string) ([]models.Hospital, error) {
	const op = "service.ListHospitalsByCity"

	hospitals, err := s.storage.ListHospitalsByCity(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return hospitals, nil
}

func (s *service) UpdateHospital(ctx context.Context, hospitalID uuid.UUID, hospital models.Hospital) (models.Hospital, error) {
	const op = "service.UpdateHospital"

	hospital.ID = hospitalID

	if err := s.storage.UpdateHospital(ctx, hospital); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Hospital{}, ErrNotFound
		}
		return models.Hospital{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.storage.GetHospitalByID(ctx, hospitalID)
	if err != nil {
		return models.Hospital{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (s *service) AddHospitalDetails(ctx context.Context, hospitalID uuid.UUID, details models.HospitalDetails) (models.Hospital, error) {
	const op = "service.AddHospitalDetails"

	if err := s.storage.UpdateHospitalDetails(ctx, hospitalID, details); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Hospital{}, ErrNotFound
		}
		return models.Hospital{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.storage.GetHospitalByID(ctx, hospitalID)
	if err != nil {
		return models.Hospital{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (s *service) DeleteHospital(ctx context.Context, hospitalID uuid.UUID) error {
	const op = "service.DeleteHospital"

	if err := s.storage.DeleteHospital(ctx, hospitalID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
