package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v4"

	"hospitaldir/internal/models"
)

func (p *PostgresStorage) CreateHospital(ctx context.Context, hospital models.Hospital) (uuid.UUID, error) {
	const op = "storage.CreateHospital"

	var hospitalID uuid.UUID
	query := fmt.Sprintf(`INSERT INTO %s
	(name, city, image, specialities, rating, description, images, number_of_doctors, number_of_departments)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id;`, hospitalsTable)

	err := p.db.QueryRow(ctx, query,
		hospital.Name, hospital.City, hospital.Image, hospital.Specialities, hospital.Rating,
		hospital.Description, hospital.Images, hospital.NumberOfDoctors, hospital.NumberOfDepartments,
	).Scan(&hospitalID)
	if err != nil {
		return hospitalID, fmt.Errorf("%s: %w", op, err)
	}

	return hospitalID, nil
}

func (p *PostgresStorage) GetHospitalByID(ctx context.Context, hospitalID uuid.UUID) (models.Hospital, error) {
	const op = "storage.GetHospitalByID"

	var hospital models.Hospital
	query := fmt.Sprintf(`SELECT
	id, name, city, image, specialities, rating, description, images, number_of_doctors, number_of_departments
	FROM %s WHERE id=$1;`, hospitalsTable)

	err := p.db.QueryRow(ctx, query, hospitalID).Scan(
		&hospital.ID, &hospital.Name, &hospital.City, &hospital.Image, &hospital.Specialities,
		&hospital.Rating, &hospital.Description, &hospital.Images,
		&hospital.NumberOfDoctors, &hospital.NumberOfDepartments,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return hospital, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return hospital, fmt.Errorf("%s: %w", op, err)
	}

	return hospital, nil
}

func (p *PostgresStorage) ListHospitals(ctx context.Context) ([]models.Hospital, error) {
	const op = "storage.ListHospitals"

	query := fmt.Sprintf(`SELECT
	id, name, city, image, specialities, rating, description, images, number_of_doctors, number_of_departments
	FROM %s;`, hospitalsTable)

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return scanHospitals(rows, op)
}

func (p *PostgresStorage) ListHospitalsByCity(ctx context.Context, city string) ([]models.Hospital, error) {
	const op = "storage.ListHospitalsByCity"

	query := fmt.Sprintf(`SELECT
	id, name, city, image, specialities, rating, description, images, number_of_doctors, number_of_departments
	FROM %s WHERE city=$1;`, hospitalsTable)

	rows, err := p.db.Query(ctx, query, city)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return scanHospitals(rows, op)
}

func (p *PostgresStorage) UpdateHospital(ctx context.Context, hospital models.Hospital) error {
	const op = "storage.UpdateHospital"

	query := fmt.Sprintf(`UPDATE %s SET
	name=$1, city=$2, image=$3, specialities=$4, rating=$5, description=$6, images=$7,
	number_of_doctors=$8, number_of_departments=$9
	WHERE id=$10;`, hospitalsTable)

	tag, err := p.db.Exec(ctx, query,
		hospital.Name, hospital.City, hospital.Image, hospital.Specialities, hospital.Rating,
		hospital.Description, hospital.Images, hospital.NumberOfDoctors, hospital.NumberOfDepartments,
		hospital.ID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return nil
}

func (p *PostgresStorage) UpdateHospitalDetails(ctx context.Context, hospitalID uuid.UUID, details models.HospitalDetails) error {
	const op = "storage.UpdateHospitalDetails"

	// COALESCE keeps the stored value for fields the caller did not send.
	query := fmt.Sprintf(`UPDATE %s SET
	description=COALESCE($1, description),
	images=COALESCE($2, images),
	number_of_doctors=COALESCE($3, number_of_doctors),
	number_of_departments=COALESCE($4, number_of_departments)
	WHERE id=$5;`, hospitalsTable)

	tag, err := p.db.Exec(ctx, query,
		details.Description, details.Images, details.NumberOfDoctors, details.NumberOfDepartments, hospitalID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return nil
}

func (p *PostgresStorage) DeleteHospital(ctx context.Context, hospitalID uuid.UUID) error {
	const op = "storage.DeleteHospital"

	query := fmt.Sprintf("DELETE FROM %s WHERE id=$1;", hospitalsTable)

	tag, err := p.db.Exec(ctx, query, hospitalID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return nil
}

func scanHospitals(rows pgx.Rows, op string) ([]models.Hospital, error) {
	var hospitals []models.Hospital

	for rows.Next() {
		var hospital models.Hospital

		err := rows.Scan(
			&hospital.ID, &hospital.Name, &hospital.City, &hospital.Image, &hospital.Specialities,
			&hospital.Rating, &hospital.Description, &hospital.Images,
			&hospital.NumberOfDoctors, &hospital.NumberOfDepartments,
		)
		if err != nil {
			return hospitals, fmt.Errorf("%s: %w", op, err)
		}

		hospitals = append(hospitals, hospital)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s (rows): %w", op, err)
	}

	return hospitals, nil
}
