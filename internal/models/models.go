package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"-"`
}

type Hospital struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	City                string    `json:"city"`
	Image               string    `json:"image"`
	Specialities        []string  `json:"specialities"`
	Rating              float64   `json:"rating"`
	Description         string    `json:"description"`
	Images              []string  `json:"images"`
	NumberOfDoctors     int       `json:"numberOfDoctors"`
	NumberOfDepartments int       `json:"numberOfDepartments"`
}

// HospitalDetails is the partial update applied by the add-details operation.
type HospitalDetails struct {
	Description         *string  `json:"description"`
	Images              []string `json:"images"`
	NumberOfDoctors     *int     `json:"numberOfDoctors"`
	NumberOfDepartments *int     `json:"numberOfDepartments"`
}
