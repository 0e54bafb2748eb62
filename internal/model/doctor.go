package model

import (
	"github.com/google/uuid"
)

type Doctor struct {
	Base
	Name           string    `db:"name" json:"name"`
	Specialization string    `db:"specialization" json:"specialization"`
	HospitalID     uuid.UUID `db:"hospital_id" json:"hospital_id"`
	City           string    `db:"city" json:"city"`
	Email          *string   `db:"email" json:"email,omitempty"`
	Experience     int       `db:"experience" json:"experience"`
	Fees           float64   `db:"fees" json:"fees"`
	Rating         float64   `db:"rating" json:"rating"`
}

// NearbyDoctorsRequest is the body of POST /api/doctors/nearby. UserLocation
// and City are both optional; the city falls back to a configured default.
type NearbyDoctorsRequest struct {
	Problem      string       `json:"problem" binding:"required"`
	UserLocation *Coordinates `json:"userLocation"`
	City         string       `json:"city"`
}

// NearbyDoctor is one row of a nearby search result. Distance is a display
// string ("3.41 km", or "N/A" when the caller sent no location).
type NearbyDoctor struct {
	DoctorName     string    `json:"doctorName"`
	Specialization string    `json:"specialization"`
	Hospital       string    `json:"hospital"`
	Distance       string    `json:"distance"`
	Fees           float64   `json:"fees"`
	Rating         float64   `json:"rating"`
	Email          string    `json:"email,omitempty"`
	DoctorID       uuid.UUID `json:"doctorId"`
	DoctorInfo     *Doctor   `json:"doctorInfo"`
}
