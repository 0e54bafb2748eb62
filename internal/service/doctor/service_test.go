package doctor

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarthealth/booking-api/internal/model"
	"github.com/smarthealth/booking-api/internal/repository"
)

type fakeHospitalRepo struct {
	hospitals []*model.Hospital
}

func (r *fakeHospitalRepo) Create(_ context.Context, h *model.Hospital) error {
	r.hospitals = append(r.hospitals, h)
	return nil
}

func (r *fakeHospitalRepo) Get(_ context.Context, id uuid.UUID) (*model.Hospital, error) {
	for _, h := range r.hospitals {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeHospitalRepo) List(_ context.Context) ([]*model.Hospital, error) {
	return r.hospitals, nil
}

func (r *fakeHospitalRepo) ListByCity(_ context.Context, city string) ([]*model.Hospital, error) {
	var out []*model.Hospital
	for _, h := range r.hospitals {
		if h.City == city {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakeDoctorRepo struct {
	doctors []*model.Doctor
}

func (r *fakeDoctorRepo) Create(_ context.Context, d *model.Doctor) error {
	r.doctors = append(r.doctors, d)
	return nil
}

func (r *fakeDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	for _, d := range r.doctors {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeDoctorRepo) List(_ context.Context) ([]*model.Doctor, error) {
	return r.doctors, nil
}

func (r *fakeDoctorRepo) ListByHospitals(_ context.Context, hospitalIDs []uuid.UUID, specialization string) ([]*model.Doctor, error) {
	ids := make(map[uuid.UUID]bool, len(hospitalIDs))
	for _, id := range hospitalIDs {
		ids[id] = true
	}

	var out []*model.Doctor
	for _, d := range r.doctors {
		if !ids[d.HospitalID] {
			continue
		}
		if specialization != "" && d.Specialization != specialization {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func seedFakes() (*fakeHospitalRepo, *fakeDoctorRepo, *model.Hospital, *model.Hospital) {
	near := &model.Hospital{
		Base: model.Base{ID: uuid.New()},
		Name: "Sri Aditya Multi Speciality Hospital",
		City: "bhimavaram",
		Lat:  16.5449, Lng: 81.5212,
	}
	// Eluru is some 50 km away from Bhimavaram.
	far := &model.Hospital{
		Base: model.Base{ID: uuid.New()},
		Name: "Royal Hospital",
		City: "bhimavaram",
		Lat:  16.7107, Lng: 81.0952,
	}
	hospitals := &fakeHospitalRepo{hospitals: []*model.Hospital{near, far}}

	doctors := &fakeDoctorRepo{doctors: []*model.Doctor{
		{Base: model.Base{ID: uuid.New()}, Name: "Dr. K. Suryanarayana", Specialization: "General Physician", HospitalID: near.ID, City: "bhimavaram", Fees: 500, Rating: 4.8},
		{Base: model.Base{ID: uuid.New()}, Name: "Dr. L. Swathi", Specialization: "Dermatologist", HospitalID: near.ID, City: "bhimavaram", Fees: 600, Rating: 4.9},
		{Base: model.Base{ID: uuid.New()}, Name: "Dr. Far Away", Specialization: "General Physician", HospitalID: far.ID, City: "bhimavaram", Fees: 300, Rating: 4.0},
	}}

	return hospitals, doctors, near, far
}

func TestSpecializationFor(t *testing.T) {
	assert.Equal(t, "General Physician", SpecializationFor("fever"))
	assert.Equal(t, "General Physician", SpecializationFor(" Fever "))
	assert.Equal(t, "Dermatologist", SpecializationFor("skin"))
	assert.Equal(t, "", SpecializationFor("toothache"))
}

func TestFindNearbyFiltersBySymptomAndRadius(t *testing.T) {
	hospitals, doctors, near, _ := seedFakes()
	svc := NewService(doctors, hospitals, "bhimavaram")

	results, err := svc.FindNearby(context.Background(), &model.NearbyDoctorsRequest{
		Problem:      "fever",
		UserLocation: &model.Coordinates{Lat: 16.5440, Lng: 81.5200},
	})
	require.NoError(t, err)

	// Only the general physician at the in-range hospital qualifies.
	require.Len(t, results, 1)
	assert.Equal(t, "Dr. K. Suryanarayana", results[0].DoctorName)
	assert.Equal(t, near.Name, results[0].Hospital)
	assert.Regexp(t, `^\d+\.\d{2} km$`, results[0].Distance)
	assert.NotNil(t, results[0].DoctorInfo)
}

func TestFindNearbyUnmappedSymptomReturnsAll(t *testing.T) {
	hospitals, doctors, _, _ := seedFakes()
	svc := NewService(doctors, hospitals, "bhimavaram")

	results, err := svc.FindNearby(context.Background(), &model.NearbyDoctorsRequest{
		Problem:      "toothache",
		UserLocation: &model.Coordinates{Lat: 16.5440, Lng: 81.5200},
	})
	require.NoError(t, err)

	// No specialization filter, so both doctors at the in-range hospital.
	assert.Len(t, results, 2)
}

func TestFindNearbyWithoutLocation(t *testing.T) {
	hospitals, doctors, _, _ := seedFakes()
	svc := NewService(doctors, hospitals, "bhimavaram")

	results, err := svc.FindNearby(context.Background(), &model.NearbyDoctorsRequest{Problem: "fever"})
	require.NoError(t, err)

	// Without a location the radius filter is skipped and distance is N/A.
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, "N/A", r.Distance)
	}
}

func TestFindNearbyDefaultCity(t *testing.T) {
	hospitals, doctors, _, _ := seedFakes()
	svc := NewService(doctors, hospitals, "bhimavaram")

	results, err := svc.FindNearby(context.Background(), &model.NearbyDoctorsRequest{Problem: "skin", City: "Vijayawada"})
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = svc.FindNearby(context.Background(), &model.NearbyDoctorsRequest{Problem: "skin"})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}
