package doctor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/smarthealth/booking-api/internal/model"
	"github.com/smarthealth/booking-api/internal/repository"
	"github.com/smarthealth/booking-api/pkg/geo"
)

// NearbyRadiusKM bounds the nearby search when the caller supplies a
// location.
const NearbyRadiusKM = 10.0

// problemMap translates the symptom keyword a patient picks into the
// specialization to filter on. Unmapped keywords skip the filter.
var problemMap = map[string]string{
	"fever":    "General Physician",
	"skin":     "Dermatologist",
	"headache": "Neurologist",
	"stomach":  "Gastroenterologist",
	"back":     "Orthopedist",
	"anxiety":  "Psychiatrist",
	"eye":      "Ophthalmologist",
}

// SpecializationFor returns the specialization mapped to a symptom keyword,
// or "" when the keyword is unmapped.
func SpecializationFor(problem string) string {
	return problemMap[strings.ToLower(strings.TrimSpace(problem))]
}

type Service struct {
	doctors     repository.DoctorRepository
	hospitals   repository.HospitalRepository
	defaultCity string

	// Hospital rows are seed data and nearly static; a short TTL cache
	// keeps the nearby search off the database.
	hospitalCache *cache.Cache
}

func NewService(doctors repository.DoctorRepository, hospitals repository.HospitalRepository, defaultCity string) *Service {
	return &Service{
		doctors:       doctors,
		hospitals:     hospitals,
		defaultCity:   defaultCity,
		hospitalCache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.doctors.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return doctor, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

// FindNearby resolves the symptom to a specialization, finds hospitals in
// the target city (within NearbyRadiusKM of the caller when a location is
// given), and returns the doctors practicing at them.
func (s *Service) FindNearby(ctx context.Context, req *model.NearbyDoctorsRequest) ([]*model.NearbyDoctor, error) {
	specialization := SpecializationFor(req.Problem)

	city := strings.ToLower(strings.TrimSpace(req.City))
	if city == "" {
		city = s.defaultCity
	}

	hospitals, err := s.hospitalsByCity(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("failed to find hospitals: %w", err)
	}

	type nearbyHospital struct {
		hospital *model.Hospital
		distance *float64
	}

	var nearby []nearbyHospital
	if loc := req.UserLocation; loc != nil {
		for _, h := range hospitals {
			d := geo.Distance(loc.Lat, loc.Lng, h.Lat, h.Lng)
			if d <= NearbyRadiusKM {
				dist := d
				nearby = append(nearby, nearbyHospital{hospital: h, distance: &dist})
			}
		}
	} else {
		for _, h := range hospitals {
			nearby = append(nearby, nearbyHospital{hospital: h})
		}
	}

	if len(nearby) == 0 {
		return []*model.NearbyDoctor{}, nil
	}

	byID := make(map[uuid.UUID]nearbyHospital, len(nearby))
	hospitalIDs := make([]uuid.UUID, 0, len(nearby))
	for _, nh := range nearby {
		byID[nh.hospital.ID] = nh
		hospitalIDs = append(hospitalIDs, nh.hospital.ID)
	}

	doctors, err := s.doctors.ListByHospitals(ctx, hospitalIDs, specialization)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	results := make([]*model.NearbyDoctor, 0, len(doctors))
	for _, doc := range doctors {
		nh, ok := byID[doc.HospitalID]
		if !ok {
			continue
		}

		distance := "N/A"
		if nh.distance != nil {
			distance = fmt.Sprintf("%.2f km", *nh.distance)
		}

		emailAddr := ""
		if doc.Email != nil {
			emailAddr = *doc.Email
		}

		results = append(results, &model.NearbyDoctor{
			DoctorName:     doc.Name,
			Specialization: doc.Specialization,
			Hospital:       nh.hospital.Name,
			Distance:       distance,
			Fees:           doc.Fees,
			Rating:         doc.Rating,
			Email:          emailAddr,
			DoctorID:       doc.ID,
			DoctorInfo:     doc,
		})
	}

	return results, nil
}

func (s *Service) hospitalsByCity(ctx context.Context, city string) ([]*model.Hospital, error) {
	cacheKey := "hospitals:" + city
	if cached, found := s.hospitalCache.Get(cacheKey); found {
		return cached.([]*model.Hospital), nil
	}

	hospitals, err := s.hospitals.ListByCity(ctx, city)
	if err != nil {
		return nil, err
	}

	s.hospitalCache.Set(cacheKey, hospitals, cache.DefaultExpiration)
	return hospitals, nil
}
