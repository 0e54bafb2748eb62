package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/smarthealth/booking-api/internal/config"
	"github.com/smarthealth/booking-api/internal/model"
	"github.com/smarthealth/booking-api/internal/repository/postgres"
)

func strPtr(s string) *string { return &s }

func newBase() model.Base {
	now := time.Now()
	return model.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// Seeds a demo data set: hospitals and doctors around Bhimavaram, plus a
// small lab and pharmacy catalog. Inserts are idempotent only in the sense
// that running against a fresh database is expected.
func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()

	hospitalRepo := postgres.NewHospitalRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	labRepo := postgres.NewLabRepository(db)
	medicineRepo := postgres.NewMedicineRepository(db)

	hospitals := []*model.Hospital{
		{Base: newBase(), Name: "Sri Aditya Multi Speciality Hospital", City: "bhimavaram", Email: strPtr("contact@sriaditya.com"), Lat: 16.5449, Lng: 81.5212},
		{Base: newBase(), Name: "Anjali Hospital", City: "bhimavaram", Email: strPtr("info@anjalihospital.in"), Lat: 16.5465, Lng: 81.5230},
		{Base: newBase(), Name: "Vijaya Super Speciality Hospital", City: "bhimavaram", Email: strPtr("helpdesk@vijayahospital.com"), Lat: 16.5432, Lng: 81.5195},
		{Base: newBase(), Name: "Government Area Hospital", City: "bhimavaram", Email: strPtr("admin@govtfh-bmy.org"), Lat: 16.5478, Lng: 81.5201},
		{Base: newBase(), Name: "Sree Ramadevi Neuro Hospital", City: "bhimavaram", Email: strPtr("enquiry@ramadevineuro.com"), Lat: 16.5420, Lng: 81.5188},
	}
	byName := make(map[string]uuid.UUID, len(hospitals))
	for _, h := range hospitals {
		if err := hospitalRepo.Create(ctx, h); err != nil {
			log.Fatal().Err(err).Str("hospital", h.Name).Msg("failed to seed hospital")
		}
		byName[h.Name] = h.ID
	}
	log.Info().Int("count", len(hospitals)).Msg("seeded hospitals")

	doctors := []*model.Doctor{
		{Base: newBase(), Name: "Dr. K. Suryanarayana", Specialization: "General Physician", HospitalID: byName["Sri Aditya Multi Speciality Hospital"], City: "bhimavaram", Email: strPtr("suryanarayana@sriaditya.com"), Experience: 15, Fees: 500, Rating: 4.8},
		{Base: newBase(), Name: "Dr. P. Venkat Rao", Specialization: "General Physician", HospitalID: byName["Government Area Hospital"], City: "bhimavaram", Email: strPtr("venkatrao@govtfh-bmy.org"), Experience: 20, Fees: 200, Rating: 4.2},
		{Base: newBase(), Name: "Dr. L. Swathi", Specialization: "Dermatologist", HospitalID: byName["Anjali Hospital"], City: "bhimavaram", Email: strPtr("swathi@anjalihospital.in"), Experience: 8, Fees: 600, Rating: 4.9},
		{Base: newBase(), Name: "Dr. R. Murthy", Specialization: "Neurologist", HospitalID: byName["Sree Ramadevi Neuro Hospital"], City: "bhimavaram", Email: strPtr("murthy@ramadevineuro.com"), Experience: 25, Fees: 1000, Rating: 4.7},
		{Base: newBase(), Name: "Dr. B. Subba Rao", Specialization: "Gastroenterologist", HospitalID: byName["Sri Aditya Multi Speciality Hospital"], City: "bhimavaram", Email: strPtr("subbarao@sriaditya.com"), Experience: 12, Fees: 700, Rating: 4.6},
		{Base: newBase(), Name: "Dr. V. Satyanarayana", Specialization: "Orthopedist", HospitalID: byName["Vijaya Super Speciality Hospital"], City: "bhimavaram", Email: strPtr("satyanarayana@vijayahospital.com"), Experience: 18, Fees: 800, Rating: 4.5},
		{Base: newBase(), Name: "Dr. S. Prasanna", Specialization: "Psychiatrist", HospitalID: byName["Anjali Hospital"], City: "bhimavaram", Email: strPtr("prasanna@anjalihospital.in"), Experience: 10, Fees: 900, Rating: 4.4},
		{Base: newBase(), Name: "Dr. G. Ramesh", Specialization: "Ophthalmologist", HospitalID: byName["Vijaya Super Speciality Hospital"], City: "bhimavaram", Email: strPtr("ramesh@vijayahospital.com"), Experience: 14, Fees: 450, Rating: 4.3},
	}
	for _, d := range doctors {
		if err := doctorRepo.Create(ctx, d); err != nil {
			log.Fatal().Err(err).Str("doctor", d.Name).Msg("failed to seed doctor")
		}
	}
	log.Info().Int("count", len(doctors)).Msg("seeded doctors")

	pathology := model.LabTests{
		{Code: "CBC", Name: "Complete Blood Count (Blood Test)", Price: 400, Category: "Basic Health"},
		{Code: "FBS", Name: "Sugar Test (Fasting)", Price: 200, Category: "Diabetes"},
		{Code: "HBA1C", Name: "3-Month Sugar Average (HbA1c)", Price: 600, Category: "Diabetes"},
		{Code: "LIPID", Name: "Cholesterol & Heart Test", Price: 800, Category: "Heart Health"},
		{Code: "TSH", Name: "Thyroid Test (TSH)", Price: 350, Category: "Thyroid"},
		{Code: "VITD", Name: "Vitamin D Test", Price: 1200, Category: "Vitamins"},
	}
	radiology := model.LabTests{
		{Code: "XRAY-CHEST", Name: "X-Ray Chest PA View", Price: 500, Category: "X-Ray"},
		{Code: "ECG", Name: "Heart Rate Graph (ECG)", Price: 400, Category: "Heart Health"},
		{Code: "USG-ABDO", Name: "Ultrasound Abdomen (Stomach)", Price: 1200, Category: "Ultrasound"},
		{Code: "CT-BRAIN", Name: "CT Scan Brain", Price: 2500, Category: "CT Scan"},
	}

	labs := []*model.Lab{
		{Base: newBase(), Name: "Lotus Diagnostics", City: "bhimavaram", Address: "JP Road, Bhimavaram", Rating: 4.5, Tests: pathology},
		{Base: newBase(), Name: "Apollo Diagnostics", City: "bhimavaram", Address: "Juvvalapalem Road, Bhimavaram", Rating: 4.7, Tests: append(pathology[:3:3], radiology...)},
		{Base: newBase(), Name: "Bhimavaram Scans & Labs", City: "bhimavaram", Address: "Balusumoodi, Bhimavaram", Rating: 4.2, Tests: radiology},
		{Base: newBase(), Name: "Sri Vijaya Diagnostic Centre", City: "palakollu", Address: "Main Road, Palakollu", Rating: 4.4, Tests: pathology},
		{Base: newBase(), Name: "Royal Hospital Diagnostic Centre", City: "eluru", Address: "RR Peta, Eluru", Rating: 4.3, Tests: pathology},
	}
	for _, l := range labs {
		if err := labRepo.Create(ctx, l); err != nil {
			log.Fatal().Err(err).Str("lab", l.Name).Msg("failed to seed lab")
		}
	}
	log.Info().Int("count", len(labs)).Msg("seeded labs")

	medicines := []*model.Medicine{
		{Base: newBase(), Name: "Paracetamol 650mg", Description: "Fever and mild pain relief", Price: 30, Category: "Fever", Stock: 200, Manufacturer: "Micro Labs", IsActive: true},
		{Base: newBase(), Name: "Cetirizine 10mg", Description: "Antihistamine for allergies", Price: 25, Category: "Allergy", Stock: 150, Manufacturer: "Dr. Reddy's", IsActive: true},
		{Base: newBase(), Name: "Amoxicillin 500mg", Description: "Broad spectrum antibiotic", Price: 90, Category: "Antibiotic", Stock: 80, RequiresPrescription: true, Manufacturer: "Cipla", IsActive: true},
		{Base: newBase(), Name: "Pantoprazole 40mg", Description: "Acid reflux and gastritis relief", Price: 60, Category: "Digestive", Stock: 120, Manufacturer: "Sun Pharma", IsActive: true},
		{Base: newBase(), Name: "ORS Sachets", Description: "Oral rehydration salts", Price: 20, Category: "Digestive", Stock: 300, Manufacturer: "FDC", IsActive: true},
	}
	for _, m := range medicines {
		if err := medicineRepo.Create(ctx, m); err != nil {
			log.Fatal().Err(err).Str("medicine", m.Name).Msg("failed to seed medicine")
		}
	}
	log.Info().Int("count", len(medicines)).Msg("seeded medicines")

	log.Info().Msg("seed complete")
}
