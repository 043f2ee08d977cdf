package patients

import (
	"context"
	"fmt"
	"time"

	"github.com/Radpid/radGPT/pkg/common/logger"
	"gorm.io/gorm"
)

// SeedSampleData inserts demo comorbidities, patients and reports so a fresh
// deployment has something to chat about. Inserts are idempotent, existing
// rows are left untouched.
func SeedSampleData(ctx context.Context, db *gorm.DB) error {
	comorbidities := []string{
		"Periphere Polyneuropathie Grad 2",
		"Diabetes Mellitus Typ 2",
		"Arterielle Hypertonie",
		"Herzinsuffizienz",
		"COPD",
		"Osteoporose",
		"Arthrose",
		"Niereninsuffizienz",
		"Hypercholesterinämie",
	}
	for _, name := range comorbidities {
		var count int64
		if err := db.WithContext(ctx).Model(&comorbidityModel{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.WithContext(ctx).Create(&comorbidityModel{Name: name}).Error; err != nil {
				return err
			}
		}
	}

	type seedPatient struct {
		patient       patientModel
		specialty     string
		comorbidities []string
	}

	seeds := []seedPatient{
		{
			patient: patientModel{
				ID: "123456", LastName: "Schmitt", FirstName: "Hans", BirthDate: "1958-05-20",
				PrimaryCondition: "Rektumkarzinom (cT3N1M0)",
				CurrentStatus:    "Re-Staging vor Ileostoma-Rückverlegung",
			},
			specialty:     "Onkologie",
			comorbidities: []string{"Periphere Polyneuropathie Grad 2", "Diabetes Mellitus Typ 2"},
		},
		{
			patient: patientModel{
				ID: "234567", LastName: "Müller", FirstName: "Anna", BirthDate: "1965-03-15",
				PrimaryCondition: "Mammakarzinom links (T2N1M0)",
				CurrentStatus:    "Adjuvante Chemotherapie laufend",
			},
			specialty:     "Onkologie",
			comorbidities: []string{"Arterielle Hypertonie"},
		},
		{
			patient: patientModel{
				ID: "345678", LastName: "Weber", FirstName: "Klaus", BirthDate: "1970-12-10",
				PrimaryCondition: "Koronare Herzkrankheit (3-Gefäß-KHK)",
				CurrentStatus:    "Zustand nach PTCA mit Stentimplantation",
			},
			specialty:     "Kardiologie",
			comorbidities: []string{"Diabetes Mellitus Typ 2", "Hypercholesterinämie"},
		},
		{
			patient: patientModel{
				ID: "456789", LastName: "Fischer", FirstName: "Maria", BirthDate: "1955-08-22",
				PrimaryCondition: "Hüftgelenkarthrose rechts",
				CurrentStatus:    "Geplante Hüft-TEP",
			},
			specialty:     "Orthopädie",
			comorbidities: []string{"Osteoporose", "Arterielle Hypertonie"},
		},
		{
			patient: patientModel{
				ID: "567890", LastName: "Becker", FirstName: "Thomas", BirthDate: "1962-09-05",
				PrimaryCondition: "Cholezystolithiasis",
				CurrentStatus:    "Geplante laparoskopische Cholezystektomie",
			},
			specialty:     "Chirurgie",
			comorbidities: []string{"COPD", "Arterielle Hypertonie"},
		},
	}

	for _, seed := range seeds {
		var count int64
		if err := db.WithContext(ctx).Model(&patientModel{}).Where("id = ?", seed.patient.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		seed.patient.CreatedAt = time.Now().UTC()
		if err := db.WithContext(ctx).Create(&seed.patient).Error; err != nil {
			return err
		}

		for _, name := range seed.comorbidities {
			var comorbidity comorbidityModel
			if err := db.WithContext(ctx).Where("name = ?", name).First(&comorbidity).Error; err != nil {
				continue
			}
			if err := db.WithContext(ctx).Model(&seed.patient).Association("Comorbidities").Append(&comorbidity); err != nil {
				logger.Log.WithError(err).WithField("patient_id", seed.patient.ID).Warn("failed to attach comorbidity")
			}
		}

		for _, report := range seedReports(seed.patient, seed.specialty) {
			if err := db.WithContext(ctx).Create(&report).Error; err != nil {
				return err
			}
		}
	}

	logger.Log.Info("sample data seeded")
	return nil
}

func seedReports(patient patientModel, specialty string) []reportModel {
	now := time.Now().UTC()
	fullName := patient.FirstName + " " + patient.LastName

	switch specialty {
	case "Onkologie":
		return []reportModel{
			{
				ID: fmt.Sprintf("onco_%s_1", patient.ID), PatientID: patient.ID,
				Type: "Radiologie", Title: "CT Thorax/Abdomen (Staging)", Date: "2025-01-15",
				Doctor:    "Dr. Radiologie",
				Summary:   "Staging-Untersuchung zeigt lokalisierte Erkrankung ohne Fernmetastasen.",
				FullText:  fmt.Sprintf("CT-Untersuchung bei %s zur Staging-Evaluation. Befund zeigt eine lokalisierte Läsion ohne Anzeichen einer Fernmetastasierung. Empfehlung: Weiterführende onkologische Therapie.", fullName),
				CreatedAt: now,
			},
			{
				ID: fmt.Sprintf("onco_%s_2", patient.ID), PatientID: patient.ID,
				Type: "Pathologie", Title: "Histopathologischer Befund", Date: "2025-01-20",
				Doctor:    "Dr. Pathologie",
				Summary:   "Adenokarzinom, mäßig differenziert, R0-Resektion.",
				FullText:  fmt.Sprintf("Histopathologische Untersuchung des Resektats von %s. Befund: Adenokarzinom, mäßig differenziert. Alle Resektionsränder tumorfrei (R0). Empfehlung für adjuvante Therapie.", fullName),
				CreatedAt: now.Add(time.Second),
			},
		}
	case "Kardiologie":
		return []reportModel{
			{
				ID: fmt.Sprintf("cardio_%s_1", patient.ID), PatientID: patient.ID,
				Type: "Radiologie", Title: "Koronarangiographie", Date: "2025-01-10",
				Doctor:    "Dr. Kardiologe",
				Summary:   "3-Gefäß-KHK, erfolgreiche Stentimplantation in LAD.",
				FullText:  fmt.Sprintf("Koronarangiographie bei %s. Befund: Hochgradige Stenosen in drei Koronargefäßen. Erfolgreiche PTCA mit Stentimplantation in der LAD. Gute Reperfusion.", fullName),
				CreatedAt: now,
			},
		}
	case "Orthopädie":
		return []reportModel{
			{
				ID: fmt.Sprintf("ortho_%s_1", patient.ID), PatientID: patient.ID,
				Type: "Radiologie", Title: "Röntgen Hüfte beidseits", Date: "2025-01-05",
				Doctor:    "Dr. Orthopäde",
				Summary:   "Hochgradige Koxarthrose rechts, Indikation zur Hüft-TEP.",
				FullText:  fmt.Sprintf("Röntgenuntersuchung der Hüfte bei %s. Befund: Hochgradige Arthrose des rechten Hüftgelenks mit Gelenkspaltverschmälerung und Osteophytenbildung. Klare Indikation zur endoprothetischen Versorgung.", fullName),
				CreatedAt: now,
			},
		}
	default:
		return []reportModel{
			{
				ID: fmt.Sprintf("gen_%s_1", patient.ID), PatientID: patient.ID,
				Type: "Arztbrief", Title: "Aufnahmebefund", Date: "2025-01-01",
				Doctor:    "Dr. Hausarzt",
				Summary:   fmt.Sprintf("Aufnahme zur Behandlung von %s.", patient.PrimaryCondition),
				FullText:  fmt.Sprintf("Patient %s wurde zur stationären Behandlung aufgenommen. Diagnose: %s. Geplante Therapie entsprechend Leitlinien.", fullName, patient.PrimaryCondition),
				CreatedAt: now,
			},
		}
	}
}
