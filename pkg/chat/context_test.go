package chat

import (
	"strings"
	"testing"

	"github.com/Radpid/radGPT/pkg/common/models"
)

func testPatient() models.Patient {
	return models.Patient{
		ID:               "123456",
		FirstName:        "Maria",
		LastName:         "Schmitt",
		BirthDate:        "1962-04-17",
		PrimaryCondition: "Onkologie",
		CurrentStatus:    "In Behandlung",
		Comorbidities: []models.Comorbidity{
			{ID: 1, Name: "Diabetes mellitus Typ 2"},
			{ID: 2, Name: "Arterielle Hypertonie"},
		},
		Reports: []models.Report{
			{ID: "r1", Type: "Radiologie", Title: "CT Thorax", Date: "2025-01-15", Doctor: "Dr. Weber", Summary: "Unauffällig", FullText: "Keine Metastasen."},
			{ID: "r2", Type: "Pathologie", Title: "Biopsie", Date: "2025-02-01", Doctor: "Dr. Klein", Summary: "Befund positiv", FullText: "Adenokarzinom."},
		},
	}
}

func TestBuildPatientContextUnfiltered(t *testing.T) {
	got := BuildPatientContext(testPatient(), nil)

	for _, want := range []string{
		"Patient: Maria Schmitt",
		"Geburtsdatum: 1962-04-17",
		"Hauptdiagnose: Onkologie",
		"Aktueller Status: In Behandlung",
		"- Diabetes mellitus Typ 2",
		"CT Thorax",
		"Biopsie",
		"Zusammenfassung: Unauffällig",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("context missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Zeitraum") {
		t.Fatalf("unfiltered context must not state a range:\n%s", got)
	}
	// Report order follows the stored order.
	if strings.Index(got, "CT Thorax") > strings.Index(got, "Biopsie") {
		t.Fatal("reports out of order")
	}
}

func TestBuildPatientContextDateFilter(t *testing.T) {
	filter := &models.DateFilter{StartDate: "2025-01-01", EndDate: "2025-01-31"}
	got := BuildPatientContext(testPatient(), filter)

	if !strings.Contains(got, "(Zeitraum: 2025-01-01 bis 2025-01-31)") {
		t.Fatalf("filtered context must state the range:\n%s", got)
	}
	if !strings.Contains(got, "CT Thorax") {
		t.Fatalf("report inside the range was dropped:\n%s", got)
	}
	if strings.Contains(got, "Biopsie") {
		t.Fatalf("report outside the range was kept:\n%s", got)
	}
}

func TestBuildPatientContextFilterBoundsInclusive(t *testing.T) {
	filter := &models.DateFilter{StartDate: "2025-01-15", EndDate: "2025-02-01"}
	got := BuildPatientContext(testPatient(), filter)

	if !strings.Contains(got, "CT Thorax") || !strings.Contains(got, "Biopsie") {
		t.Fatalf("boundary dates must be kept:\n%s", got)
	}
}

func TestBuildPatientContextUnparseableFilterIgnored(t *testing.T) {
	filter := &models.DateFilter{StartDate: "last week", EndDate: "2025-01-31"}
	got := BuildPatientContext(testPatient(), filter)

	if strings.Contains(got, "Zeitraum") {
		t.Fatalf("unparseable filter must disable filtering:\n%s", got)
	}
	if !strings.Contains(got, "Biopsie") {
		t.Fatalf("all reports must survive an ignored filter:\n%s", got)
	}
}

func TestBuildPatientContextUnparseableReportDateSkipped(t *testing.T) {
	patient := testPatient()
	patient.Reports = append(patient.Reports, models.Report{
		ID: "r3", Type: "Arztbrief", Title: "Entlassungsbrief", Date: "not-a-date",
	})
	filter := &models.DateFilter{StartDate: "2025-01-01", EndDate: "2025-12-31"}
	got := BuildPatientContext(patient, filter)

	if strings.Contains(got, "Entlassungsbrief") {
		t.Fatalf("report with unparseable date must be excluded from filtered context:\n%s", got)
	}
}

func TestBuildPatientContextMissingFields(t *testing.T) {
	patient := models.Patient{ID: "999999", FirstName: "Max", LastName: "Muster"}
	got := BuildPatientContext(patient, nil)

	if !strings.Contains(got, "Hauptdiagnose: Nicht angegeben") {
		t.Fatalf("missing diagnosis must fall back:\n%s", got)
	}
	if !strings.Contains(got, "Keine Komorbiditäten dokumentiert") {
		t.Fatalf("missing comorbidities must fall back:\n%s", got)
	}
	if !strings.Contains(got, "Keine medizinischen Berichte verfügbar") {
		t.Fatalf("missing reports must fall back:\n%s", got)
	}
}

func TestBuildPatientContextRFC3339Dates(t *testing.T) {
	patient := testPatient()
	patient.Reports[0].Date = "2025-01-15T09:30:00Z"
	filter := &models.DateFilter{StartDate: "2025-01-01", EndDate: "2025-01-31"}
	got := BuildPatientContext(patient, filter)

	if !strings.Contains(got, "CT Thorax") {
		t.Fatalf("RFC3339 report date inside the range was dropped:\n%s", got)
	}
}
