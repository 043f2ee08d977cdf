package chat

import (
	"strings"
	"testing"

	"github.com/Radpid/radGPT/pkg/common/models"
)

func TestFormatPatientListEmpty(t *testing.T) {
	got := FormatPatientList(nil)
	if got != noPatientsFound {
		t.Fatalf("unexpected empty-list message: %q", got)
	}
}

func TestFormatPatientList(t *testing.T) {
	listed := []models.Patient{
		{ID: "123456", FirstName: "Maria", LastName: "Schmitt", PrimaryCondition: "Onkologie", CurrentStatus: "In Behandlung", BirthDate: "1962-04-17"},
		{ID: "345678", FirstName: "Thomas", LastName: "Weber", BirthDate: "1955-11-02"},
	}
	got := FormatPatientList(listed)

	if !strings.Contains(got, "**Patientenliste** *(2 Patienten)*") {
		t.Fatalf("missing header:\n%s", got)
	}
	if !strings.Contains(got, "**1. Maria Schmitt**") || !strings.Contains(got, "**2. Thomas Weber**") {
		t.Fatalf("entries not numbered:\n%s", got)
	}
	if !strings.Contains(got, "• *ID:* 123456") {
		t.Fatalf("missing id bullet:\n%s", got)
	}
	// Missing diagnosis falls back to the placeholder.
	if !strings.Contains(got, "• *Diagnose:* Nicht angegeben") {
		t.Fatalf("missing diagnosis fallback:\n%s", got)
	}
}

func TestFormatStatistics(t *testing.T) {
	stats := models.PatientStatistics{
		Total: 5,
		ByCondition: []models.ConditionCount{
			{Condition: "Onkologie", Count: 2},
			{Condition: "Kardiologie", Count: 1},
		},
	}
	got := FormatStatistics(stats)

	if !strings.Contains(got, "**Patientenstatistiken**") {
		t.Fatalf("missing header:\n%s", got)
	}
	if !strings.Contains(got, "• **Gesamt:** 5 Patienten") {
		t.Fatalf("missing total:\n%s", got)
	}
	if !strings.Contains(got, "• *Onkologie:* 2 Patienten") {
		t.Fatalf("missing condition row:\n%s", got)
	}
	// Rows keep the aggregation order.
	if strings.Index(got, "Onkologie") > strings.Index(got, "Kardiologie") {
		t.Fatal("condition rows out of order")
	}
}

func TestFormatStatisticsNoConditions(t *testing.T) {
	got := FormatStatistics(models.PatientStatistics{Total: 0})
	if strings.Contains(got, "Verteilung nach Fachbereich") {
		t.Fatalf("distribution section must be omitted when empty:\n%s", got)
	}
}
