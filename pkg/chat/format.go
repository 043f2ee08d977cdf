package chat

import (
	"fmt"
	"strings"

	"github.com/Radpid/radGPT/pkg/common/models"
)

const noPatientsFound = "**Keine Patienten gefunden**\n\n*Aktuell sind keine Patienten in der Datenbank registriert.*"

// FormatPatientList renders a numbered patient listing. An empty input
// yields a fixed message rather than a zero-item enumeration.
func FormatPatientList(patients []models.Patient) string {
	if len(patients) == 0 {
		return noPatientsFound
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Patientenliste** *(%d Patienten)*\n\n", len(patients))

	for i, patient := range patients {
		fmt.Fprintf(&b, "**%d. %s %s**\n", i+1, patient.FirstName, patient.LastName)
		fmt.Fprintf(&b, "• *ID:* %s\n", patient.ID)
		fmt.Fprintf(&b, "• *Diagnose:* %s\n", fallback(patient.PrimaryCondition, notSpecified))
		fmt.Fprintf(&b, "• *Status:* %s\n", fallback(patient.CurrentStatus, notSpecified))
		fmt.Fprintf(&b, "• *Geboren:* %s\n\n", patient.BirthDate)
	}

	return b.String()
}

// FormatStatistics renders the aggregate counts. Grouping and ordering come
// from the backing aggregation query untouched; conditions are listed in the
// order they arrive and the raw condition text is never normalized.
func FormatStatistics(stats models.PatientStatistics) string {
	var b strings.Builder
	b.WriteString("**Patientenstatistiken**\n\n")
	fmt.Fprintf(&b, "• **Gesamt:** %d Patienten\n\n", stats.Total)

	if len(stats.ByCondition) > 0 {
		b.WriteString("**Verteilung nach Fachbereich:**\n")
		for _, row := range stats.ByCondition {
			fmt.Fprintf(&b, "• *%s:* %d Patienten\n", row.Condition, row.Count)
		}
	}

	return b.String()
}
