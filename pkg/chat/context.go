package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/Radpid/radGPT/pkg/common/logger"
	"github.com/Radpid/radGPT/pkg/common/models"
)

const (
	notSpecified    = "Nicht angegeben"
	noComorbidities = "Keine Komorbiditäten dokumentiert"
	noReports       = "Keine medizinischen Berichte verfügbar"
	noSummary       = "Keine Zusammenfassung"
	noFullText      = "Kein Volltext verfügbar"

	reportDelimiter = "---"
)

var contextDateLayouts = []string{"2006-01-02", time.RFC3339}

// BuildPatientContext flattens a patient aggregate into the text block handed
// to the generation capability: identity, comorbidities, then the reports in
// the order the caller supplied them. When a date filter is given only
// reports inside the inclusive range are kept and the block states the range.
func BuildPatientContext(patient models.Patient, filter *models.DateFilter) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Patient: %s %s\n", patient.FirstName, patient.LastName)
	fmt.Fprintf(&b, "Geburtsdatum: %s\n", fallback(patient.BirthDate, notSpecified))
	fmt.Fprintf(&b, "Hauptdiagnose: %s\n", fallback(patient.PrimaryCondition, notSpecified))
	fmt.Fprintf(&b, "Aktueller Status: %s\n", fallback(patient.CurrentStatus, notSpecified))

	b.WriteString("\nKomorbiditäten:\n")
	if len(patient.Comorbidities) > 0 {
		for _, comorbidity := range patient.Comorbidities {
			fmt.Fprintf(&b, "- %s\n", comorbidity.Name)
		}
	} else {
		b.WriteString(noComorbidities + "\n")
	}

	b.WriteString("\nMedizinische Berichte:\n")
	if len(patient.Reports) == 0 {
		b.WriteString(noReports + "\n")
		return b.String()
	}

	reports := patient.Reports
	if start, end, ok := filterBounds(filter); ok {
		reports = filterReports(patient.Reports, start, end)
		fmt.Fprintf(&b, "(Zeitraum: %s bis %s)\n", filter.StartDate, filter.EndDate)
	}

	for _, report := range reports {
		fmt.Fprintf(&b, "[%s] %s\n", report.Type, report.Title)
		fmt.Fprintf(&b, "Datum: %s\n", report.Date)
		fmt.Fprintf(&b, "Arzt: %s\n", report.Doctor)
		fmt.Fprintf(&b, "Zusammenfassung: %s\n", fallback(report.Summary, noSummary))
		fmt.Fprintf(&b, "Volltext: %s\n", fallback(report.FullText, noFullText))
		b.WriteString(reportDelimiter + "\n")
	}

	return b.String()
}

// filterBounds parses the filter bounds. An absent or unparseable filter
// disables filtering instead of failing the request.
func filterBounds(filter *models.DateFilter) (time.Time, time.Time, bool) {
	if filter == nil || filter.StartDate == "" || filter.EndDate == "" {
		return time.Time{}, time.Time{}, false
	}
	start, err := parseContextDate(filter.StartDate)
	if err != nil {
		logger.Log.WithField("start_date", filter.StartDate).Warn("unparseable filter start date, filter ignored")
		return time.Time{}, time.Time{}, false
	}
	end, err := parseContextDate(filter.EndDate)
	if err != nil {
		logger.Log.WithField("end_date", filter.EndDate).Warn("unparseable filter end date, filter ignored")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func filterReports(reports []models.Report, start, end time.Time) []models.Report {
	kept := make([]models.Report, 0, len(reports))
	for _, report := range reports {
		date, err := parseContextDate(report.Date)
		if err != nil {
			logger.Log.WithFields(map[string]interface{}{
				"report_id": report.ID,
				"date":      report.Date,
			}).Warn("report excluded from filtered context, unparseable date")
			continue
		}
		if date.Before(start) || date.After(end) {
			continue
		}
		kept = append(kept, report)
	}
	return kept
}

func parseContextDate(value string) (time.Time, error) {
	var err error
	for _, layout := range contextDateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func fallback(value, marker string) string {
	if strings.TrimSpace(value) == "" {
		return marker
	}
	return value
}
