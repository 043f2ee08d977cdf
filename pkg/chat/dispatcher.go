package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/Radpid/radGPT/pkg/common/logger"
	"github.com/Radpid/radGPT/pkg/common/models"
	"github.com/Radpid/radGPT/pkg/llm"
	"github.com/Radpid/radGPT/pkg/observability/metrics"
)

// Answer is the typed result of a generation call. A failed call never
// propagates an error to the caller: the dispatcher substitutes a degraded
// answer carrying the failure reason instead. Callers that care can check
// Degraded, the end user always receives text.
type Answer struct {
	Text     string
	Degraded bool
	Reason   string
}

// Dispatcher assembles the final prompt for each query shape and forwards it
// to the generation capability.
type Dispatcher struct {
	client llm.Client
}

func NewDispatcher(client llm.Client) *Dispatcher {
	return &Dispatcher{client: client}
}

// PatientAnalysis answers a patient-scoped question grounded on the given
// context block.
func (d *Dispatcher) PatientAnalysis(ctx context.Context, patientContext, question string) Answer {
	prompt := patientAnalysisPrompt(patientContext, question)
	return d.generate(ctx, prompt, "Fehler bei der Analyse: %s")
}

// GeneralQuery answers a general medical question with no patient grounding.
func (d *Dispatcher) GeneralQuery(ctx context.Context, question string) Answer {
	prompt := generalQueryPrompt(question)
	return d.generate(ctx, prompt, "**Fehler bei der Verarbeitung**\n\n*%s*")
}

// ReportAnalysis produces a structured overall analysis of several reports.
func (d *Dispatcher) ReportAnalysis(ctx context.Context, reports []models.Report) Answer {
	if len(reports) == 0 {
		return Answer{Text: "Keine Berichte zur Analyse vorhanden."}
	}

	var b strings.Builder
	for _, report := range reports {
		fmt.Fprintf(&b, "Typ: %s\n", report.Type)
		fmt.Fprintf(&b, "Titel: %s\n", report.Title)
		fmt.Fprintf(&b, "Datum: %s\n", report.Date)
		fmt.Fprintf(&b, "Zusammenfassung: %s\n", report.Summary)
		fmt.Fprintf(&b, "Text: %s\n", report.FullText)
		b.WriteString(reportDelimiter + "\n")
	}

	prompt := reportAnalysisPrompt(b.String())
	return d.generate(ctx, prompt, "Fehler bei der Analyse der Berichte: %s")
}

func (d *Dispatcher) generate(ctx context.Context, prompt, degradedFormat string) Answer {
	text, err := d.client.Generate(ctx, prompt)
	if err != nil {
		logger.Log.WithError(err).Warn("generation call failed, returning degraded answer")
		metrics.IncDegradedAnswers()
		return Answer{
			Text:     fmt.Sprintf(degradedFormat, err.Error()),
			Degraded: true,
			Reason:   err.Error(),
		}
	}
	return Answer{Text: text}
}
