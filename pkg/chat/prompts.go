package chat

import "fmt"

// prompts.go holds the German prompt templates handed to the generation
// capability. Keeping them in one file makes the wording easy to tweak
// without touching the dispatch logic.

const patientAnalysisTemplate = `Du bist ein medizinischer Assistent. Analysiere die Patientendaten und beantworte die Frage direkt.

PATIENTENDATEN:
%s

FRAGE: %s

ANTWORT-REGELN:
- Direkte, präzise Antworten ohne Einleitung
- Verwende nummerierte Listen (1., 2., 3.) oder einfache Absätze
- Jede Information auf einer neuen Zeile
- Formatierung: **Fett** für wichtige Begriffe, *kursiv* für Details
- Bei fehlenden Daten: "Keine Angaben verfügbar"
- Antwort in deutscher Sprache

BEISPIEL-FORMAT:
1. **Befund:** Details der Untersuchung
2. **Diagnose:** Medizinische Bewertung
3. **Empfehlung:** Weitere Schritte`

const generalQueryTemplate = `Du bist ein medizinischer Assistent. Beantworte die folgende allgemeine medizinische Frage präzise und professionell.

FRAGE: %s

ANTWORTSTIL:
- Verwende Markdown für Formatierung: **Fett**, *Kursiv*
- Kurze, präzise Antworten
- Verwende Stichpunkte für strukturierte Informationen
- Medizinische Fachbegriffe korrekt verwenden`

const reportAnalysisTemplate = `Analysiere die folgenden medizinischen Berichte und erstelle eine strukturierte Gesamtanalyse:

%s

Bitte erstelle eine strukturierte Analyse auf Deutsch mit folgenden Abschnitten:

**Allgemeiner Zustand des Patienten:**

**Zeitliche Entwicklung:**

**Wichtige Befunde:**

**Empfehlungen:**

Verwende medizinische Fachbegriffe korrekt und fasse die wichtigsten Punkte prägnant zusammen.`

func patientAnalysisPrompt(context, question string) string {
	return fmt.Sprintf(patientAnalysisTemplate, context, question)
}

func generalQueryPrompt(question string) string {
	return fmt.Sprintf(generalQueryTemplate, question)
}

func reportAnalysisPrompt(reportsText string) string {
	return fmt.Sprintf(reportAnalysisTemplate, reportsText)
}
