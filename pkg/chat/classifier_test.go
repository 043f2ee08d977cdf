package chat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Radpid/radGPT/pkg/common/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestClassifierRoutesByKeyword(t *testing.T) {
	classifier := NewClassifier(DefaultRules())

	cases := map[string]Category{
		"Zeige mir die Patientenliste": CategoryPatientList,
		"Wie hoch ist die Anzahl?":     CategoryStatistics,
		"STATISTIK bitte":              CategoryStatistics,
		"Was ist eine Pneumonie?":      CategoryGeneral,
	}
	for question, want := range cases {
		if got := classifier.Classify(question); got != want {
			t.Fatalf("Classify(%q) = %s, want %s", question, got, want)
		}
	}
}

func TestClassifierListBeatsStatistics(t *testing.T) {
	classifier := NewClassifier(DefaultRules())

	// "liste" and "zusammenfassung" both match; the list rule comes first.
	got := classifier.Classify("Liste aller Patienten mit Zusammenfassung")
	if got != CategoryPatientList {
		t.Fatalf("expected PATIENT_LIST, got %s", got)
	}

	// "patienten" is a list keyword, so a counting question mentioning
	// patients still resolves to a list.
	got = classifier.Classify("Wie viele Patienten haben wir? Anzahl")
	if got != CategoryPatientList {
		t.Fatalf("expected PATIENT_LIST, got %s", got)
	}
}

func TestLoadRulesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := []byte(`rules:
  - name: custom
    keywords: ["notaufnahme"]
    category: PATIENT_LIST
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write rules file: %v", err)
	}

	cfg, err := LoadRules(path)
	if err != nil {
		t.Fatalf("failed to load rules: %v", err)
	}
	if len(cfg.Rules) != 1 || cfg.Rules[0].Name != "custom" {
		t.Fatalf("unexpected rules: %+v", cfg.Rules)
	}

	classifier := NewClassifier(cfg)
	if got := classifier.Classify("Wer liegt in der Notaufnahme?"); got != CategoryPatientList {
		t.Fatalf("expected PATIENT_LIST, got %s", got)
	}
}

func TestLoadRulesEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadRules("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Rules) != 2 {
		t.Fatalf("expected 2 default rules, got %d", len(cfg.Rules))
	}
}

func TestLoadRulesRejectsEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("rules: []\n"), 0o600); err != nil {
		t.Fatalf("failed to write rules file: %v", err)
	}
	if _, err := LoadRules(path); err == nil {
		t.Fatal("expected error for empty rule table")
	}
}
