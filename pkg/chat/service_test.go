package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Radpid/radGPT/pkg/common/models"
	"github.com/Radpid/radGPT/pkg/patients"
)

type fakePatients struct {
	byID  map[string]models.Patient
	stats models.PatientStatistics
}

func (f *fakePatients) Get(ctx context.Context, patientID string) (models.Patient, error) {
	patient, ok := f.byID[patientID]
	if !ok {
		return models.Patient{}, patients.ErrNotFound
	}
	return patient, nil
}

func (f *fakePatients) ListByDepartment(ctx context.Context, department string, limit int) ([]models.Patient, error) {
	listed := make([]models.Patient, 0, len(f.byID))
	for _, patient := range f.byID {
		if department == "" || patient.PrimaryCondition == department {
			listed = append(listed, patient)
		}
	}
	return listed, nil
}

func (f *fakePatients) Statistics(ctx context.Context) (models.PatientStatistics, error) {
	return f.stats, nil
}

type fakeMessages struct {
	nextID int64
	rows   []models.ChatMessage
}

func (f *fakeMessages) Append(ctx context.Context, patientID, sender, message string) (models.ChatMessage, error) {
	f.nextID++
	row := models.ChatMessage{
		ID:        f.nextID,
		PatientID: patientID,
		Sender:    sender,
		Message:   message,
		CreatedAt: time.Now(),
	}
	f.rows = append(f.rows, row)
	return row, nil
}

func (f *fakeMessages) History(ctx context.Context, patientID string) ([]models.ChatMessage, error) {
	kept := make([]models.ChatMessage, 0, len(f.rows))
	for _, row := range f.rows {
		if row.PatientID == patientID {
			kept = append(kept, row)
		}
	}
	return kept, nil
}

func (f *fakeMessages) DeleteHistory(ctx context.Context, patientID string) (int64, error) {
	kept := f.rows[:0]
	var deleted int64
	for _, row := range f.rows {
		if row.PatientID == patientID {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	f.rows = kept
	return deleted, nil
}

type recordedEvent struct {
	eventType string
	data      map[string]interface{}
}

type fakeEvents struct {
	published []recordedEvent
	err       error
}

func (f *fakeEvents) PublishEvent(ctx context.Context, eventType string, source string, data map[string]interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, recordedEvent{eventType: eventType, data: data})
	return nil
}

func newTestService(source *fakePatients, store *fakeMessages, events EventPublisher) *Service {
	classifier := NewClassifier(DefaultRules())
	dispatcher := NewDispatcher(&fakeLLM{response: "Alles in Ordnung."})
	return NewService(source, store, classifier, dispatcher, events)
}

func TestPatientChatAppendsBothTurns(t *testing.T) {
	source := &fakePatients{byID: map[string]models.Patient{"123456": testPatient()}}
	store := &fakeMessages{}
	events := &fakeEvents{}
	service := newTestService(source, store, events)

	resp, err := service.PatientChat(context.Background(), models.ChatRequest{
		Message:   "Wie läuft die Therapie?",
		PatientID: "123456",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Response != "Alles in Ordnung." || resp.Degraded {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if len(store.rows) != 2 {
		t.Fatalf("expected 2 stored messages, got %d", len(store.rows))
	}
	if store.rows[0].Sender != models.SenderUser || store.rows[1].Sender != models.SenderAI {
		t.Fatalf("unexpected senders: %s, %s", store.rows[0].Sender, store.rows[1].Sender)
	}
	if resp.MessageID != store.rows[1].ID {
		t.Fatalf("response must carry the AI message id, got %d", resp.MessageID)
	}

	if len(events.published) != 1 || events.published[0].eventType != "chat_patient" {
		t.Fatalf("unexpected events: %+v", events.published)
	}
}

func TestPatientChatEmptyMessage(t *testing.T) {
	service := newTestService(&fakePatients{}, &fakeMessages{}, nil)

	_, err := service.PatientChat(context.Background(), models.ChatRequest{Message: "   ", PatientID: "123456"})
	if !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestPatientChatUnknownPatient(t *testing.T) {
	store := &fakeMessages{}
	service := newTestService(&fakePatients{byID: map[string]models.Patient{}}, store, nil)

	_, err := service.PatientChat(context.Background(), models.ChatRequest{Message: "Frage", PatientID: "000000"})
	if !errors.Is(err, patients.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(store.rows) != 0 {
		t.Fatal("nothing may be persisted for an unknown patient")
	}
}

func TestGeneralChatListRoute(t *testing.T) {
	source := &fakePatients{byID: map[string]models.Patient{"123456": testPatient()}}
	service := newTestService(source, &fakeMessages{}, nil)

	resp, err := service.GeneralChat(context.Background(), "Zeige mir alle Patienten der Onkologie")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.Response, "**Patientenliste**") {
		t.Fatalf("expected formatted patient list:\n%s", resp.Response)
	}
	if !strings.Contains(resp.Response, "Maria Schmitt") {
		t.Fatalf("expected patient entry:\n%s", resp.Response)
	}
}

func TestGeneralChatStatisticsRoute(t *testing.T) {
	source := &fakePatients{stats: models.PatientStatistics{
		Total:       3,
		ByCondition: []models.ConditionCount{{Condition: "Onkologie", Count: 2}},
	}}
	service := newTestService(source, &fakeMessages{}, nil)

	resp, err := service.GeneralChat(context.Background(), "Wie ist die Anzahl unserer Fälle?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.Response, "**Gesamt:** 3 Patienten") {
		t.Fatalf("expected statistics answer:\n%s", resp.Response)
	}
}

func TestGeneralChatGeneralRoute(t *testing.T) {
	service := newTestService(&fakePatients{}, &fakeMessages{}, nil)

	resp, err := service.GeneralChat(context.Background(), "Was ist eine Pneumonie?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Response != "Alles in Ordnung." {
		t.Fatalf("expected generated answer, got %q", resp.Response)
	}
	if resp.MessageID == 0 {
		t.Fatal("general chat must carry a synthetic message id")
	}
}

func TestClearHistory(t *testing.T) {
	source := &fakePatients{byID: map[string]models.Patient{"123456": testPatient()}}
	store := &fakeMessages{}
	events := &fakeEvents{}
	service := newTestService(source, store, events)

	for i := 0; i < 5; i++ {
		if _, err := store.Append(context.Background(), "123456", models.SenderUser, "Frage"); err != nil {
			t.Fatalf("failed to seed history: %v", err)
		}
	}

	deleted, err := service.ClearHistory(context.Background(), "123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 5 {
		t.Fatalf("expected 5 deleted, got %d", deleted)
	}

	history, err := service.History(context.Background(), "123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %d rows", len(history))
	}

	if len(events.published) != 1 || events.published[0].eventType != "history_cleared" {
		t.Fatalf("unexpected events: %+v", events.published)
	}
}

func TestClearHistoryUnknownPatient(t *testing.T) {
	service := newTestService(&fakePatients{byID: map[string]models.Patient{}}, &fakeMessages{}, nil)

	if _, err := service.ClearHistory(context.Background(), "000000"); !errors.Is(err, patients.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPatientChatPublishFailureIsNotFatal(t *testing.T) {
	source := &fakePatients{byID: map[string]models.Patient{"123456": testPatient()}}
	service := newTestService(source, &fakeMessages{}, &fakeEvents{err: errors.New("broker down")})

	if _, err := service.PatientChat(context.Background(), models.ChatRequest{Message: "Frage", PatientID: "123456"}); err != nil {
		t.Fatalf("publish failure must not fail the turn: %v", err)
	}
}

func TestDetectDepartment(t *testing.T) {
	if got := DetectDepartment("Patienten der Onkologie heute"); got != "Onkologie" {
		t.Fatalf("expected Onkologie, got %q", got)
	}
	if got := DetectDepartment("Alle Patienten bitte"); got != "" {
		t.Fatalf("expected empty department, got %q", got)
	}
}
