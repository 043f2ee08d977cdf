package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Radpid/radGPT/pkg/common/logger"
	"github.com/Radpid/radGPT/pkg/common/models"
	"github.com/Radpid/radGPT/pkg/observability/metrics"
)

var ErrEmptyMessage = errors.New("message is required")

const patientListLimit = 10

// departments are matched in order against the lowered question to scope a
// patient-list request to one specialty.
var departments = []string{"Chirurgie", "Onkologie", "Kardiologie", "Orthopädie"}

// PatientSource is the read side of the patient records this service
// consumes. Get returns an error satisfying errors.Is(err,
// patients.ErrNotFound) for unknown identifiers.
type PatientSource interface {
	Get(ctx context.Context, patientID string) (models.Patient, error)
	ListByDepartment(ctx context.Context, department string, limit int) ([]models.Patient, error)
	Statistics(ctx context.Context) (models.PatientStatistics, error)
}

// MessageStore is the append-only chat log.
type MessageStore interface {
	Append(ctx context.Context, patientID, sender, message string) (models.ChatMessage, error)
	History(ctx context.Context, patientID string) ([]models.ChatMessage, error)
	DeleteHistory(ctx context.Context, patientID string) (int64, error)
}

// EventPublisher mirrors the kafka producer. Publishing is best effort, a
// failed publish never fails the chat turn.
type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType string, source string, data map[string]interface{}) error
}

type Service struct {
	patients   PatientSource
	messages   MessageStore
	classifier *Classifier
	dispatcher *Dispatcher
	events     EventPublisher
}

func NewService(patients PatientSource, messages MessageStore, classifier *Classifier, dispatcher *Dispatcher, events EventPublisher) *Service {
	return &Service{
		patients:   patients,
		messages:   messages,
		classifier: classifier,
		dispatcher: dispatcher,
		events:     events,
	}
}

// PatientChat answers a patient-scoped question. Both the question and the
// generated answer are appended to the patient's chat log; append failures
// are fatal to the request while generation failures degrade to text.
func (s *Service) PatientChat(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return models.ChatResponse{}, ErrEmptyMessage
	}

	patient, err := s.patients.Get(ctx, req.PatientID)
	if err != nil {
		return models.ChatResponse{}, err
	}

	if _, err := s.messages.Append(ctx, req.PatientID, models.SenderUser, req.Message); err != nil {
		return models.ChatResponse{}, err
	}

	patientContext := BuildPatientContext(patient, req.DateFilter)
	answer := s.dispatcher.PatientAnalysis(ctx, patientContext, req.Message)

	aiMessage, err := s.messages.Append(ctx, req.PatientID, models.SenderAI, answer.Text)
	if err != nil {
		return models.ChatResponse{}, err
	}

	metrics.IncChatRequests()
	s.publish(ctx, "chat_patient", map[string]interface{}{
		"patient_id": req.PatientID,
		"message_id": aiMessage.ID,
		"degraded":   answer.Degraded,
	})

	return models.ChatResponse{
		Response:  answer.Text,
		MessageID: aiMessage.ID,
		Degraded:  answer.Degraded,
	}, nil
}

// GeneralChat answers a patient-free question. Nothing is persisted; the
// returned message identifier is synthetic.
func (s *Service) GeneralChat(ctx context.Context, message string) (models.ChatResponse, error) {
	if strings.TrimSpace(message) == "" {
		return models.ChatResponse{}, ErrEmptyMessage
	}

	var answer Answer
	category := s.classifier.Classify(message)
	switch category {
	case CategoryPatientList:
		listed, err := s.patients.ListByDepartment(ctx, DetectDepartment(message), patientListLimit)
		if err != nil {
			return models.ChatResponse{}, err
		}
		answer = Answer{Text: FormatPatientList(listed)}
	case CategoryStatistics:
		stats, err := s.patients.Statistics(ctx)
		if err != nil {
			return models.ChatResponse{}, err
		}
		answer = Answer{Text: FormatStatistics(stats)}
	default:
		answer = s.dispatcher.GeneralQuery(ctx, message)
	}

	metrics.IncChatRequests()
	s.publish(ctx, "chat_general", map[string]interface{}{
		"category": string(category),
		"degraded": answer.Degraded,
	})

	return models.ChatResponse{
		Response:  answer.Text,
		MessageID: time.Now().UnixMilli(),
		Degraded:  answer.Degraded,
	}, nil
}

// AnalyzeReports runs the structured multi-report analysis over all of a
// patient's reports.
func (s *Service) AnalyzeReports(ctx context.Context, patientID string) (Answer, error) {
	patient, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return Answer{}, err
	}
	return s.dispatcher.ReportAnalysis(ctx, patient.Reports), nil
}

func (s *Service) History(ctx context.Context, patientID string) ([]models.ChatMessage, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.messages.History(ctx, patientID)
}

func (s *Service) ClearHistory(ctx context.Context, patientID string) (int64, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return 0, err
	}
	deleted, err := s.messages.DeleteHistory(ctx, patientID)
	if err != nil {
		return 0, err
	}
	metrics.AddHistoryDeleted(deleted)
	s.publish(ctx, "history_cleared", map[string]interface{}{
		"patient_id": patientID,
		"deleted":    deleted,
	})
	return deleted, nil
}

// DetectDepartment scopes a list request to the first specialty the
// question mentions, or to no specialty at all.
func DetectDepartment(question string) string {
	lowered := strings.ToLower(question)
	for _, department := range departments {
		if strings.Contains(lowered, strings.ToLower(department)) {
			return department
		}
	}
	return ""
}

func (s *Service) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEvent(ctx, eventType, "chat-service", data); err != nil {
		logger.Log.WithError(err).WithField("event_type", eventType).Warn("failed to publish chat event")
	}
}
