package models

import (
	"time"

	"github.com/google/uuid"
)

// Patient is the aggregate consumed by the chat core. Reports and
// comorbidities are expected to be preloaded by the repository.
type Patient struct {
	ID               string        `json:"id"`
	LastName         string        `json:"last_name"`
	FirstName        string        `json:"first_name"`
	BirthDate        string        `json:"birth_date"`
	PrimaryCondition string        `json:"primary_condition,omitempty"`
	CurrentStatus    string        `json:"current_status,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	Reports          []Report      `json:"reports"`
	Comorbidities    []Comorbidity `json:"comorbidities"`
}

// Report is immutable once created. Date is stored as the string supplied
// by the reporting system; it is parsed only when a date filter applies.
type Report struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	Type      string    `json:"type"` // Radiologie, Pathologie, Arztbrief, ...
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Doctor    string    `json:"doctor"`
	Summary   string    `json:"summary,omitempty"`
	FullText  string    `json:"full_text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Comorbidity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Sender tags for chat messages.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// ChatMessage is one turn in a patient's chat log. Append only.
type ChatMessage struct {
	ID        int64     `json:"id"`
	PatientID string    `json:"patient_id"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// DateFilter restricts which reports enter a patient context. Both bounds
// are inclusive. Not persisted.
type DateFilter struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type ChatRequest struct {
	Message    string      `json:"message"`
	PatientID  string      `json:"patient_id"`
	DateFilter *DateFilter `json:"date_filter,omitempty"`
}

type GeneralChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	MessageID int64  `json:"message_id"`
	Degraded  bool   `json:"degraded,omitempty"`
}

type ClearHistoryResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deleted_count"`
}

// ConditionCount is one row of the statistics aggregation, grouped by the
// raw primary_condition text. Ordering is whatever the aggregation returns.
type ConditionCount struct {
	Condition string `json:"condition"`
	Count     int64  `json:"count"`
}

type PatientStatistics struct {
	Total       int64            `json:"total"`
	ByCondition []ConditionCount `json:"by_condition"`
}

type CreatePatientRequest struct {
	ID               string `json:"id"`
	LastName         string `json:"last_name"`
	FirstName        string `json:"first_name"`
	BirthDate        string `json:"birth_date"`
	PrimaryCondition string `json:"primary_condition,omitempty"`
	CurrentStatus    string `json:"current_status,omitempty"`
}

type CreateReportRequest struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Doctor   string `json:"doctor"`
	Summary  string `json:"summary,omitempty"`
	FullText string `json:"full_text,omitempty"`
}

// User is an authenticated clinician account.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type AuthResponse struct {
	Token string `json:"access_token"`
	Type  string `json:"token_type"`
	User  User   `json:"user"`
}

// Event is the envelope published to the audit topic for every chat turn.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"` // chat_patient, chat_general, history_cleared
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}
