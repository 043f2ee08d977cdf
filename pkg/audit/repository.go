package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Radpid/radGPT/pkg/common/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entry is one persisted audit record for a chat event.
type Entry struct {
	ID         int64                  `json:"id"`
	EventID    string                 `json:"event_id"`
	EventType  string                 `json:"event_type"`
	Source     string                 `json:"source"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
	CreatedAt  time.Time              `json:"created_at"`
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type auditLogModel struct {
	ID         int64          `gorm:"primaryKey;autoIncrement;column:id"`
	EventID    string         `gorm:"column:event_id;uniqueIndex"`
	EventType  string         `gorm:"column:event_type;index"`
	Source     string         `gorm:"column:source"`
	Payload    datatypes.JSON `gorm:"column:payload"`
	OccurredAt time.Time      `gorm:"column:occurred_at"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
}

func (auditLogModel) TableName() string { return "chat_audit_logs" }

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&auditLogModel{})
}

// Record persists one audit event. Replayed events with a known ID are
// ignored so the consumer can safely re-deliver.
func (r *Repository) Record(ctx context.Context, event models.Event) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&auditLogModel{}).Where("event_id = ?", event.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	row := &auditLogModel{
		EventID:    event.ID,
		EventType:  event.Type,
		Source:     event.Source,
		OccurredAt: event.Timestamp,
		CreatedAt:  time.Now().UTC(),
	}
	if event.Data != nil {
		if data, err := json.Marshal(event.Data); err == nil {
			row.Payload = datatypes.JSON(data)
		}
	}
	return r.db.WithContext(ctx).Create(row).Error
}

// List returns the most recent audit entries.
func (r *Repository) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var rows []auditLogModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(rows))
	for i := range rows {
		entry := Entry{
			ID:         rows[i].ID,
			EventID:    rows[i].EventID,
			EventType:  rows[i].EventType,
			Source:     rows[i].Source,
			OccurredAt: rows[i].OccurredAt,
			CreatedAt:  rows[i].CreatedAt,
		}
		if len(rows[i].Payload) > 0 {
			var payload map[string]interface{}
			_ = json.Unmarshal(rows[i].Payload, &payload)
			entry.Payload = payload
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
