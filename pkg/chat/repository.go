package chat

import (
	"context"
	"time"

	"github.com/Radpid/radGPT/pkg/common/models"
	"gorm.io/gorm"
)

// Repository is the append-only chat message store.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type chatMessageModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	PatientID string    `gorm:"column:patient_id;index"`
	Sender    string    `gorm:"column:sender"`
	Message   string    `gorm:"column:message;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (chatMessageModel) TableName() string { return "chat_messages" }

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&chatMessageModel{})
}

func (r *Repository) Append(ctx context.Context, patientID, sender, message string) (models.ChatMessage, error) {
	row := &chatMessageModel{
		PatientID: patientID,
		Sender:    sender,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return models.ChatMessage{}, err
	}
	return buildMessage(row), nil
}

func (r *Repository) History(ctx context.Context, patientID string) ([]models.ChatMessage, error) {
	var rows []chatMessageModel
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	messages := make([]models.ChatMessage, 0, len(rows))
	for i := range rows {
		messages = append(messages, buildMessage(&rows[i]))
	}
	return messages, nil
}

func (r *Repository) DeleteHistory(ctx context.Context, patientID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Delete(&chatMessageModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func buildMessage(row *chatMessageModel) models.ChatMessage {
	return models.ChatMessage{
		ID:        row.ID,
		PatientID: row.PatientID,
		Sender:    row.Sender,
		Message:   row.Message,
		CreatedAt: row.CreatedAt,
	}
}
