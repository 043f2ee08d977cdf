package identity

import (
	"context"
	"errors"
	"time"

	"github.com/Radpid/radGPT/pkg/common/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type userModel struct {
	ID           uuid.UUID `gorm:"primaryKey;column:id"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	Name         string    `gorm:"column:name"`
	Role         string    `gorm:"column:role"`
	PasswordHash string    `gorm:"column:password_hash"`
	IsActive     bool      `gorm:"column:is_active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (userModel) TableName() string { return "users" }

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&userModel{})
}

type CreateUserInput struct {
	Email        string
	Name         string
	Role         string
	PasswordHash string
}

func (r *Repository) CreateUser(ctx context.Context, input CreateUserInput) (models.User, error) {
	row := &userModel{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		Role:         input.Role,
		PasswordHash: input.PasswordHash,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return models.User{}, err
	}
	return buildUser(row), nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).First(&row, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return buildUser(&row), nil
}

func (r *Repository) GetUser(ctx context.Context, userID uuid.UUID) (models.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).First(&row, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return buildUser(&row), nil
}

func (r *Repository) GetPasswordHash(ctx context.Context, userID uuid.UUID) (string, error) {
	var row userModel
	if err := r.db.WithContext(ctx).Select("password_hash").First(&row, "id = ?", userID).Error; err != nil {
		return "", err
	}
	return row.PasswordHash, nil
}

func (r *Repository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userModel{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

func buildUser(row *userModel) models.User {
	return models.User{
		ID:        row.ID,
		Email:     row.Email,
		Name:      row.Name,
		Role:      row.Role,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
	}
}
