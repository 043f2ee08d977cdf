package patients

import (
	"context"
	"errors"
	"time"

	"github.com/Radpid/radGPT/pkg/common/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("patient not found")
	ErrDuplicateID = errors.New("patient with this ID already exists")
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type patientModel struct {
	ID               string             `gorm:"primaryKey;column:id"`
	LastName         string             `gorm:"column:last_name"`
	FirstName        string             `gorm:"column:first_name"`
	BirthDate        string             `gorm:"column:birth_date"`
	PrimaryCondition string             `gorm:"column:primary_condition"`
	CurrentStatus    string             `gorm:"column:current_status"`
	CreatedAt        time.Time          `gorm:"column:created_at"`
	Reports          []reportModel      `gorm:"foreignKey:PatientID"`
	Comorbidities    []comorbidityModel `gorm:"many2many:patient_comorbidity;joinForeignKey:PatientID;joinReferences:ComorbidityID"`
}

func (patientModel) TableName() string { return "patients" }

type reportModel struct {
	ID        string    `gorm:"primaryKey;column:id"`
	PatientID string    `gorm:"column:patient_id;index"`
	Type      string    `gorm:"column:type"`
	Title     string    `gorm:"column:title"`
	Date      string    `gorm:"column:date"`
	Doctor    string    `gorm:"column:doctor"`
	Summary   string    `gorm:"column:summary;type:text"`
	FullText  string    `gorm:"column:full_text;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (reportModel) TableName() string { return "reports" }

type comorbidityModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Name string `gorm:"column:name;uniqueIndex"`
}

func (comorbidityModel) TableName() string { return "comorbidities" }

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&patientModel{}, &reportModel{}, &comorbidityModel{})
}

// Get loads a patient aggregate with reports and comorbidities preloaded.
// Reports keep their stored order, the chat core never re-sorts them.
func (r *Repository) Get(ctx context.Context, patientID string) (models.Patient, error) {
	var row patientModel
	err := r.db.WithContext(ctx).
		Preload("Reports", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Comorbidities").
		First(&row, "id = ?", patientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Patient{}, ErrNotFound
	}
	if err != nil {
		return models.Patient{}, err
	}
	return buildPatient(&row), nil
}

// List returns patients matching an optional search term against first name,
// last name, or identifier, with skip/limit pagination.
func (r *Repository) List(ctx context.Context, search string, skip, limit int) ([]models.Patient, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	query := r.db.WithContext(ctx).
		Preload("Reports", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Comorbidities")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR id ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	var rows []patientModel
	if err := query.Offset(skip).Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	patients := make([]models.Patient, 0, len(rows))
	for i := range rows {
		patients = append(patients, buildPatient(&rows[i]))
	}
	return patients, nil
}

// ListByDepartment returns patients whose primary condition mentions the
// department. An empty department matches everyone.
func (r *Repository) ListByDepartment(ctx context.Context, department string, limit int) ([]models.Patient, error) {
	if limit <= 0 {
		limit = 10
	}
	query := r.db.WithContext(ctx)
	if department != "" {
		query = query.Where("primary_condition ILIKE ?", "%"+department+"%")
	}

	var rows []patientModel
	if err := query.Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	patients := make([]models.Patient, 0, len(rows))
	for i := range rows {
		patients = append(patients, buildPatient(&rows[i]))
	}
	return patients, nil
}

func (r *Repository) Create(ctx context.Context, req models.CreatePatientRequest) (models.Patient, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&patientModel{}).Where("id = ?", req.ID).Count(&count).Error; err != nil {
		return models.Patient{}, err
	}
	if count > 0 {
		return models.Patient{}, ErrDuplicateID
	}

	row := &patientModel{
		ID:               req.ID,
		LastName:         req.LastName,
		FirstName:        req.FirstName,
		BirthDate:        req.BirthDate,
		PrimaryCondition: req.PrimaryCondition,
		CurrentStatus:    req.CurrentStatus,
		CreatedAt:        time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return models.Patient{}, err
	}
	return buildPatient(row), nil
}

func (r *Repository) ListReports(ctx context.Context, patientID string) ([]models.Report, error) {
	var rows []reportModel
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	reports := make([]models.Report, 0, len(rows))
	for i := range rows {
		reports = append(reports, buildReport(&rows[i]))
	}
	return reports, nil
}

func (r *Repository) CreateReport(ctx context.Context, patientID string, req models.CreateReportRequest) (models.Report, error) {
	row := &reportModel{
		ID:        uuid.NewString(),
		PatientID: patientID,
		Type:      req.Type,
		Title:     req.Title,
		Date:      req.Date,
		Doctor:    req.Doctor,
		Summary:   req.Summary,
		FullText:  req.FullText,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return models.Report{}, err
	}
	return buildReport(row), nil
}

// Statistics counts all patients and groups them by the raw primary
// condition text. No normalization happens here, the grouping mirrors the
// stored values exactly.
func (r *Repository) Statistics(ctx context.Context) (models.PatientStatistics, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&patientModel{}).Count(&total).Error; err != nil {
		return models.PatientStatistics{}, err
	}

	var rows []models.ConditionCount
	if err := r.db.WithContext(ctx).Model(&patientModel{}).
		Select("primary_condition AS condition, COUNT(id) AS count").
		Group("primary_condition").
		Scan(&rows).Error; err != nil {
		return models.PatientStatistics{}, err
	}

	return models.PatientStatistics{Total: total, ByCondition: rows}, nil
}

func buildPatient(row *patientModel) models.Patient {
	patient := models.Patient{
		ID:               row.ID,
		LastName:         row.LastName,
		FirstName:        row.FirstName,
		BirthDate:        row.BirthDate,
		PrimaryCondition: row.PrimaryCondition,
		CurrentStatus:    row.CurrentStatus,
		CreatedAt:        row.CreatedAt,
		Reports:          make([]models.Report, 0, len(row.Reports)),
		Comorbidities:    make([]models.Comorbidity, 0, len(row.Comorbidities)),
	}
	for i := range row.Reports {
		patient.Reports = append(patient.Reports, buildReport(&row.Reports[i]))
	}
	for _, comorbidity := range row.Comorbidities {
		patient.Comorbidities = append(patient.Comorbidities, models.Comorbidity{
			ID:   comorbidity.ID,
			Name: comorbidity.Name,
		})
	}
	return patient
}

func buildReport(row *reportModel) models.Report {
	return models.Report{
		ID:        row.ID,
		PatientID: row.PatientID,
		Type:      row.Type,
		Title:     row.Title,
		Date:      row.Date,
		Doctor:    row.Doctor,
		Summary:   row.Summary,
		FullText:  row.FullText,
		CreatedAt: row.CreatedAt,
	}
}
