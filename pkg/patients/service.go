package patients

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Radpid/radGPT/pkg/common/logger"
	"github.com/Radpid/radGPT/pkg/common/models"
	"github.com/redis/go-redis/v9"
)

const statsCacheKey = "radgpt:patients:statistics"

type Service struct {
	repo     *Repository
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewService wires the patient repository with an optional Redis cache for
// the statistics aggregation. A nil cache disables caching.
func NewService(repo *Repository, cache *redis.Client, cacheTTL time.Duration) *Service {
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

func (s *Service) Get(ctx context.Context, patientID string) (models.Patient, error) {
	return s.repo.Get(ctx, patientID)
}

func (s *Service) List(ctx context.Context, search string, skip, limit int) ([]models.Patient, error) {
	return s.repo.List(ctx, search, skip, limit)
}

func (s *Service) ListByDepartment(ctx context.Context, department string, limit int) ([]models.Patient, error) {
	return s.repo.ListByDepartment(ctx, department, limit)
}

func (s *Service) Create(ctx context.Context, req models.CreatePatientRequest) (models.Patient, error) {
	patient, err := s.repo.Create(ctx, req)
	if err != nil {
		return models.Patient{}, err
	}
	s.invalidateStatistics(ctx)
	return patient, nil
}

func (s *Service) ListReports(ctx context.Context, patientID string) ([]models.Report, error) {
	if _, err := s.repo.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListReports(ctx, patientID)
}

func (s *Service) CreateReport(ctx context.Context, patientID string, req models.CreateReportRequest) (models.Report, error) {
	if _, err := s.repo.Get(ctx, patientID); err != nil {
		return models.Report{}, err
	}
	return s.repo.CreateReport(ctx, patientID, req)
}

// Statistics serves the aggregation cache-aside: cached copies expire after
// the configured TTL and are dropped eagerly when a patient is created.
func (s *Service) Statistics(ctx context.Context) (models.PatientStatistics, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var stats models.PatientStatistics
			if err := json.Unmarshal(cached, &stats); err == nil {
				return stats, nil
			}
		}
	}

	stats, err := s.repo.Statistics(ctx)
	if err != nil {
		return models.PatientStatistics{}, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, data, s.cacheTTL).Err(); err != nil {
				logger.Log.WithError(err).Warn("failed to cache patient statistics")
			}
		}
	}

	return stats, nil
}

func (s *Service) invalidateStatistics(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statsCacheKey).Err(); err != nil {
		logger.Log.WithError(err).Warn("failed to invalidate statistics cache")
	}
}
