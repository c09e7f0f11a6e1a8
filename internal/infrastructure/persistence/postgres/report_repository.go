package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
)

// ReportRepository implementa repositories.ReportRepository
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository cria um novo ReportRepository
func NewReportRepository(db *gorm.DB) repositories.ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *entities.Report) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	model := toReportModel(report)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	report.CreatedAt = fromUnix(model.CreatedAt)
	report.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*entities.Report, error) {
	var model ReportModel
	if err := dbFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toReportEntity(&model), nil
}

func (r *ReportRepository) Update(ctx context.Context, report *entities.Report) error {
	model := toReportModel(report)
	if err := dbFromContext(ctx, r.db).Save(model).Error; err != nil {
		return err
	}
	report.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *ReportRepository) List(ctx context.Context, filters repositories.ReportFilters) ([]*entities.Report, int64, error) {
	var models []*ReportModel

	query := dbFromContext(ctx, r.db).Model(&ReportModel{})
	if filters.Status != nil {
		query = query.Where("status = ?", string(*filters.Status))
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(query, filters.Pagination).Order("created_at DESC, id ASC").Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*entities.Report, len(models))
	for i, m := range models {
		out[i] = toReportEntity(m)
	}
	return out, total, nil
}

func (r *ReportRepository) HasPending(ctx context.Context, reporterID string, target entities.ReportTarget, targetID string) (bool, error) {
	var total int64
	err := dbFromContext(ctx, r.db).Model(&ReportModel{}).
		Where("reporter_id = ? AND target_type = ? AND target_id = ? AND status = ?",
			reporterID, string(target), targetID, string(entities.ReportPending)).
		Count(&total).Error
	return total > 0, err
}

func (r *ReportRepository) CountByStatus(ctx context.Context, status entities.ReportStatus) (int64, error) {
	var total int64
	err := dbFromContext(ctx, r.db).Model(&ReportModel{}).Where("status = ?", string(status)).Count(&total).Error
	return total, err
}

func toReportModel(r *entities.Report) *ReportModel {
	return &ReportModel{
		ID:         r.ID,
		ReporterID: r.ReporterID,
		TargetType: string(r.TargetType),
		TargetID:   r.TargetID,
		Reason:     string(r.Reason),
		Details:    r.Details,
		Status:     string(r.Status),
		Resolution: r.Resolution,
		ResolvedBy: r.ResolvedBy,
		ResolvedAt: toUnixPtr(r.ResolvedAt),
		CreatedAt:  toUnix(r.CreatedAt),
		UpdatedAt:  toUnix(r.UpdatedAt),
	}
}

func toReportEntity(m *ReportModel) *entities.Report {
	return &entities.Report{
		ID:         m.ID,
		ReporterID: m.ReporterID,
		TargetType: entities.ReportTarget(m.TargetType),
		TargetID:   m.TargetID,
		Reason:     entities.ReportReason(m.Reason),
		Details:    m.Details,
		Status:     entities.ReportStatus(m.Status),
		Resolution: m.Resolution,
		ResolvedBy: m.ResolvedBy,
		ResolvedAt: fromUnixPtr(m.ResolvedAt),
		CreatedAt:  fromUnix(m.CreatedAt),
		UpdatedAt:  fromUnix(m.UpdatedAt),
	}
}
