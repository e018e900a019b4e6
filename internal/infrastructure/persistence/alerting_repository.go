package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/alerting"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormAlertRuleRepository implements alerting.AlertRuleRepository using GORM
type GormAlertRuleRepository struct {
	db *gorm.DB
}

// NewGormAlertRuleRepository creates a new GormAlertRuleRepository
func NewGormAlertRuleRepository(db *gorm.DB) *GormAlertRuleRepository {
	return &GormAlertRuleRepository{db: db}
}

// FindByID finds an alert rule by ID
func (r *GormAlertRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*alerting.AlertRule, error) {
	var rule alerting.AlertRule
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

// FindAll returns alert rules matching the filter with the total count
func (r *GormAlertRuleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*alerting.AlertRule, int64, error) {
	base := r.db.WithContext(ctx).Model(&alerting.AlertRule{})
	base = applySearch(base, filter, "name", "event_type")

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rules []*alerting.AlertRule
	query := r.db.WithContext(ctx).Model(&alerting.AlertRule{})
	query = applyFilter(query, filter, "name", "event_type")
	if err := query.Find(&rules).Error; err != nil {
		return nil, 0, err
	}
	return rules, total, nil
}

// FindActiveByEventType returns the active rules listening for an event type
func (r *GormAlertRuleRepository) FindActiveByEventType(ctx context.Context, eventType string) ([]*alerting.AlertRule, error) {
	var rules []*alerting.AlertRule
	if err := r.db.WithContext(ctx).
		Where("event_type = ? AND is_active = ?", eventType, true).
		Order("name ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// Save creates or updates an alert rule
func (r *GormAlertRuleRepository) Save(ctx context.Context, rule *alerting.AlertRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

// Delete deletes an alert rule
func (r *GormAlertRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&alerting.AlertRule{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ alerting.AlertRuleRepository = (*GormAlertRuleRepository)(nil)

// GormTemplateRepository implements alerting.TemplateRepository using GORM
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GormTemplateRepository
func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// FindByID finds a template by ID
func (r *GormTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*alerting.NotificationTemplate, error) {
	var tpl alerting.NotificationTemplate
	if err := r.db.WithContext(ctx).First(&tpl, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tpl, nil
}

// FindByCode finds a template by its code
func (r *GormTemplateRepository) FindByCode(ctx context.Context, code string) (*alerting.NotificationTemplate, error) {
	var tpl alerting.NotificationTemplate
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToLower(strings.TrimSpace(code))).
		First(&tpl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tpl, nil
}

// FindAll returns templates matching the filter with the total count
func (r *GormTemplateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*alerting.NotificationTemplate, int64, error) {
	base := r.db.WithContext(ctx).Model(&alerting.NotificationTemplate{})
	base = applySearch(base, filter, "code", "name", "subject")

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var templates []*alerting.NotificationTemplate
	query := r.db.WithContext(ctx).Model(&alerting.NotificationTemplate{})
	query = applyFilter(query, filter, "code", "name", "subject")
	if err := query.Find(&templates).Error; err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

// Save creates or updates a template
func (r *GormTemplateRepository) Save(ctx context.Context, tpl *alerting.NotificationTemplate) error {
	return r.db.WithContext(ctx).Save(tpl).Error
}

// Delete deletes a template
func (r *GormTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&alerting.NotificationTemplate{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByCode checks if a template with the given code exists
func (r *GormTemplateRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&alerting.NotificationTemplate{}).
		Where("code = ?", strings.ToLower(strings.TrimSpace(code))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ alerting.TemplateRepository = (*GormTemplateRepository)(nil)
