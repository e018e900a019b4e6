package alerting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/alerting"
	"github.com/storefront/backend/internal/domain/shared"
)

// ============================================================================
// Request DTOs
// ============================================================================

// SaveAlertRuleRequest creates or updates an alert rule
type SaveAlertRuleRequest struct {
	Name         string           `json:"name" binding:"required,max=100"`
	EventType    string           `json:"event_type" binding:"required,max=50"`
	MinTotal     *decimal.Decimal `json:"min_total"`
	TemplateCode string           `json:"template_code" binding:"required,max=50"`
	Recipients   string           `json:"recipients" binding:"required,max=500"`
	IsActive     *bool            `json:"is_active"`
}

// SaveTemplateRequest creates or updates a notification template
type SaveTemplateRequest struct {
	Code     string `json:"code" binding:"required,max=50"`
	Name     string `json:"name" binding:"required,max=100"`
	Subject  string `json:"subject" binding:"required,max=200"`
	Body     string `json:"body" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

// ListFilter represents list filter parameters
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

func (f ListFilter) toFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.Search = f.Search
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	return filter
}

// ============================================================================
// Response DTOs
// ============================================================================

// AlertRuleResponse represents an alert rule in API responses
type AlertRuleResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	EventType    string          `json:"event_type"`
	MinTotal     decimal.Decimal `json:"min_total"`
	TemplateCode string          `json:"template_code"`
	Recipients   []string        `json:"recipients"`
	IsActive     bool            `json:"is_active"`
	LastFiredAt  *time.Time      `json:"last_fired_at,omitempty"`
	FireCount    int64           `json:"fire_count"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TemplateResponse represents a notification template in API responses
type TemplateResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Subject      string    `json:"subject"`
	Body         string    `json:"body"`
	Placeholders []string  `json:"placeholders"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TemplatePreviewResponse is a template rendered with placeholder names
// as sample values
type TemplatePreviewResponse struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ============================================================================
// Mappers
// ============================================================================

func toAlertRuleResponse(r *alerting.AlertRule) *AlertRuleResponse {
	return &AlertRuleResponse{
		ID:           r.ID,
		Name:         r.Name,
		EventType:    r.EventType,
		MinTotal:     r.MinTotal,
		TemplateCode: r.TemplateCode,
		Recipients:   r.RecipientList(),
		IsActive:     r.IsActive,
		LastFiredAt:  r.LastFiredAt,
		FireCount:    r.FireCount,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toTemplateResponse(t *alerting.NotificationTemplate) *TemplateResponse {
	return &TemplateResponse{
		ID:           t.ID,
		Code:         t.Code,
		Name:         t.Name,
		Subject:      t.Subject,
		Body:         t.Body,
		Placeholders: t.Placeholders(),
		IsActive:     t.IsActive,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
