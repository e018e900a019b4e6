package alerting

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// Known event types alert rules can subscribe to.
const (
	EventOrderPlaced     = "order.placed"
	EventOrderCancelled  = "order.cancelled"
	EventCustomerCreated = "customer.created"
	EventUserRegistered  = "user.registered"
)

var knownEventTypes = map[string]bool{
	EventOrderPlaced:     true,
	EventOrderCancelled:  true,
	EventCustomerCreated: true,
	EventUserRegistered:  true,
}

// IsKnownEventType checks whether an event type can be alerted on.
func IsKnownEventType(eventType string) bool {
	return knownEventTypes[eventType]
}

// AlertRule decides which published domain events should produce a
// notification. A rule matches when its event type equals the event's
// type and, for order events, the order total meets the threshold.
type AlertRule struct {
	shared.BaseAggregateRoot
	Name         string          `gorm:"size:100;not null" json:"name"`
	EventType    string          `gorm:"size:50;not null;index" json:"event_type"`
	MinTotal     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"min_total"`
	TemplateCode string          `gorm:"size:50;not null" json:"template_code"`
	Recipients   string          `gorm:"size:500;not null" json:"recipients"`
	IsActive     bool            `gorm:"not null;default:true" json:"is_active"`
	LastFiredAt  *time.Time      `json:"last_fired_at,omitempty"`
	FireCount    int64           `gorm:"not null;default:0" json:"fire_count"`
}

// TableName returns the table name for GORM
func (AlertRule) TableName() string {
	return "alert_rules"
}

// NewAlertRule creates an active alert rule. Recipients is a
// comma-separated list of email addresses.
func NewAlertRule(name, eventType, templateCode, recipients string) (*AlertRule, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_RULE_NAME", "Alert rule name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_RULE_NAME", "Alert rule name cannot exceed 100 characters")
	}
	if !IsKnownEventType(eventType) {
		return nil, shared.NewDomainError("INVALID_EVENT_TYPE", "Unknown event type for alert rule")
	}
	if templateCode == "" {
		return nil, shared.NewDomainError("INVALID_TEMPLATE", "Alert rule requires a template code")
	}
	if err := validateRecipients(recipients); err != nil {
		return nil, err
	}

	rule := &AlertRule{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		EventType:         eventType,
		MinTotal:          decimal.Zero,
		TemplateCode:      templateCode,
		Recipients:        recipients,
		IsActive:          true,
	}

	rule.AddDomainEvent(NewAlertRuleCreatedEvent(rule))

	return rule, nil
}

func validateRecipients(recipients string) error {
	if strings.TrimSpace(recipients) == "" {
		return shared.NewDomainError("INVALID_RECIPIENTS", "Alert rule requires at least one recipient")
	}
	for _, r := range strings.Split(recipients, ",") {
		r = strings.TrimSpace(r)
		if r == "" || !strings.Contains(r, "@") {
			return shared.NewDomainError("INVALID_RECIPIENTS", "Recipients must be comma-separated email addresses")
		}
	}
	return nil
}

// RecipientList splits the stored recipients string into addresses.
func (r *AlertRule) RecipientList() []string {
	parts := strings.Split(r.Recipients, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Update changes the rule's name, event type, template and recipients.
func (r *AlertRule) Update(name, eventType, templateCode, recipients string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_RULE_NAME", "Alert rule name cannot be empty")
	}
	if !IsKnownEventType(eventType) {
		return shared.NewDomainError("INVALID_EVENT_TYPE", "Unknown event type for alert rule")
	}
	if templateCode == "" {
		return shared.NewDomainError("INVALID_TEMPLATE", "Alert rule requires a template code")
	}
	if err := validateRecipients(recipients); err != nil {
		return err
	}

	r.Name = name
	r.EventType = eventType
	r.TemplateCode = templateCode
	r.Recipients = recipients
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewAlertRuleUpdatedEvent(r))

	return nil
}

// SetMinTotal sets the order-total threshold. Zero means no threshold.
func (r *AlertRule) SetMinTotal(minTotal decimal.Decimal) error {
	if minTotal.IsNegative() {
		return shared.NewDomainError("INVALID_THRESHOLD", "Threshold cannot be negative")
	}
	r.MinTotal = minTotal
	r.UpdatedAt = time.Now()
	return nil
}

// Activate enables the rule.
func (r *AlertRule) Activate() {
	if r.IsActive {
		return
	}
	r.IsActive = true
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Deactivate disables the rule without deleting it.
func (r *AlertRule) Deactivate() {
	if !r.IsActive {
		return
	}
	r.IsActive = false
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Matches decides whether the rule should fire for an event. Total is
// only meaningful for order events; other events pass a zero total.
func (r *AlertRule) Matches(eventType string, total decimal.Decimal) bool {
	if !r.IsActive || r.EventType != eventType {
		return false
	}
	if r.MinTotal.IsPositive() && total.LessThan(r.MinTotal) {
		return false
	}
	return true
}

// RecordFired bumps the fire counter after a notification is sent.
func (r *AlertRule) RecordFired() {
	now := time.Now()
	r.LastFiredAt = &now
	r.FireCount++
	r.UpdatedAt = now
}

// AlertRuleRepository defines the persistence contract for alert rules.
type AlertRuleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AlertRule, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*AlertRule, int64, error)
	FindActiveByEventType(ctx context.Context, eventType string) ([]*AlertRule, error)
	Save(ctx context.Context, rule *AlertRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}
