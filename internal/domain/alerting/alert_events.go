package alerting

import (
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate types for alerting events
const (
	AggregateTypeAlertRule            = "AlertRule"
	AggregateTypeNotificationTemplate = "NotificationTemplate"
)

// Alerting event types
const (
	EventTypeAlertRuleCreated = "alerting.rule_created"
	EventTypeAlertRuleUpdated = "alerting.rule_updated"
	EventTypeTemplateCreated  = "alerting.template_created"
	EventTypeTemplateUpdated  = "alerting.template_updated"
)

// AlertRuleCreatedEvent is emitted when an alert rule is created.
// RuleEventType is the event type the rule listens for, not the type
// of this event.
type AlertRuleCreatedEvent struct {
	shared.BaseDomainEvent
	Name          string `json:"name"`
	RuleEventType string `json:"rule_event_type"`
}

// NewAlertRuleCreatedEvent creates a new alert rule created event
func NewAlertRuleCreatedEvent(rule *AlertRule) *AlertRuleCreatedEvent {
	return &AlertRuleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAlertRuleCreated, rule.ID, AggregateTypeAlertRule),
		Name:            rule.Name,
		RuleEventType:   rule.EventType,
	}
}

// AlertRuleUpdatedEvent is emitted when an alert rule is updated
type AlertRuleUpdatedEvent struct {
	shared.BaseDomainEvent
	Name          string `json:"name"`
	RuleEventType string `json:"rule_event_type"`
}

// NewAlertRuleUpdatedEvent creates a new alert rule updated event
func NewAlertRuleUpdatedEvent(rule *AlertRule) *AlertRuleUpdatedEvent {
	return &AlertRuleUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAlertRuleUpdated, rule.ID, AggregateTypeAlertRule),
		Name:            rule.Name,
		RuleEventType:   rule.EventType,
	}
}

// TemplateCreatedEvent is emitted when a notification template is created
type TemplateCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

// NewTemplateCreatedEvent creates a new template created event
func NewTemplateCreatedEvent(tpl *NotificationTemplate) *TemplateCreatedEvent {
	return &TemplateCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTemplateCreated, tpl.ID, AggregateTypeNotificationTemplate),
		Code:            tpl.Code,
	}
}

// TemplateUpdatedEvent is emitted when a notification template is updated
type TemplateUpdatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

// NewTemplateUpdatedEvent creates a new template updated event
func NewTemplateUpdatedEvent(tpl *NotificationTemplate) *TemplateUpdatedEvent {
	return &TemplateUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTemplateUpdated, tpl.ID, AggregateTypeNotificationTemplate),
		Code:            tpl.Code,
	}
}
