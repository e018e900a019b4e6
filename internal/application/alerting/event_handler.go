package alerting

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/alerting"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shopping"
)

// AlertEventHandler evaluates published domain events against the
// active alert rules and renders a notification through the rule's
// template. Notifications are written to the log; no external mailer
// is wired.
type AlertEventHandler struct {
	ruleRepo     alerting.AlertRuleRepository
	templateRepo alerting.TemplateRepository
	logger       *zap.Logger
}

var _ shared.EventHandler = (*AlertEventHandler)(nil)

// NewAlertEventHandler creates a new AlertEventHandler
func NewAlertEventHandler(
	ruleRepo alerting.AlertRuleRepository,
	templateRepo alerting.TemplateRepository,
	logger *zap.Logger,
) *AlertEventHandler {
	return &AlertEventHandler{
		ruleRepo:     ruleRepo,
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *AlertEventHandler) EventTypes() []string {
	return []string{
		alerting.EventOrderPlaced,
		alerting.EventOrderCancelled,
		alerting.EventCustomerCreated,
		alerting.EventUserRegistered,
	}
}

// Handle matches the event against active rules and fires a
// notification per matching rule
func (h *AlertEventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	rules, err := h.ruleRepo.FindActiveByEventType(ctx, event.EventType())
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		return nil
	}

	data, total := extractEventData(event)

	for _, rule := range rules {
		if !rule.Matches(event.EventType(), total) {
			continue
		}
		if err := h.fire(ctx, rule, event, data); err != nil {
			h.logger.Error("alert rule failed to fire",
				zap.String("rule", rule.Name),
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	return nil
}

func (h *AlertEventHandler) fire(ctx context.Context, rule *alerting.AlertRule, event shared.DomainEvent, data map[string]string) error {
	tpl, err := h.templateRepo.FindByCode(ctx, rule.TemplateCode)
	if err != nil {
		return err
	}
	if !tpl.IsActive {
		return nil
	}

	subject, body := tpl.Render(data)

	h.logger.Info("notification",
		zap.String("rule", rule.Name),
		zap.String("event_type", event.EventType()),
		zap.String("recipients", strings.Join(rule.RecipientList(), ",")),
		zap.String("subject", subject),
		zap.String("body", body))

	rule.RecordFired()
	return h.ruleRepo.Save(ctx, rule)
}

// extractEventData flattens the event payload into template data. The
// returned total is decimal zero for events that carry no amount.
func extractEventData(event shared.DomainEvent) (map[string]string, decimal.Decimal) {
	data := map[string]string{
		"event_type":  event.EventType(),
		"occurred_at": event.OccurredAt().Format("2006-01-02 15:04:05"),
	}

	switch e := event.(type) {
	case *shopping.OrderPlacedEvent:
		data["order_number"] = e.OrderNumber
		data["customer_email"] = e.CustomerEmail
		data["item_count"] = strconv.Itoa(e.ItemCount)
		data["currency"] = e.Currency
		data["total"] = e.Total.StringFixed(2)
		return data, e.Total
	case *shopping.OrderCancelledEvent:
		data["order_number"] = e.OrderNumber
		data["reason"] = e.Reason
	case *customer.CustomerCreatedEvent:
		data["customer_email"] = e.Email
	case *identity.UserRegisteredEvent:
		data["email"] = e.Email
		data["is_staff"] = strconv.FormatBool(e.IsStaff)
	}
	return data, decimal.Zero
}
