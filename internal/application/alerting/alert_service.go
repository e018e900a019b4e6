package alerting

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/alerting"
	"github.com/storefront/backend/internal/domain/shared"
)

// AlertRuleService manages the rules that turn domain events into
// notifications
type AlertRuleService struct {
	ruleRepo     alerting.AlertRuleRepository
	templateRepo alerting.TemplateRepository
}

// NewAlertRuleService creates a new AlertRuleService
func NewAlertRuleService(ruleRepo alerting.AlertRuleRepository, templateRepo alerting.TemplateRepository) *AlertRuleService {
	return &AlertRuleService{
		ruleRepo:     ruleRepo,
		templateRepo: templateRepo,
	}
}

// Create creates an alert rule. The referenced template must exist.
func (s *AlertRuleService) Create(ctx context.Context, req SaveAlertRuleRequest) (*AlertRuleResponse, error) {
	if err := s.checkTemplate(ctx, req.TemplateCode); err != nil {
		return nil, err
	}

	rule, err := alerting.NewAlertRule(req.Name, req.EventType, req.TemplateCode, req.Recipients)
	if err != nil {
		return nil, err
	}
	if req.MinTotal != nil {
		if err := rule.SetMinTotal(*req.MinTotal); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil && !*req.IsActive {
		rule.Deactivate()
	}

	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}
	return toAlertRuleResponse(rule), nil
}

// Update updates an alert rule
func (s *AlertRuleService) Update(ctx context.Context, id uuid.UUID, req SaveAlertRuleRequest) (*AlertRuleResponse, error) {
	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.TemplateCode != rule.TemplateCode {
		if err := s.checkTemplate(ctx, req.TemplateCode); err != nil {
			return nil, err
		}
	}

	if err := rule.Update(req.Name, req.EventType, req.TemplateCode, req.Recipients); err != nil {
		return nil, err
	}
	if req.MinTotal != nil {
		if err := rule.SetMinTotal(*req.MinTotal); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		if *req.IsActive {
			rule.Activate()
		} else {
			rule.Deactivate()
		}
	}

	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}
	return toAlertRuleResponse(rule), nil
}

// Get returns a single alert rule
func (s *AlertRuleService) Get(ctx context.Context, id uuid.UUID) (*AlertRuleResponse, error) {
	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAlertRuleResponse(rule), nil
}

// List returns alert rules matching the filter with a total count
func (s *AlertRuleService) List(ctx context.Context, req ListFilter) ([]*AlertRuleResponse, int64, error) {
	rules, total, err := s.ruleRepo.FindAll(ctx, req.toFilter())
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*AlertRuleResponse, 0, len(rules))
	for _, rule := range rules {
		responses = append(responses, toAlertRuleResponse(rule))
	}
	return responses, total, nil
}

// Delete removes an alert rule
func (s *AlertRuleService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.ruleRepo.Delete(ctx, id)
}

// EventTypes lists the event types rules can subscribe to
func (s *AlertRuleService) EventTypes() []string {
	return []string{
		alerting.EventOrderPlaced,
		alerting.EventOrderCancelled,
		alerting.EventCustomerCreated,
		alerting.EventUserRegistered,
	}
}

func (s *AlertRuleService) checkTemplate(ctx context.Context, code string) error {
	exists, err := s.templateRepo.ExistsByCode(ctx, code)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError("TEMPLATE_NOT_FOUND", "Notification template does not exist: "+code)
	}
	return nil
}
