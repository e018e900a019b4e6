package alerting

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/storefront/backend/internal/domain/alerting"
	"github.com/storefront/backend/internal/domain/shared"
)

// MockAlertRuleRepository is a mock implementation of alerting.AlertRuleRepository
type MockAlertRuleRepository struct {
	mock.Mock
}

func (m *MockAlertRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*alerting.AlertRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*alerting.AlertRule), args.Error(1)
}

func (m *MockAlertRuleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*alerting.AlertRule, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*alerting.AlertRule), args.Get(1).(int64), args.Error(2)
}

func (m *MockAlertRuleRepository) FindActiveByEventType(ctx context.Context, eventType string) ([]*alerting.AlertRule, error) {
	args := m.Called(ctx, eventType)
	return args.Get(0).([]*alerting.AlertRule), args.Error(1)
}

func (m *MockAlertRuleRepository) Save(ctx context.Context, rule *alerting.AlertRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockAlertRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTemplateRepository is a mock implementation of alerting.TemplateRepository
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*alerting.NotificationTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*alerting.NotificationTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindByCode(ctx context.Context, code string) (*alerting.NotificationTemplate, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*alerting.NotificationTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*alerting.NotificationTemplate, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*alerting.NotificationTemplate), args.Get(1).(int64), args.Error(2)
}

func (m *MockTemplateRepository) Save(ctx context.Context, tpl *alerting.NotificationTemplate) error {
	args := m.Called(ctx, tpl)
	return args.Error(0)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTemplateRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(bool), args.Error(1)
}
