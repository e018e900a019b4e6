package alerting

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

var (
	templateCodeRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	placeholderRegex  = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_.]+)\s*\}\}`)
)

// NotificationTemplate is a reusable subject and body with
// {{placeholder}} slots filled in from event data at render time.
type NotificationTemplate struct {
	shared.BaseAggregateRoot
	Code     string `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Subject  string `gorm:"size:200;not null" json:"subject"`
	Body     string `gorm:"type:text;not null" json:"body"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
}

// TableName returns the table name for GORM
func (NotificationTemplate) TableName() string {
	return "notification_templates"
}

// NewNotificationTemplate creates an active template. Codes are
// lowercase identifiers like order_placed_staff.
func NewNotificationTemplate(code, name, subject, body string) (*NotificationTemplate, error) {
	if !templateCodeRegex.MatchString(code) {
		return nil, shared.NewDomainError("INVALID_TEMPLATE_CODE", "Template code must be lowercase letters, numbers and underscores")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_TEMPLATE_CODE", "Template code cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_TEMPLATE_NAME", "Template name cannot be empty")
	}
	if subject == "" {
		return nil, shared.NewDomainError("INVALID_TEMPLATE_SUBJECT", "Template subject cannot be empty")
	}
	if body == "" {
		return nil, shared.NewDomainError("INVALID_TEMPLATE_BODY", "Template body cannot be empty")
	}

	tpl := &NotificationTemplate{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Subject:           subject,
		Body:              body,
		IsActive:          true,
	}

	tpl.AddDomainEvent(NewTemplateCreatedEvent(tpl))

	return tpl, nil
}

// Update changes the template's name, subject and body. The code is
// immutable because alert rules reference it.
func (t *NotificationTemplate) Update(name, subject, body string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_TEMPLATE_NAME", "Template name cannot be empty")
	}
	if subject == "" {
		return shared.NewDomainError("INVALID_TEMPLATE_SUBJECT", "Template subject cannot be empty")
	}
	if body == "" {
		return shared.NewDomainError("INVALID_TEMPLATE_BODY", "Template body cannot be empty")
	}

	t.Name = name
	t.Subject = subject
	t.Body = body
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTemplateUpdatedEvent(t))

	return nil
}

// Activate enables the template.
func (t *NotificationTemplate) Activate() {
	if t.IsActive {
		return
	}
	t.IsActive = true
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// Deactivate disables the template. Rules referencing a disabled
// template do not fire.
func (t *NotificationTemplate) Deactivate() {
	if !t.IsActive {
		return
	}
	t.IsActive = false
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// Placeholders returns the distinct placeholder names found in the
// subject and body, in order of first appearance.
func (t *NotificationTemplate) Placeholders() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range placeholderRegex.FindAllStringSubmatch(t.Subject+"\n"+t.Body, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}

// Render substitutes placeholders with values from data. Placeholders
// with no matching key are left in the output unchanged so missing
// data is visible in the rendered notification.
func (t *NotificationTemplate) Render(data map[string]string) (subject, body string) {
	replace := func(s string) string {
		return placeholderRegex.ReplaceAllStringFunc(s, func(match string) string {
			key := placeholderRegex.FindStringSubmatch(match)[1]
			if v, ok := data[key]; ok {
				return v
			}
			return match
		})
	}
	return replace(t.Subject), replace(t.Body)
}

// RenderPreview renders the template with each placeholder replaced by
// a sample value, for the admin preview screen.
func (t *NotificationTemplate) RenderPreview() (subject, body string) {
	data := make(map[string]string)
	for _, p := range t.Placeholders() {
		data[p] = "<" + strings.ReplaceAll(p, ".", " ") + ">"
	}
	return t.Render(data)
}

// TemplateRepository defines the persistence contract for templates.
type TemplateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*NotificationTemplate, error)
	FindByCode(ctx context.Context, code string) (*NotificationTemplate, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*NotificationTemplate, int64, error)
	Save(ctx context.Context, tpl *NotificationTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
