package alerting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotificationTemplate(t *testing.T) {
	t.Run("creates active template", func(t *testing.T) {
		tpl, err := NewNotificationTemplate("order_placed_staff", "Order placed (staff)",
			"New order {{order_number}}", "Order {{order_number}} for {{total}} was placed by {{customer_email}}.")
		require.NoError(t, err)

		assert.True(t, tpl.IsActive)
		assert.Equal(t, []string{"order_number", "total", "customer_email"}, tpl.Placeholders())
	})

	t.Run("rejects bad code", func(t *testing.T) {
		for _, code := range []string{"", "Order-Placed", "9starts_with_digit", "has space"} {
			_, err := NewNotificationTemplate(code, "n", "s", "b")
			assert.Error(t, err, "code %q", code)
		}
	})

	t.Run("rejects empty subject or body", func(t *testing.T) {
		_, err := NewNotificationTemplate("ok_code", "n", "", "b")
		assert.Error(t, err)
		_, err = NewNotificationTemplate("ok_code", "n", "s", "")
		assert.Error(t, err)
	})
}

func TestNotificationTemplate_Render(t *testing.T) {
	tpl, err := NewNotificationTemplate("order_placed_staff", "Order placed",
		"New order {{order_number}}", "Total {{ total }} from {{customer_email}}. Ref {{order_number}}.")
	require.NoError(t, err)

	t.Run("substitutes known placeholders", func(t *testing.T) {
		subject, body := tpl.Render(map[string]string{
			"order_number":   "ORD-20260829-ABC123",
			"total":          "USD 53.48",
			"customer_email": "jane@example.com",
		})
		assert.Equal(t, "New order ORD-20260829-ABC123", subject)
		assert.Equal(t, "Total USD 53.48 from jane@example.com. Ref ORD-20260829-ABC123.", body)
	})

	t.Run("leaves unknown placeholders visible", func(t *testing.T) {
		subject, _ := tpl.Render(map[string]string{})
		assert.Equal(t, "New order {{order_number}}", subject)
	})

	t.Run("preview fills sample values", func(t *testing.T) {
		subject, body := tpl.RenderPreview()
		assert.Equal(t, "New order <order_number>", subject)
		assert.Contains(t, body, "<total>")
		assert.NotContains(t, body, "{{")
	})
}

func TestNotificationTemplate_Update(t *testing.T) {
	tpl, err := NewNotificationTemplate("welcome_staff", "Welcome", "Hi", "A new user registered.")
	require.NoError(t, err)
	tpl.ClearDomainEvents()

	require.NoError(t, tpl.Update("Welcome v2", "Hello {{first_name}}", "User {{email}} registered."))
	assert.Equal(t, "welcome_staff", tpl.Code)
	assert.Equal(t, []string{"first_name", "email"}, tpl.Placeholders())

	events := tpl.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeTemplateUpdated, events[0].EventType())

	assert.Error(t, tpl.Update("", "s", "b"))
}

func TestNotificationTemplate_ActivateDeactivate(t *testing.T) {
	tpl, err := NewNotificationTemplate("welcome_staff", "Welcome", "Hi", "Body")
	require.NoError(t, err)

	tpl.Deactivate()
	assert.False(t, tpl.IsActive)
	tpl.Activate()
	assert.True(t, tpl.IsActive)
}
