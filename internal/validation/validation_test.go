package validation

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateField_Required(t *testing.T) {
	rule := Rule{Required: true}

	t.Run("fails on nil", func(t *testing.T) {
		assert.Equal(t, "name is required", ValidateField(nil, rule, "name"))
	})

	t.Run("fails on empty string", func(t *testing.T) {
		assert.Equal(t, "name is required", ValidateField("", rule, "name"))
	})

	t.Run("passes on any non-empty value", func(t *testing.T) {
		for _, v := range []interface{}{"x", 0, -5, 1.5, []string{}, false} {
			assert.Empty(t, ValidateField(v, rule, "name"), "value %v", v)
		}
	})
}

func TestValidateField_OptionalShortCircuit(t *testing.T) {
	rule := Rule{MinLength: 5, Email: true}

	t.Run("absent optional field passes without format checks", func(t *testing.T) {
		assert.Empty(t, ValidateField(nil, rule, "website"))
		assert.Empty(t, ValidateField("", rule, "website"))
	})

	t.Run("present value still runs format checks", func(t *testing.T) {
		assert.NotEmpty(t, ValidateField("abc", rule, "website"))
	})
}

func TestValidateField_StringChecks(t *testing.T) {
	t.Run("minLength failure mentions the bound", func(t *testing.T) {
		msg := ValidateField("ab", Rule{MinLength: 3}, "code")
		assert.Equal(t, "code must be at least 3 characters", msg)
	})

	t.Run("at or above minLength passes", func(t *testing.T) {
		assert.Empty(t, ValidateField("abc", Rule{MinLength: 3}, "code"))
		assert.Empty(t, ValidateField("abcd", Rule{MinLength: 3}, "code"))
	})

	t.Run("maxLength", func(t *testing.T) {
		msg := ValidateField("toolong", Rule{MaxLength: 4}, "code")
		assert.Equal(t, "code must be at most 4 characters", msg)
	})

	t.Run("minLength wins over later checks", func(t *testing.T) {
		msg := ValidateField("a", Rule{MinLength: 3, Email: true}, "contact")
		assert.Equal(t, "contact must be at least 3 characters", msg)
	})

	t.Run("url", func(t *testing.T) {
		assert.Empty(t, ValidateField("https://example.com", Rule{URL: true}, "site"))
		assert.Empty(t, ValidateField("http://example.com/a?b=c", Rule{URL: true}, "site"))
		assert.Equal(t, "site must be a valid URL", ValidateField("ftp://example.com", Rule{URL: true}, "site"))
		assert.Equal(t, "site must be a valid URL", ValidateField("example.com", Rule{URL: true}, "site"))
	})
}

func TestValidateField_NumberChecks(t *testing.T) {
	t.Run("positive rejects zero and negatives", func(t *testing.T) {
		rule := Rule{Positive: true}
		assert.Equal(t, "qty must be greater than 0", ValidateField(0, rule, "qty"))
		assert.Equal(t, "qty must be greater than 0", ValidateField(-5, rule, "qty"))
		assert.Empty(t, ValidateField(1, rule, "qty"))
	})

	t.Run("nonNegative allows zero", func(t *testing.T) {
		rule := Rule{NonNegative: true}
		assert.Empty(t, ValidateField(0, rule, "price"))
		assert.Equal(t, "price must be 0 or greater", ValidateField(-1, rule, "price"))
	})

	t.Run("min and max bounds", func(t *testing.T) {
		rule := Rule{Min: Float(1), Max: Float(10)}
		assert.Empty(t, ValidateField(5, rule, "qty"))
		assert.Equal(t, "qty must be at least 1", ValidateField(0.5, rule, "qty"))
		assert.Equal(t, "qty must be at most 10", ValidateField(11, rule, "qty"))
	})

	t.Run("decimal values are numeric", func(t *testing.T) {
		rule := Rule{NonNegative: true}
		assert.Equal(t, "price must be 0 or greater",
			ValidateField(decimal.NewFromInt(-3), rule, "price"))
		assert.Empty(t, ValidateField(decimal.NewFromFloat(9.99), rule, "price"))
	})
}

func TestValidateField_SliceChecks(t *testing.T) {
	rule := Rule{Min: Float(1), Max: Float(3)}

	assert.Equal(t, "tags must have at least 1 items", ValidateField([]string{}, rule, "tags"))
	assert.Empty(t, ValidateField([]string{"a", "b"}, rule, "tags"))
	assert.Equal(t, "tags must have at most 3 items",
		ValidateField([]string{"a", "b", "c", "d"}, rule, "tags"))
}

func TestValidateField_Custom(t *testing.T) {
	rule := Rule{
		Custom: func(v interface{}) string {
			if v == "taken" {
				return "slug is already in use"
			}
			return ""
		},
	}

	assert.Equal(t, "slug is already in use", ValidateField("taken", rule, "slug"))
	assert.Empty(t, ValidateField("free", rule, "slug"))

	t.Run("custom runs after built-in checks", func(t *testing.T) {
		r := rule
		r.MinLength = 10
		assert.Equal(t, "slug must be at least 10 characters", ValidateField("taken", r, "slug"))
	})
}

func TestPresets(t *testing.T) {
	t.Run("slug", func(t *testing.T) {
		assert.Empty(t, ValidateField("my-product-42", Slug, "slug"))
		assert.NotEmpty(t, ValidateField("My_Product", Slug, "slug"))
		assert.NotEmpty(t, ValidateField("-leading", Slug, "slug"))
		assert.NotEmpty(t, ValidateField("double--hyphen", Slug, "slug"))
	})

	t.Run("email", func(t *testing.T) {
		assert.Empty(t, ValidateField("a@b.co", Email, "email"))
		assert.NotEmpty(t, ValidateField("not-an-email", Email, "email"))
		assert.NotEmpty(t, ValidateField("a b@c.co", Email, "email"))
	})

	t.Run("sku", func(t *testing.T) {
		assert.Empty(t, ValidateField("TSHIRT-XL_01", SKU, "sku"))
		assert.NotEmpty(t, ValidateField("tshirt-xl", SKU, "sku"))
	})

	t.Run("phone", func(t *testing.T) {
		assert.Empty(t, ValidateField("+1 (555) 123-4567", Phone, "phone"))
		assert.NotEmpty(t, ValidateField("555-1234", Phone, "phone"))
		assert.NotEmpty(t, ValidateField("call me maybe", Phone, "phone"))
	})

	t.Run("postal code", func(t *testing.T) {
		assert.Empty(t, ValidateField("SW1A 1AA", PostalCode, "postal_code"))
		assert.Empty(t, ValidateField("90210", PostalCode, "postal_code"))
		assert.NotEmpty(t, ValidateField("abc", PostalCode, "postal_code"))
	})
}

func TestValidateForm(t *testing.T) {
	t.Run("empty rule set always passes", func(t *testing.T) {
		result := ValidateForm(map[string]interface{}{"anything": 42}, RuleSet{})
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Errors)
	})

	t.Run("fields without rules are ignored", func(t *testing.T) {
		result := ValidateForm(
			map[string]interface{}{"name": "ok", "extra": ""},
			RuleSet{"name": Required},
		)
		assert.True(t, result.IsValid)
	})

	t.Run("collects one message per failing field", func(t *testing.T) {
		result := ValidateForm(
			map[string]interface{}{"name": "", "price": -1},
			RuleSet{"name": Required, "price": NonNegativeNumber},
		)
		assert.False(t, result.IsValid)
		assert.Equal(t, map[string]string{
			"name":  "name is required",
			"price": "price must be 0 or greater",
		}, result.Errors)
	})

	t.Run("required preset still fails absent numeric field", func(t *testing.T) {
		result := ValidateForm(
			map[string]interface{}{"name": "Book"},
			RuleSet{"name": Required, "price": NonNegativeNumber},
		)
		assert.False(t, result.IsValid)
		assert.Equal(t, "price is required", result.Errors["price"])
	})
}

func TestValidateField_MessageIsData(t *testing.T) {
	// validation never panics on surprising input
	for i, v := range []interface{}{struct{}{}, map[string]int{"a": 1}, func() {}} {
		t.Run(fmt.Sprintf("input %d", i), func(t *testing.T) {
			assert.NotPanics(t, func() {
				ValidateField(v, Rule{MinLength: 3, Positive: true}, "field")
			})
		})
	}
}
