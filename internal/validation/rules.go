package validation

import "regexp"

var (
	slugPattern       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	skuPattern        = regexp.MustCompile(`^[A-Z0-9_-]+$`)
	phonePattern      = regexp.MustCompile(`^[0-9+\-() ]+$`)
	postalCodePattern = regexp.MustCompile(`^[A-Z0-9 -]+$`)
)

// Shared rule presets reused across the admin forms. Treat them as
// read-only; copy before customizing.
var (
	Required = Rule{Required: true}

	Email = Rule{Required: true, Email: true}

	URL = Rule{Required: true, URL: true}

	PositiveNumber = Rule{Required: true, Positive: true}

	NonNegativeNumber = Rule{Required: true, NonNegative: true}

	// Slug allows lowercase alphanumerics separated by single hyphens
	Slug = Rule{
		Required:    true,
		MinLength:   1,
		MaxLength:   100,
		Pattern:     slugPattern,
		PatternDesc: "lowercase letters, digits and single hyphens",
	}

	SKU = Rule{
		Required:    true,
		MinLength:   1,
		MaxLength:   50,
		Pattern:     skuPattern,
		PatternDesc: "uppercase letters, digits, hyphens or underscores",
	}

	Phone = Rule{
		Required:    true,
		MinLength:   10,
		MaxLength:   20,
		Pattern:     phonePattern,
		PatternDesc: "digits, spaces, +, - or parentheses",
	}

	PostalCode = Rule{
		Required:    true,
		MinLength:   4,
		MaxLength:   10,
		Pattern:     postalCodePattern,
		PatternDesc: "uppercase letters, digits, spaces or hyphens",
	}
)

// Float is a convenience for rules carrying Min or Max bounds
func Float(f float64) *float64 {
	return &f
}
