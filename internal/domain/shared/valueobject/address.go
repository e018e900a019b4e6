package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Address is a value object representing a shipping or billing address
// It is immutable - all operations return new Address instances
type Address struct {
	line1      string
	line2      string
	city       string
	region     string
	postalCode string
	country    string
}

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithLine2 sets the secondary address line (apartment, suite)
func WithLine2(line2 string) AddressOption {
	return func(a *Address) {
		a.line2 = strings.TrimSpace(line2)
	}
}

// WithRegion sets the state or province
func WithRegion(region string) AddressOption {
	return func(a *Address) {
		a.region = strings.TrimSpace(region)
	}
}

// NewAddress creates a new Address. Line1, city, postal code and country
// are required; line2 and region are optional.
func NewAddress(line1, city, postalCode, country string, opts ...AddressOption) (Address, error) {
	line1 = strings.TrimSpace(line1)
	city = strings.TrimSpace(city)
	postalCode = strings.TrimSpace(postalCode)
	country = strings.TrimSpace(country)

	if line1 == "" {
		return Address{}, fmt.Errorf("address line cannot be empty")
	}
	if len(line1) > 200 {
		return Address{}, fmt.Errorf("address line cannot exceed 200 characters")
	}
	if city == "" {
		return Address{}, fmt.Errorf("city cannot be empty")
	}
	if len(city) > 100 {
		return Address{}, fmt.Errorf("city cannot exceed 100 characters")
	}
	if postalCode == "" {
		return Address{}, fmt.Errorf("postal code cannot be empty")
	}
	if len(postalCode) > 20 {
		return Address{}, fmt.Errorf("postal code cannot exceed 20 characters")
	}
	if country == "" {
		return Address{}, fmt.Errorf("country cannot be empty")
	}
	country = strings.ToUpper(country)
	if !isCountryCode(country) {
		return Address{}, fmt.Errorf("country must be a two-letter ISO code")
	}

	addr := Address{
		line1:      line1,
		city:       city,
		postalCode: postalCode,
		country:    country,
	}

	for _, opt := range opts {
		opt(&addr)
	}

	if len(addr.line2) > 200 {
		return Address{}, fmt.Errorf("address line cannot exceed 200 characters")
	}
	if len(addr.region) > 100 {
		return Address{}, fmt.Errorf("region cannot exceed 100 characters")
	}

	return addr, nil
}

func isCountryCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// Line1 returns the primary address line
func (a Address) Line1() string {
	return a.line1
}

// Line2 returns the secondary address line
func (a Address) Line2() string {
	return a.line2
}

// City returns the city
func (a Address) City() string {
	return a.city
}

// Region returns the state or province
func (a Address) Region() string {
	return a.region
}

// PostalCode returns the postal code
func (a Address) PostalCode() string {
	return a.postalCode
}

// Country returns the country
func (a Address) Country() string {
	return a.country
}

// IsEmpty returns true if the address has no data
func (a Address) IsEmpty() bool {
	return a.line1 == "" && a.city == "" && a.postalCode == "" && a.country == ""
}

// FullAddress returns the complete single-line formatted address
func (a Address) FullAddress() string {
	if a.IsEmpty() {
		return ""
	}

	parts := make([]string, 0, 6)
	for _, p := range []string{a.line1, a.line2, a.city, a.region, a.postalCode, a.country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// String returns a string representation of the address
func (a Address) String() string {
	return a.FullAddress()
}

// Equals returns true if both addresses are equal
func (a Address) Equals(other Address) bool {
	return a.line1 == other.line1 &&
		a.line2 == other.line2 &&
		a.city == other.city &&
		a.region == other.region &&
		a.postalCode == other.postalCode &&
		a.country == other.country
}

// addressJSON is used for JSON marshaling/unmarshaling
type addressJSON struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Line1:      a.line1,
		Line2:      a.line2,
		City:       a.city,
		Region:     a.region,
		PostalCode: a.postalCode,
		Country:    a.country,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Empty payloads produce the
// empty address; anything else goes through the validating factory.
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	if v.Line1 == "" && v.City == "" && v.PostalCode == "" && v.Country == "" {
		*a = EmptyAddress()
		return nil
	}

	addr, err := NewAddress(v.Line1, v.City, v.PostalCode, v.Country,
		WithLine2(v.Line2), WithRegion(v.Region))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Value implements driver.Valuer so an address can live in a JSON column
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = EmptyAddress()
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*a = EmptyAddress()
		return nil
	}

	return json.Unmarshal(data, a)
}
