package timeutil

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fxamacker/cbor/v2"
)

// DateLayout is the calendar-date layout used on the wire (RFC 3339 full-date).
const DateLayout = "2006-01-02"

// RFC3339Micros is RFC 3339 UTC with fixed microsecond precision.
// Use this format for log timestamps where higher precision is needed.
const RFC3339Micros = "2006-01-02T15:04:05.000000Z"

// Date is a calendar date without time-of-day. It marshals as "2006-01-02".
//
// The zero Date marshals as JSON null so optional dates can be expressed as a
// plain value rather than a pointer.
type Date struct {
	time.Time
}

// NewDate truncates t to midnight UTC of the same calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current UTC calendar date.
func Today() Date {
	return NewDate(time.Now().UTC())
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// String returns the date in DateLayout, or "" for the zero value.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.UTC().Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler. JSON null leaves the value untouched.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalCBOR encodes the date as a CBOR text string so JSON and CBOR clients
// see the same representation.
func (d Date) MarshalCBOR() ([]byte, error) {
	if d.IsZero() {
		return cbor.Marshal(nil)
	}
	return cbor.Marshal(d.String())
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (d *Date) UnmarshalCBOR(data []byte) error {
	var s *string
	if err := cbor.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Schema describes Date as an OpenAPI "date" string so huma validates the
// wire format before the value is decoded.
func (Date) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{Type: huma.TypeString, Format: "date", Examples: []any{"1990-04-21"}}
}

// Ptr returns a pointer to the underlying time, or nil for the zero date.
// Useful when mapping to nullable storage columns.
func (d Date) Ptr() *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// FromPtr is the inverse of Ptr.
func FromPtr(t *time.Time) Date {
	if t == nil {
		return Date{}
	}
	return NewDate(*t)
}
