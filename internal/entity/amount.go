package entity

import "fmt"

// Amount is a monetary value in cents. Extracted prices are converted to
// cents once and kept integral so no float rounding leaks into records.
type Amount int64

// String renders the amount with exactly two fraction digits, e.g. "1234.50".
func (a Amount) String() string {
	v := int64(a)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON renders the amount as a fixed two-decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}
