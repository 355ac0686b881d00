package rating

import "github.com/StoreRaterHQ/store-rating-api/internal/httperr"

// ===============================
// Rating Value
// ===============================

const (
	MinValue = 1
	MaxValue = 5
)

// ValidateValue enforces the 1..5 integer range. Non-integer payloads never
// reach this point: JSON binding into an int rejects them first.
func ValidateValue(v int) error {
	if v < MinValue || v > MaxValue {
		return httperr.ErrBusiness("invalid_rating_value")
	}
	return nil
}
