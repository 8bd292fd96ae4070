package order

import (
	"fmt"

	"github.com/go-faster/errors"

	"github.com/KaanCaman/simple-pos-full-stack/pkg/money"
)

// Sentinel errors for discount validation.
var (
	ErrDiscountReasonRequired = errors.New("discount reason is required")
	ErrDiscountValueNegative  = errors.New("discount value cannot be negative")
)

// PercentageOutOfRangeError indicates a percentage discount outside 0-100.
type PercentageOutOfRangeError struct {
	Value int64
}

func (e *PercentageOutOfRangeError) Error() string {
	return fmt.Sprintf("discount percentage %d is out of range 0-100", e.Value)
}

// AmountExceedsCartError indicates a fixed discount larger than the cart total.
type AmountExceedsCartError struct {
	Value     money.Amount
	CartTotal money.Amount
}

func (e *AmountExceedsCartError) Error() string {
	return fmt.Sprintf("discount amount %s exceeds cart total %s", e.Value, e.CartTotal)
}

// InvalidDiscountTypeError indicates an unknown discount type.
type InvalidDiscountTypeError struct {
	Type DiscountType
}

func (e *InvalidDiscountTypeError) Error() string {
	return fmt.Sprintf("invalid discount type %q", e.Type)
}

// DiscountRequest is the payload for applying a discount to an order.
// Value is percentage points for PERCENTAGE and minor currency units for AMOUNT.
type DiscountRequest struct {
	Type   DiscountType `json:"type"`
	Value  int64        `json:"value"`
	Reason string       `json:"reason"`
}

// Validate checks the request against the given pre-discount cart total.
// The server revalidates; this exists so the front-end rejects bad input
// before a network call is issued.
func (r DiscountRequest) Validate(cartTotal money.Amount) error {
	if r.Value < 0 {
		return ErrDiscountValueNegative
	}

	switch r.Type {
	case DiscountPercentage:
		if r.Value > 100 {
			return &PercentageOutOfRangeError{Value: r.Value}
		}
	case DiscountAmount:
		if money.Amount(r.Value) > cartTotal {
			return &AmountExceedsCartError{Value: money.Amount(r.Value), CartTotal: cartTotal}
		}
	case DiscountNone:
	default:
		return &InvalidDiscountTypeError{Type: r.Type}
	}

	if r.Reason == "" && r.Type != DiscountNone {
		return ErrDiscountReasonRequired
	}
	return nil
}
