package action

import "errors"

// Failure causes for the mutating actions. Call sites wrap these with
// the offending id so callers can errors.Is on the cause and still see
// the detail in the message.
var (
	// ErrOrderNotFound indicates the referenced order id is absent.
	ErrOrderNotFound = errors.New("order not found")

	// ErrUserNotFound indicates the order's owning user is absent.
	ErrUserNotFound = errors.New("user not found")

	// ErrProductNotFound indicates the referenced product id is absent.
	ErrProductNotFound = errors.New("product not found")

	// ErrPaymentMethodNotFound indicates the payment method id is not
	// registered on the owning user.
	ErrPaymentMethodNotFound = errors.New("payment method not found")

	// ErrWrongStatus indicates the order is not in the status the
	// requested transition requires.
	ErrWrongStatus = errors.New("order status does not allow this operation")

	// ErrInvalidReason indicates a cancellation reason outside the
	// allowed vocabulary.
	ErrInvalidReason = errors.New("invalid cancellation reason")

	// ErrItemCountMismatch indicates item_ids and new_item_ids differ in
	// length.
	ErrItemCountMismatch = errors.New("the number of items to be exchanged should match")

	// ErrItemNotFound indicates a requested item id exceeds its
	// multiplicity among the order's items.
	ErrItemNotFound = errors.New("item not found in order")

	// ErrVariantUnavailable indicates the exchange target variant does
	// not exist or is not available.
	ErrVariantUnavailable = errors.New("new item not found or available")

	// ErrInsufficientBalance indicates a gift card cannot cover the
	// exchange price difference.
	ErrInsufficientBalance = errors.New("insufficient gift card balance to pay for the price difference")
)
