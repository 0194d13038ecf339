// Package world holds the retail domain model: users, orders, products
// and the aggregate snapshot state that actions query and mutate.
package world

// Order status values the action library transitions between. Snapshots
// may carry other statuses; those are preserved as opaque strings.
const (
	StatusPending           = "pending"
	StatusDelivered         = "delivered"
	StatusCancelled         = "cancelled"
	StatusExchangeRequested = "exchange requested"
)

// Payment method sources.
const (
	SourceGiftCard   = "gift_card"
	SourceCreditCard = "credit_card"
)

// TransactionRefund is the transaction type recorded for synthesized refunds.
const TransactionRefund = "refund"

// Name is a user's first and last name.
type Name struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Address is a shipping or billing address. Zip is a FlexString because
// datasets store it as either a string or a bare number.
type Address struct {
	Address1 string     `json:"address1,omitempty"`
	Address2 string     `json:"address2,omitempty"`
	City     string     `json:"city,omitempty"`
	Country  string     `json:"country,omitempty"`
	State    string     `json:"state,omitempty"`
	Zip      FlexString `json:"zip"`
}

// PaymentMethod is one of a user's registered payment instruments.
// Balance is meaningful only for gift cards and is kept rounded to two
// decimals after every mutation.
type PaymentMethod struct {
	ID       string  `json:"id"`
	Source   string  `json:"source"`
	Balance  float64 `json:"balance,omitempty"`
	Brand    string  `json:"brand,omitempty"`
	LastFour string  `json:"last_four,omitempty"`
}

// User is a customer record. Users are never deleted during scoring;
// cancellation may credit a gift card balance.
type User struct {
	Name           Name                      `json:"name"`
	Address        Address                   `json:"address"`
	Email          string                    `json:"email"`
	PaymentMethods map[string]*PaymentMethod `json:"payment_methods"`
	Orders         []string                  `json:"orders,omitempty"`
}

// Item is an order line. Price is the price at time of purchase and is
// never rewritten; exchanges only record metadata on the order.
type Item struct {
	Name      string         `json:"name,omitempty"`
	ProductID string         `json:"product_id"`
	ItemID    string         `json:"item_id"`
	Price     float64        `json:"price"`
	Options   map[string]any `json:"options,omitempty"`
}

// Payment is one entry in an order's payment history.
type Payment struct {
	TransactionType string  `json:"transaction_type"`
	Amount          float64 `json:"amount"`
	PaymentMethodID string  `json:"payment_method_id"`
}

// Fulfillment records shipping detail for delivered items.
type Fulfillment struct {
	TrackingID []string `json:"tracking_id,omitempty"`
	ItemIDs    []string `json:"item_ids,omitempty"`
}

// Order is a customer order. The exchange_* and cancel_reason fields are
// absent until the corresponding action succeeds; use pointer/omitempty
// so the fingerprint distinguishes "never set" from "set".
type Order struct {
	ID             string        `json:"order_id,omitempty"`
	UserID         string        `json:"user_id"`
	Address        *Address      `json:"address,omitempty"`
	Items          []Item        `json:"items"`
	Fulfillments   []Fulfillment `json:"fulfillments,omitempty"`
	Status         string        `json:"status"`
	PaymentHistory []Payment     `json:"payment_history"`

	ExchangeItems           []string `json:"exchange_items,omitempty"`
	ExchangeNewItems        []string `json:"exchange_new_items,omitempty"`
	ExchangePaymentMethodID string   `json:"exchange_payment_method_id,omitempty"`
	ExchangePriceDifference *float64 `json:"exchange_price_difference,omitempty"`
	CancelReason            string   `json:"cancel_reason,omitempty"`
}

// Variant is one purchasable configuration of a product. Read-only for
// the action library; no action restocks or reprices a variant.
type Variant struct {
	ItemID    string         `json:"item_id"`
	Options   map[string]any `json:"options,omitempty"`
	Available bool           `json:"available"`
	Price     float64        `json:"price"`
}

// Product groups variants under a product id.
type Product struct {
	Name     string              `json:"name,omitempty"`
	ID       string              `json:"product_id,omitempty"`
	Variants map[string]*Variant `json:"variants"`
}
