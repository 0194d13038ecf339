package action

import (
	"fmt"
	"sort"
	"strings"

	"github.com/metalagman/retailsim/internal/world"
)

// Allowed cancellation reasons. Anything else fails the whole action.
var cancelReasons = map[string]struct{}{
	"no longer needed":   {},
	"ordered by mistake": {},
}

// normFold prepares a possibly-missing name or email for comparison:
// trim, then case-fold.
func normFold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// sortedUserIDs pins the iteration order over users so first-match
// lookups are deterministic per run.
func sortedUserIDs(st *world.State) []string {
	ids := make([]string, 0, len(st.Users))
	for id := range st.Users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FindUserIDByEmail locates a user by exact, case-insensitive email
// match. First match in sorted-id order wins.
func FindUserIDByEmail(st *world.State, email string) (string, bool) {
	want := normFold(email)
	for _, id := range sortedUserIDs(st) {
		u := st.Users[id]
		if u == nil {
			continue
		}
		if normFold(u.Email) == want {
			return id, true
		}
	}
	return "", false
}

// FindUserIDByNameZip locates a user by case-insensitive first and last
// name plus zip compared as a trimmed string.
func FindUserIDByNameZip(st *world.State, firstName, lastName, zip string) (string, bool) {
	wantFirst := normFold(firstName)
	wantLast := normFold(lastName)
	wantZip := strings.TrimSpace(zip)
	for _, id := range sortedUserIDs(st) {
		u := st.Users[id]
		if u == nil {
			continue
		}
		if normFold(u.Name.FirstName) == wantFirst &&
			normFold(u.Name.LastName) == wantLast &&
			u.Address.Zip.Norm() == wantZip {
			return id, true
		}
	}
	return "", false
}

// GetOrderDetails returns the order record for an id, if present.
func GetOrderDetails(st *world.State, orderID string) (*world.Order, bool) {
	return st.OrderByID(orderID)
}

// GetUserDetails returns the user record for an id, if present.
func GetUserDetails(st *world.State, userID string) (*world.User, bool) {
	return st.UserByID(userID)
}

// GetProductDetails returns the product record for an id, if present.
func GetProductDetails(st *world.State, productID string) (*world.Product, bool) {
	return st.ProductByID(productID)
}

// ExchangeDeliveredOrderItems swaps delivered items for available
// variants of the same products. All validation happens before the
// first write, so a failing call leaves the state untouched.
//
// item_ids and new_item_ids pair positionally. Duplicate item ids are
// legal as long as the order holds at least that many copies.
func ExchangeDeliveredOrderItems(st *world.State, orderID string, itemIDs, newItemIDs []string, paymentMethodID string) (*world.Order, error) {
	order, ok := st.OrderByID(orderID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if order.Status != world.StatusDelivered {
		return nil, fmt.Errorf("%w: non-delivered order cannot be exchanged", ErrWrongStatus)
	}

	// Requested multiplicity per item id must not exceed what the order
	// actually holds.
	held := make(map[string]int, len(order.Items))
	for _, it := range order.Items {
		held[it.ItemID]++
	}
	requested := make(map[string]int, len(itemIDs))
	for _, id := range itemIDs {
		requested[id]++
		if requested[id] > held[id] {
			return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
		}
	}

	if len(itemIDs) != len(newItemIDs) {
		return nil, ErrItemCountMismatch
	}

	diff := 0.0
	for i, oldID := range itemIDs {
		newID := newItemIDs[i]
		oldItem, ok := firstItem(order, oldID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrItemNotFound, oldID)
		}
		variant, ok := availableVariant(st, oldItem.ProductID, newID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrVariantUnavailable, newID)
		}
		diff += variant.Price - oldItem.Price
	}
	diff = world.RoundCents(diff)

	user, ok := st.UserByID(order.UserID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, order.UserID)
	}
	pm, ok := user.PaymentMethods[paymentMethodID]
	if !ok || pm == nil {
		return nil, fmt.Errorf("%w: %s", ErrPaymentMethodNotFound, paymentMethodID)
	}
	if pm.Source == world.SourceGiftCard && pm.Balance < diff {
		return nil, ErrInsufficientBalance
	}

	oldSorted := append([]string(nil), itemIDs...)
	newSorted := append([]string(nil), newItemIDs...)
	sort.Strings(oldSorted)
	sort.Strings(newSorted)

	order.Status = world.StatusExchangeRequested
	order.ExchangeItems = oldSorted
	order.ExchangeNewItems = newSorted
	order.ExchangePaymentMethodID = paymentMethodID
	order.ExchangePriceDifference = &diff

	return order, nil
}

// firstItem returns the first order line whose item id matches,
// mirroring the positional-pair semantics of the exchange.
func firstItem(order *world.Order, itemID string) (world.Item, bool) {
	for _, it := range order.Items {
		if it.ItemID == itemID {
			return it, true
		}
	}
	return world.Item{}, false
}

// availableVariant resolves a variant of the given product that exists
// and is marked available.
func availableVariant(st *world.State, productID, itemID string) (*world.Variant, bool) {
	product, ok := st.ProductByID(productID)
	if !ok {
		return nil, false
	}
	v, ok := product.Variants[itemID]
	if !ok || v == nil || !v.Available {
		return nil, false
	}
	return v, true
}

// CancelPendingOrder cancels a pending order and synthesizes one refund
// per payment-history entry. Gift-card refunds (detected by the
// payment-method id) are credited immediately; other refunds are only
// recorded, representing the out-of-band 5-7 day process.
func CancelPendingOrder(st *world.State, orderID, reason string) (*world.Order, error) {
	order, ok := st.OrderByID(orderID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if order.Status != world.StatusPending {
		return nil, fmt.Errorf("%w: non-pending order cannot be cancelled", ErrWrongStatus)
	}
	if _, ok := cancelReasons[reason]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReason, reason)
	}

	user, ok := st.UserByID(order.UserID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, order.UserID)
	}
	// Resolve every gift card up front so a missing method cannot leave
	// a half-applied refund pass behind.
	for _, payment := range order.PaymentHistory {
		if !strings.Contains(payment.PaymentMethodID, world.SourceGiftCard) {
			continue
		}
		if pm, ok := user.PaymentMethods[payment.PaymentMethodID]; !ok || pm == nil {
			return nil, fmt.Errorf("%w: %s", ErrPaymentMethodNotFound, payment.PaymentMethodID)
		}
	}

	refunds := make([]world.Payment, 0, len(order.PaymentHistory))
	for _, payment := range order.PaymentHistory {
		refunds = append(refunds, world.Payment{
			TransactionType: world.TransactionRefund,
			Amount:          payment.Amount,
			PaymentMethodID: payment.PaymentMethodID,
		})
		if strings.Contains(payment.PaymentMethodID, world.SourceGiftCard) {
			pm := user.PaymentMethods[payment.PaymentMethodID]
			pm.Balance = world.RoundCents(pm.Balance + payment.Amount)
		}
	}

	order.Status = world.StatusCancelled
	order.CancelReason = reason
	order.PaymentHistory = append(order.PaymentHistory, refunds...)

	return order, nil
}
