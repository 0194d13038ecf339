package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalagman/retailsim/internal/world"
)

func testState() *world.State {
	return &world.State{
		Users: map[string]*world.User{
			"u1": {
				Name:    world.Name{FirstName: "Sara", LastName: "Doe"},
				Address: world.Address{City: "New York", Zip: "10001"},
				Email:   "sara.doe@example.com",
				PaymentMethods: map[string]*world.PaymentMethod{
					"gift_card_1": {ID: "gift_card_1", Source: world.SourceGiftCard, Balance: 0.0},
					"credit_card_1": {
						ID: "credit_card_1", Source: world.SourceCreditCard,
						Brand: "visa", LastFour: "4321",
					},
				},
				Orders: []string{"#W001", "#W002"},
			},
			"u2": {
				Name:    world.Name{FirstName: "Noah", LastName: "Ito"},
				Address: world.Address{City: "Seattle", Zip: "98101"},
				Email:   "noah.ito@example.com",
				PaymentMethods: map[string]*world.PaymentMethod{
					"gift_card_2": {ID: "gift_card_2", Source: world.SourceGiftCard, Balance: 10.0},
				},
			},
		},
		Orders: map[string]*world.Order{
			"#W001": {
				UserID: "u1",
				Status: world.StatusPending,
				Items: []world.Item{
					{Name: "Desk Lamp", ProductID: "P2", ItemID: "L1", Price: 10.0},
				},
				PaymentHistory: []world.Payment{
					{TransactionType: "payment", Amount: 10.0, PaymentMethodID: "gift_card_1"},
				},
			},
			"#W002": {
				UserID: "u1",
				Status: world.StatusDelivered,
				Items: []world.Item{
					{Name: "Running Shoe", ProductID: "P1", ItemID: "A", Price: 20.0},
					{Name: "Running Shoe", ProductID: "P1", ItemID: "A", Price: 20.0},
				},
				PaymentHistory: []world.Payment{
					{TransactionType: "payment", Amount: 40.0, PaymentMethodID: "credit_card_1"},
				},
			},
			"#W003": {
				UserID: "u2",
				Status: world.StatusDelivered,
				Items: []world.Item{
					{Name: "Running Shoe", ProductID: "P1", ItemID: "A", Price: 20.0},
				},
				PaymentHistory: []world.Payment{
					{TransactionType: "payment", Amount: 20.0, PaymentMethodID: "gift_card_2"},
				},
			},
		},
		Products: map[string]*world.Product{
			"P1": {
				Name: "Running Shoe",
				Variants: map[string]*world.Variant{
					"A": {ItemID: "A", Available: true, Price: 20.0},
					"B": {ItemID: "B", Available: true, Price: 25.0},
					"C": {ItemID: "C", Available: true, Price: 15.0},
					"D": {ItemID: "D", Available: false, Price: 5.0},
				},
			},
			"P2": {
				Name: "Desk Lamp",
				Variants: map[string]*world.Variant{
					"L1": {ItemID: "L1", Available: true, Price: 10.0},
				},
			},
		},
	}
}

func TestFindUserIDByEmail(t *testing.T) {
	t.Parallel()
	st := testState()

	id, ok := FindUserIDByEmail(st, "SARA.DOE@example.COM")
	require.True(t, ok)
	assert.Equal(t, "u1", id)

	_, ok = FindUserIDByEmail(st, "nobody@example.com")
	assert.False(t, ok)
}

func TestFindUserIDByNameZip(t *testing.T) {
	t.Parallel()
	st := testState()

	id, ok := FindUserIDByNameZip(st, "sara", "DOE", " 10001 ")
	require.True(t, ok)
	assert.Equal(t, "u1", id)

	_, ok = FindUserIDByNameZip(st, "sara", "doe", "99999")
	assert.False(t, ok)
}

func TestLookups(t *testing.T) {
	t.Parallel()
	st := testState()

	order, ok := GetOrderDetails(st, "#W001")
	require.True(t, ok)
	assert.Equal(t, world.StatusPending, order.Status)

	_, ok = GetOrderDetails(st, "#W999")
	assert.False(t, ok)

	user, ok := GetUserDetails(st, "u1")
	require.True(t, ok)
	assert.Equal(t, "Sara", user.Name.FirstName)

	product, ok := GetProductDetails(st, "P1")
	require.True(t, ok)
	assert.Len(t, product.Variants, 4)

	_, ok = GetProductDetails(st, "P9")
	assert.False(t, ok)
}

func TestCancelPendingOrder(t *testing.T) {
	t.Parallel()
	st := testState()

	order, err := CancelPendingOrder(st, "#W001", "no longer needed")
	require.NoError(t, err)

	assert.Equal(t, world.StatusCancelled, order.Status)
	assert.Equal(t, "no longer needed", order.CancelReason)

	// One refund per original payment, appended after the originals.
	require.Len(t, order.PaymentHistory, 2)
	refund := order.PaymentHistory[1]
	assert.Equal(t, world.TransactionRefund, refund.TransactionType)
	assert.Equal(t, 10.0, refund.Amount)
	assert.Equal(t, "gift_card_1", refund.PaymentMethodID)

	// Gift card refunds are credited immediately.
	assert.Equal(t, 10.0, st.Users["u1"].PaymentMethods["gift_card_1"].Balance)
}

func TestCancelPendingOrderGuards(t *testing.T) {
	t.Parallel()
	st := testState()

	_, err := CancelPendingOrder(st, "#W404", "no longer needed")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = CancelPendingOrder(st, "#W002", "no longer needed")
	assert.ErrorIs(t, err, ErrWrongStatus)
	assert.Equal(t, world.StatusDelivered, st.Orders["#W002"].Status)

	_, err = CancelPendingOrder(st, "#W001", "changed my mind")
	assert.ErrorIs(t, err, ErrInvalidReason)
	assert.Equal(t, world.StatusPending, st.Orders["#W001"].Status)
	assert.Len(t, st.Orders["#W001"].PaymentHistory, 1)
	assert.Equal(t, 0.0, st.Users["u1"].PaymentMethods["gift_card_1"].Balance)
}

func TestCancelIsNotIdempotent(t *testing.T) {
	t.Parallel()
	st := testState()

	_, err := CancelPendingOrder(st, "#W001", "ordered by mistake")
	require.NoError(t, err)

	_, err = CancelPendingOrder(st, "#W001", "ordered by mistake")
	assert.ErrorIs(t, err, ErrWrongStatus)
	// The failed retry must not double-credit the gift card.
	assert.Equal(t, 10.0, st.Users["u1"].PaymentMethods["gift_card_1"].Balance)
	assert.Len(t, st.Orders["#W001"].PaymentHistory, 2)
}

func TestExchangeDeliveredOrderItems(t *testing.T) {
	t.Parallel()
	st := testState()

	// Swap to a cheaper variant: diff is negative, gift card accepted.
	order, err := ExchangeDeliveredOrderItems(st, "#W003", []string{"A"}, []string{"C"}, "gift_card_2")
	require.NoError(t, err)

	assert.Equal(t, world.StatusExchangeRequested, order.Status)
	assert.Equal(t, []string{"A"}, order.ExchangeItems)
	assert.Equal(t, []string{"C"}, order.ExchangeNewItems)
	assert.Equal(t, "gift_card_2", order.ExchangePaymentMethodID)
	require.NotNil(t, order.ExchangePriceDifference)
	assert.Equal(t, -5.0, *order.ExchangePriceDifference)

	// Original line items keep their purchase-time price.
	assert.Equal(t, 20.0, order.Items[0].Price)
	// The balance is only checked, never charged, by the exchange.
	assert.Equal(t, 10.0, st.Users["u2"].PaymentMethods["gift_card_2"].Balance)
}

func TestExchangeSortsRecordedItemLists(t *testing.T) {
	t.Parallel()
	st := testState()

	order, err := ExchangeDeliveredOrderItems(st, "#W002", []string{"A", "A"}, []string{"C", "B"}, "credit_card_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "A"}, order.ExchangeItems)
	assert.Equal(t, []string{"B", "C"}, order.ExchangeNewItems)
	require.NotNil(t, order.ExchangePriceDifference)
	// (15-20) + (25-20) = 0.00, recorded even when zero.
	assert.Equal(t, 0.0, *order.ExchangePriceDifference)
}

func TestExchangeGuards(t *testing.T) {
	t.Parallel()

	t.Run("order not found", func(t *testing.T) {
		t.Parallel()
		st := testState()
		_, err := ExchangeDeliveredOrderItems(st, "#W404", []string{"A"}, []string{"B"}, "credit_card_1")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("non-delivered order", func(t *testing.T) {
		t.Parallel()
		st := testState()
		_, err := ExchangeDeliveredOrderItems(st, "#W001", []string{"L1"}, []string{"L1"}, "gift_card_1")
		assert.ErrorIs(t, err, ErrWrongStatus)
		assert.Equal(t, world.StatusPending, st.Orders["#W001"].Status)
	})

	t.Run("multiplicity exceeded", func(t *testing.T) {
		t.Parallel()
		st := testState()
		// #W003 holds one "A"; asking for two must fail and name the id.
		_, err := ExchangeDeliveredOrderItems(st, "#W003", []string{"A", "A"}, []string{"B", "C"}, "gift_card_2")
		require.ErrorIs(t, err, ErrItemNotFound)
		assert.Contains(t, err.Error(), "A")
		assert.Equal(t, world.StatusDelivered, st.Orders["#W003"].Status)
	})

	t.Run("count mismatch", func(t *testing.T) {
		t.Parallel()
		st := testState()
		_, err := ExchangeDeliveredOrderItems(st, "#W002", []string{"A"}, []string{"B", "C"}, "credit_card_1")
		assert.ErrorIs(t, err, ErrItemCountMismatch)
	})

	t.Run("variant unavailable", func(t *testing.T) {
		t.Parallel()
		st := testState()
		_, err := ExchangeDeliveredOrderItems(st, "#W002", []string{"A"}, []string{"D"}, "credit_card_1")
		require.ErrorIs(t, err, ErrVariantUnavailable)
		assert.Contains(t, err.Error(), "D")
	})

	t.Run("variant unknown", func(t *testing.T) {
		t.Parallel()
		st := testState()
		_, err := ExchangeDeliveredOrderItems(st, "#W002", []string{"A"}, []string{"Z"}, "credit_card_1")
		assert.ErrorIs(t, err, ErrVariantUnavailable)
	})

	t.Run("payment method not found", func(t *testing.T) {
		t.Parallel()
		st := testState()
		_, err := ExchangeDeliveredOrderItems(st, "#W002", []string{"A"}, []string{"B"}, "paypal_9")
		assert.ErrorIs(t, err, ErrPaymentMethodNotFound)
	})

	t.Run("insufficient gift card balance", func(t *testing.T) {
		t.Parallel()
		st := testState()
		st.Users["u2"].PaymentMethods["gift_card_2"].Balance = 2.0
		// A -> B costs +5.00 against a 2.00 balance.
		_, err := ExchangeDeliveredOrderItems(st, "#W003", []string{"A"}, []string{"B"}, "gift_card_2")
		require.ErrorIs(t, err, ErrInsufficientBalance)
		assert.Equal(t, world.StatusDelivered, st.Orders["#W003"].Status)
		assert.Nil(t, st.Orders["#W003"].ExchangePriceDifference)
	})
}

func TestExchangeIsNotIdempotent(t *testing.T) {
	t.Parallel()
	st := testState()

	_, err := ExchangeDeliveredOrderItems(st, "#W003", []string{"A"}, []string{"C"}, "gift_card_2")
	require.NoError(t, err)

	_, err = ExchangeDeliveredOrderItems(st, "#W003", []string{"A"}, []string{"C"}, "gift_card_2")
	assert.ErrorIs(t, err, ErrWrongStatus)
}
