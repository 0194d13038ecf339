package action

import (
	"encoding/json"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog/log"

	"github.com/metalagman/retailsim/internal/world"
)

// Result is what a dispatched action produced. Exactly one of Payload
// and Err is meaningful when Handled is true; both are zero when the
// action name was unknown and the dispatch no-opped.
type Result struct {
	Handled bool
	Payload any
	Err     error
}

// Observation renders the result the way the tool layer surfaces it to
// an agent: the payload for success, an "Error: ..." line for failure,
// empty for a no-op.
func (r Result) Observation() string {
	if !r.Handled {
		return ""
	}
	if r.Err != nil {
		return "Error: " + r.Err.Error()
	}
	switch p := r.Payload.(type) {
	case string:
		return p
	case nil:
		return ""
	default:
		b, err := json.Marshal(p)
		if err != nil {
			return fmt.Sprintf("%v", p)
		}
		return string(b)
	}
}

// Handler applies one named action to the state using an already-raw
// kwargs bag. Handlers decode the bag themselves so each action gets
// its own typed argument struct.
type Handler func(st *world.State, kwargs map[string]any) (any, error)

// Registry is the closed action vocabulary, resolved once at startup.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry builds the registry with every action wired in.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[string]Handler)}
	r.handlers["find_user_id_by_email"] = handleFindUserIDByEmail
	r.handlers["find_user_id_by_name_zip"] = handleFindUserIDByNameZip
	r.handlers["get_order_details"] = handleGetOrderDetails
	r.handlers["get_user_details"] = handleGetUserDetails
	r.handlers["get_product_details"] = handleGetProductDetails
	r.handlers["exchange_delivered_order_items"] = handleExchange
	r.handlers["cancel_pending_order"] = handleCancel
	return r
}

// Names returns the registered action names in registration-map order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}

// Has reports whether a name resolves to a handler.
func (r *Registry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Dispatch resolves an action by name and applies it to the state.
// Unknown names are silent no-ops so vocabulary skew between agent and
// ground truth cannot crash a replay.
func (r *Registry) Dispatch(st *world.State, act Action) Result {
	h, ok := r.handlers[act.Name]
	if !ok {
		log.Debug().Str("action", act.Name).Msg("unknown action, skipping")
		return Result{}
	}
	payload, err := h(st, act.Kwargs)
	if err != nil {
		log.Debug().Str("action", act.Name).Err(err).Msg("action failed")
	}
	return Result{Handled: true, Payload: payload, Err: err}
}

// decodeArgs maps the raw kwargs bag onto an action's typed argument
// struct. Keys the struct does not declare are dropped, and scalar
// types are coerced weakly (zip codes arrive as numbers often enough).
func decodeArgs(kwargs map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("build kwargs decoder: %w", err)
	}
	if err := dec.Decode(kwargs); err != nil {
		return fmt.Errorf("decode kwargs: %w", err)
	}
	return nil
}

type findUserIDByEmailArgs struct {
	Email string `mapstructure:"email"`
}

type findUserIDByNameZipArgs struct {
	FirstName string `mapstructure:"first_name"`
	LastName  string `mapstructure:"last_name"`
	Zip       string `mapstructure:"zip"`
}

type getOrderDetailsArgs struct {
	OrderID string `mapstructure:"order_id"`
}

type getUserDetailsArgs struct {
	UserID string `mapstructure:"user_id"`
}

type getProductDetailsArgs struct {
	ProductID string `mapstructure:"product_id"`
}

type exchangeArgs struct {
	OrderID         string   `mapstructure:"order_id"`
	ItemIDs         []string `mapstructure:"item_ids"`
	NewItemIDs      []string `mapstructure:"new_item_ids"`
	PaymentMethodID string   `mapstructure:"payment_method_id"`
}

type cancelArgs struct {
	OrderID string `mapstructure:"order_id"`
	Reason  string `mapstructure:"reason"`
}

func handleFindUserIDByEmail(st *world.State, kwargs map[string]any) (any, error) {
	var args findUserIDByEmailArgs
	if err := decodeArgs(kwargs, &args); err != nil {
		return nil, err
	}
	id, ok := FindUserIDByEmail(st, args.Email)
	if !ok {
		return nil, fmt.Errorf("%w: email %s", ErrUserNotFound, args.Email)
	}
	return id, nil
}

func handleFindUserIDByNameZip(st *world.State, kwargs map[string]any) (any, error) {
	var args findUserIDByNameZipArgs
	if err := decodeArgs(kwargs, &args); err != nil {
		return nil, err
	}
	id, ok := FindUserIDByNameZip(st, args.FirstName, args.LastName, args.Zip)
	if !ok {
		return nil, ErrUserNotFound
	}
	return id, nil
}

func handleGetOrderDetails(st *world.State, kwargs map[string]any) (any, error) {
	var args getOrderDetailsArgs
	if err := decodeArgs(kwargs, &args); err != nil {
		return nil, err
	}
	order, ok := GetOrderDetails(st, args.OrderID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, args.OrderID)
	}
	return order, nil
}

func handleGetUserDetails(st *world.State, kwargs map[string]any) (any, error) {
	var args getUserDetailsArgs
	if err := decodeArgs(kwargs, &args); err != nil {
		return nil, err
	}
	user, ok := GetUserDetails(st, args.UserID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, args.UserID)
	}
	return user, nil
}

func handleGetProductDetails(st *world.State, kwargs map[string]any) (any, error) {
	var args getProductDetailsArgs
	if err := decodeArgs(kwargs, &args); err != nil {
		return nil, err
	}
	product, ok := GetProductDetails(st, args.ProductID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, args.ProductID)
	}
	return product, nil
}

func handleExchange(st *world.State, kwargs map[string]any) (any, error) {
	var args exchangeArgs
	if err := decodeArgs(kwargs, &args); err != nil {
		return nil, err
	}
	return ExchangeDeliveredOrderItems(st, args.OrderID, args.ItemIDs, args.NewItemIDs, args.PaymentMethodID)
}

func handleCancel(st *world.State, kwargs map[string]any) (any, error) {
	var args cancelArgs
	if err := decodeArgs(kwargs, &args); err != nil {
		return nil, err
	}
	return CancelPendingOrder(st, args.OrderID, args.Reason)
}
