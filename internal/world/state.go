package world

import "slices"

// State is the world snapshot: every map is keyed by entity id. A State
// is a value owned by exactly one execution context; two timelines must
// each work on their own Clone.
type State struct {
	Users    map[string]*User    `json:"users"`
	Orders   map[string]*Order   `json:"orders"`
	Products map[string]*Product `json:"products"`
}

// UserByID resolves a user; missing maps behave as empty.
func (s *State) UserByID(id string) (*User, bool) {
	u, ok := s.Users[id]
	return u, ok && u != nil
}

// OrderByID resolves an order; missing maps behave as empty.
func (s *State) OrderByID(id string) (*Order, bool) {
	o, ok := s.Orders[id]
	return o, ok && o != nil
}

// ProductByID resolves a product; missing maps behave as empty.
func (s *State) ProductByID(id string) (*Product, bool) {
	p, ok := s.Products[id]
	return p, ok && p != nil
}

// Clone deep-copies the state so two action streams never alias.
// Nil-versus-empty is preserved everywhere so a clone's canonical
// fingerprint always equals the original's.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	return &State{
		Users:    cloneMap(s.Users, (*User).clone),
		Orders:   cloneMap(s.Orders, (*Order).clone),
		Products: cloneMap(s.Products, (*Product).clone),
	}
}

func cloneMap[T any](src map[string]*T, cloneElem func(*T) *T) map[string]*T {
	if src == nil {
		return nil
	}
	out := make(map[string]*T, len(src))
	for id, v := range src {
		out[id] = cloneElem(v)
	}
	return out
}

func (u *User) clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.PaymentMethods = cloneMap(u.PaymentMethods, func(pm *PaymentMethod) *PaymentMethod {
		if pm == nil {
			return nil
		}
		pmCopy := *pm
		return &pmCopy
	})
	cp.Orders = slices.Clone(u.Orders)
	return &cp
}

func (o *Order) clone() *Order {
	if o == nil {
		return nil
	}
	cp := *o
	if o.Address != nil {
		addr := *o.Address
		cp.Address = &addr
	}
	if o.Items != nil {
		cp.Items = make([]Item, len(o.Items))
		for i, it := range o.Items {
			cp.Items[i] = it
			cp.Items[i].Options = cloneOptions(it.Options)
		}
	}
	cp.PaymentHistory = slices.Clone(o.PaymentHistory)
	if o.Fulfillments != nil {
		cp.Fulfillments = make([]Fulfillment, len(o.Fulfillments))
		for i, f := range o.Fulfillments {
			cp.Fulfillments[i] = Fulfillment{
				TrackingID: slices.Clone(f.TrackingID),
				ItemIDs:    slices.Clone(f.ItemIDs),
			}
		}
	}
	cp.ExchangeItems = slices.Clone(o.ExchangeItems)
	cp.ExchangeNewItems = slices.Clone(o.ExchangeNewItems)
	if o.ExchangePriceDifference != nil {
		diff := *o.ExchangePriceDifference
		cp.ExchangePriceDifference = &diff
	}
	return &cp
}

func (p *Product) clone() *Product {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Variants = cloneMap(p.Variants, func(v *Variant) *Variant {
		if v == nil {
			return nil
		}
		vCopy := *v
		vCopy.Options = cloneOptions(v.Options)
		return &vCopy
	})
	return &cp
}

// cloneOptions copies one level deep; option values are scalars in
// practice, nested values would still be shared.
func cloneOptions(opts map[string]any) map[string]any {
	if opts == nil {
		return nil
	}
	out := make(map[string]any, len(opts))
	for k, v := range opts {
		out[k] = v
	}
	return out
}
