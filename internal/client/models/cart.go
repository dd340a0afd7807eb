package models

import (
	"bytes"
	"encoding/json"
)

// Cart is the server's cart snapshot. Totals are server-computed and are
// never recalculated on the client.
type Cart struct {
	ID         string     `json:"_id,omitempty"`
	Items      []CartLine `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice float64    `json:"totalPrice"`
}

// CartLine is one product in the cart with the unit price captured when it
// was added.
type CartLine struct {
	Product  ProductRef `json:"product"`
	Price    float64    `json:"price"`
	Quantity int        `json:"quantity"`
}

// ProductRef is a cart line's product. The API returns it populated, but an
// unpopulated line carries only the id string.
type ProductRef struct {
	Product
}

func (r *ProductRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		r.Product = Product{ID: id}
		return nil
	}
	return json.Unmarshal(b, &r.Product)
}

// Line returns the line for productID, if present.
func (c *Cart) Line(productID string) (CartLine, bool) {
	if c == nil {
		return CartLine{}, false
	}
	for _, l := range c.Items {
		if l.Product.ID == productID {
			return l, true
		}
	}
	return CartLine{}, false
}

// Clone returns a deep copy so callers cannot mutate a store's snapshot.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	out := *c
	out.Items = make([]CartLine, len(c.Items))
	for i, l := range c.Items {
		l.Product.Images = append([]string(nil), l.Product.Images...)
		out.Items[i] = l
	}
	return &out
}
