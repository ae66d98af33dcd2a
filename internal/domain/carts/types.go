package carts

import (
	"context"
	"errors"
	"time"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
)

type Cart struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Line is one product in a cart, priced at read time.
type Line struct {
	ProductID    int64   `json:"id"`
	Title        string  `json:"title"`
	Img          string  `json:"img"`
	Price        float64 `json:"price"`
	Discount     float64 `json:"discount"`
	Quantity     int     `json:"quantity"`
	CategorySlug string  `json:"category"`
	Topup        bool    `json:"topup"`
}

// UnitPrice is the price after the product discount, never below zero.
func (l Line) UnitPrice() float64 {
	if p := l.Price - l.Discount; p > 0 {
		return p
	}
	return 0
}

// CartView is what /carts/me returns. A user without a cart gets an empty view
// with ID 0.
type CartView struct {
	ID       int64   `json:"id"`
	Products []Line  `json:"products"`
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Empty returns a view with a non-nil product list.
func Empty() *CartView {
	return &CartView{Products: []Line{}}
}

func (v *CartView) recompute() {
	v.Subtotal, v.Discount, v.Total = 0, 0, 0
	for _, l := range v.Products {
		q := float64(l.Quantity)
		v.Subtotal += l.Price * q
		v.Total += l.UnitPrice() * q
	}
	v.Discount = v.Subtotal - v.Total
}

type Store interface {
	GetView(ctx context.Context, userID int64) (*CartView, error)
	AddItem(ctx context.Context, userID, productID int64, qty int) error
	RemoveItem(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
}
