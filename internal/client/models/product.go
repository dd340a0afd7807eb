package models

import "time"

// Product is a catalog entry. Stock bounds what a shopper may put in the cart.
type Product struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category,omitempty"`
	Image       string    `json:"image,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Stock       int       `json:"stock"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// LowStockThreshold marks products the seller dashboard flags.
const LowStockThreshold = 5

// ProductInput is the body of create and update requests.
type ProductInput struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Category    string   `json:"category" validate:"required"`
	Image       string   `json:"image,omitempty"`
	Images      []string `json:"images,omitempty"`
	Stock       int      `json:"stock" validate:"gte=0"`
	IsPublic    bool     `json:"isPublic"`
}

// InputFrom pre-fills an edit form from an existing product.
func InputFrom(p Product) ProductInput {
	return ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		Images:      append([]string(nil), p.Images...),
		Stock:       p.Stock,
		IsPublic:    p.IsPublic,
	}
}

// DashboardStats summarises a seller's own products.
type DashboardStats struct {
	TotalProducts   int
	PublicProducts  int
	PrivateProducts int
	TotalValue      float64
	LowStock        int
}

// ComputeStats derives dashboard figures from a product list.
func ComputeStats(products []Product) DashboardStats {
	s := DashboardStats{TotalProducts: len(products)}
	for _, p := range products {
		if p.IsPublic {
			s.PublicProducts++
		} else {
			s.PrivateProducts++
		}
		s.TotalValue += p.Price * float64(p.Stock)
		if p.Stock < LowStockThreshold {
			s.LowStock++
		}
	}
	return s
}

// UploadedImage is one entry of an upload response.
type UploadedImage struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
	Size     int64  `json:"size,omitempty"`
}
