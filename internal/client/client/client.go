package client

import (
	"context"

	"github.com/dmitrijs2005/vibecart/internal/client/models"
)

// UploadFile is one image to send to the upload endpoints.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type Client interface {
	Signup(ctx context.Context, name, email, password string) (*models.AuthPayload, error)
	Login(ctx context.Context, email, password string) (*models.AuthPayload, error)
	Me(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, token, name, email string) (*models.User, error)

	ListProducts(ctx context.Context, token string) ([]models.Product, error)
	GetProduct(ctx context.Context, token, id string) (*models.Product, error)
	MyProducts(ctx context.Context, token string) ([]models.Product, error)
	CreateProduct(ctx context.Context, token string, in models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, token, id string, in models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, token, id string) error

	GetCart(ctx context.Context, token string) (*models.Cart, error)
	AddToCart(ctx context.Context, token, productID string, quantity int) (*models.Cart, error)
	UpdateCartItem(ctx context.Context, token, productID string, quantity int) (*models.Cart, error)
	RemoveCartItem(ctx context.Context, token, productID string) (*models.Cart, error)
	ClearCart(ctx context.Context, token string) (*models.Cart, error)

	UploadImage(ctx context.Context, token string, file UploadFile) (*models.UploadedImage, error)
	UploadImages(ctx context.Context, token string, files []UploadFile) ([]models.UploadedImage, error)
}
