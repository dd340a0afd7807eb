package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/vibecart/internal/client/client"
	"github.com/dmitrijs2005/vibecart/internal/client/models"
	"github.com/dmitrijs2005/vibecart/internal/client/validation"
	"github.com/dmitrijs2005/vibecart/internal/logging"
)

const (
	msgListFailed    = "Failed to fetch products"
	msgGetFailed     = "Failed to fetch product details"
	msgMineFailed    = "Failed to fetch your products"
	msgCreateFailed  = "Failed to create product"
	msgUpdateProduct = "Failed to update product"
	msgDeleteFailed  = "Failed to delete product"
	msgSellerNoAuth  = "Please login to manage your products"
)

// CatalogService browses products and manages the signed-in seller's own.
type CatalogService interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Mine(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, in models.ProductInput) (*models.Product, error)
	Update(ctx context.Context, id string, in models.ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type catalogService struct {
	client  client.Client
	session CredentialSource
	log     logging.Logger
}

func NewCatalogService(c client.Client, session CredentialSource, log logging.Logger) CatalogService {
	return &catalogService{client: c, session: session, log: log.With("component", "catalog")}
}

// List returns the public catalog. The credential is sent when held.
func (c *catalogService) List(ctx context.Context) ([]models.Product, error) {
	token := c.session.Credential()
	products, err := c.client.ListProducts(ctx, token)
	if err != nil {
		return nil, c.fail(ctx, token, "list", err, msgListFailed)
	}
	return products, nil
}

func (c *catalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	token := c.session.Credential()
	p, err := c.client.GetProduct(ctx, token, id)
	if err != nil {
		return nil, c.fail(ctx, token, "get", err, msgGetFailed)
	}
	return p, nil
}

func (c *catalogService) Mine(ctx context.Context) ([]models.Product, error) {
	token, err := c.sellerCredential()
	if err != nil {
		return nil, err
	}
	products, err := c.client.MyProducts(ctx, token)
	if err != nil {
		return nil, c.fail(ctx, token, "mine", err, msgMineFailed)
	}
	return products, nil
}

// Create validates in locally before sending it.
func (c *catalogService) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	if err := validation.Product(in); err != nil {
		return nil, err
	}
	token, err := c.sellerCredential()
	if err != nil {
		return nil, err
	}
	p, err := c.client.CreateProduct(ctx, token, in)
	if err != nil {
		return nil, c.fail(ctx, token, "create", err, msgCreateFailed)
	}
	c.log.Info(ctx, "product created", "product", p.ID)
	return p, nil
}

func (c *catalogService) Update(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	if err := validation.Product(in); err != nil {
		return nil, err
	}
	token, err := c.sellerCredential()
	if err != nil {
		return nil, err
	}
	p, err := c.client.UpdateProduct(ctx, token, id, in)
	if err != nil {
		return nil, c.fail(ctx, token, "update", err, msgUpdateProduct)
	}
	c.log.Info(ctx, "product updated", "product", id)
	return p, nil
}

func (c *catalogService) Delete(ctx context.Context, id string) error {
	token, err := c.sellerCredential()
	if err != nil {
		return err
	}
	if err := c.client.DeleteProduct(ctx, token, id); err != nil {
		return c.fail(ctx, token, "delete", err, msgDeleteFailed)
	}
	c.log.Info(ctx, "product deleted", "product", id)
	return nil
}

func (c *catalogService) sellerCredential() (string, error) {
	token := c.session.Credential()
	if token == "" {
		return "", &Failure{Message: msgSellerNoAuth, Err: ErrUnauthenticated}
	}
	return token, nil
}

func (c *catalogService) fail(ctx context.Context, token, op string, err error, fallback string) error {
	c.log.Warn(ctx, "catalog request failed", "op", op, "error", err)
	if errors.Is(err, client.ErrUnauthorized) {
		c.session.Invalidate(ctx, token)
	}
	return failure(err, fallback)
}
