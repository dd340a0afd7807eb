package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/vibecart/internal/client/client"
	"github.com/dmitrijs2005/vibecart/internal/client/models"
	"github.com/dmitrijs2005/vibecart/internal/logging"
)

const (
	msgDashboardNoAuth = "Please login to view dashboard"
	msgDashboardFailed = "Failed to fetch dashboard data"
)

// Dashboard is the seller overview: own products plus derived figures.
type Dashboard struct {
	Products []models.Product
	Stats    models.DashboardStats
}

type DashboardService struct {
	client  client.Client
	session CredentialSource
	log     logging.Logger
}

func NewDashboardService(c client.Client, session CredentialSource, log logging.Logger) *DashboardService {
	return &DashboardService{client: c, session: session, log: log.With("component", "dashboard")}
}

// Load fetches the seller's products and computes the stats. A rejected
// credential reads as "not signed in".
func (d *DashboardService) Load(ctx context.Context) (*Dashboard, error) {
	token := d.session.Credential()
	if token == "" {
		return nil, &Failure{Message: msgDashboardNoAuth, Err: ErrUnauthenticated}
	}

	products, err := d.client.MyProducts(ctx, token)
	if err != nil {
		d.log.Warn(ctx, "dashboard request failed", "error", err)
		if errors.Is(err, client.ErrUnauthorized) {
			d.session.Invalidate(ctx, token)
			return nil, &Failure{Message: msgDashboardNoAuth, Err: err}
		}
		return nil, failure(err, msgDashboardFailed)
	}
	if products == nil {
		products = []models.Product{}
	}
	return &Dashboard{Products: products, Stats: models.ComputeStats(products)}, nil
}
