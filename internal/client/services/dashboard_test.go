package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/vibecart/internal/client/client"
	"github.com/dmitrijs2005/vibecart/internal/client/models"
	"github.com/dmitrijs2005/vibecart/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_Stats(t *testing.T) {
	f := newFixture(t)
	svc := NewDashboardService(f.client, f.session, logging.Discard())
	f.signIn(t, "T")
	f.client.MineRet = []models.Product{
		{ID: "a", Price: 10, Stock: 2, IsPublic: true},
		{ID: "b", Price: 5, Stock: 10, IsPublic: false},
		{ID: "c", Price: 1.5, Stock: 4, IsPublic: true},
	}

	d, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.DashboardStats{
		TotalProducts:   3,
		PublicProducts:  2,
		PrivateProducts: 1,
		TotalValue:      76,
		LowStock:        2,
	}, d.Stats)
	assert.Len(t, d.Products, 3)
}

func TestDashboard_NotSignedIn(t *testing.T) {
	f := newFixture(t)
	svc := NewDashboardService(f.client, f.session, logging.Discard())

	_, err := svc.Load(context.Background())
	assert.EqualError(t, err, "Please login to view dashboard")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestDashboard_Unauthorized(t *testing.T) {
	f := newFixture(t)
	svc := NewDashboardService(f.client, f.session, logging.Discard())
	f.signIn(t, "T")
	f.client.MineErr = &client.APIError{Status: http.StatusUnauthorized, Message: "jwt expired"}

	_, err := svc.Load(context.Background())
	assert.EqualError(t, err, "Please login to view dashboard")
	assert.False(t, f.session.IsAuthenticated())
}

func TestDashboard_OtherFailure(t *testing.T) {
	f := newFixture(t)
	svc := NewDashboardService(f.client, f.session, logging.Discard())
	f.signIn(t, "T")
	f.client.MineErr = client.ErrUnavailable

	_, err := svc.Load(context.Background())
	assert.EqualError(t, err, "Failed to fetch dashboard data")
}
