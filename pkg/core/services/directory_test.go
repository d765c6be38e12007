package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/careops/careshift/pkg/core/model"
	"github.com/careops/careshift/pkg/inmem"
)

func TestListActiveStaff_FiltersInactive(t *testing.T) {
	store := inmem.NewStore()
	store.PutStaff(model.Staff{ID: "staff-1", CompanyID: "co-1", FirstName: "Priya", LastName: "Shah", IsActive: true})
	store.PutStaff(model.Staff{ID: "staff-2", CompanyID: "co-1", FirstName: "Lena", LastName: "Okafor", IsActive: false})
	store.PutStaff(model.Staff{ID: "staff-3", CompanyID: "co-2", FirstName: "Omar", LastName: "Aziz", IsActive: true})

	staff, err := ListActiveStaff(context.Background(), store, zap.NewNop(), "co-1")
	require.NoError(t, err)

	require.Len(t, staff, 1)
	assert.Equal(t, "staff-1", staff[0].ID)
}

func TestListActiveClients_FiltersInactive(t *testing.T) {
	store := inmem.NewStore()
	store.PutClient(model.Client{ID: "client-1", CompanyID: "co-1", FirstName: "Ada", LastName: "Morris", IsActive: true})
	store.PutClient(model.Client{ID: "client-2", CompanyID: "co-1", FirstName: "Bill", LastName: "Hart", IsActive: false})

	clients, err := ListActiveClients(context.Background(), store, zap.NewNop(), "co-1")
	require.NoError(t, err)

	require.Len(t, clients, 1)
	assert.Equal(t, "client-1", clients[0].ID)
}
