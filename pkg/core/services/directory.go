package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/careops/careshift/pkg/core/model"
)

// DirectoryStore defines the lookups behind the staff and client listings
type DirectoryStore interface {
	ListStaff(ctx context.Context, companyID string) ([]model.Staff, error)
	ListClients(ctx context.Context, companyID string) ([]model.Client, error)
}

// ListActiveStaff returns the company's staff who can currently take shifts
func ListActiveStaff(ctx context.Context, store DirectoryStore, logger *zap.Logger, companyID string) ([]model.Staff, error) {
	staff, err := store.ListStaff(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	active := make([]model.Staff, 0, len(staff))
	for _, member := range staff {
		if member.IsActive {
			active = append(active, member)
		}
	}

	logger.Debug("Listed staff",
		zap.String("company_id", companyID),
		zap.Int("total", len(staff)),
		zap.Int("active", len(active)))

	return active, nil
}

// ListActiveClients returns the company's clients currently receiving care
func ListActiveClients(ctx context.Context, store DirectoryStore, logger *zap.Logger, companyID string) ([]model.Client, error) {
	clients, err := store.ListClients(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	active := make([]model.Client, 0, len(clients))
	for _, client := range clients {
		if client.IsActive {
			active = append(active, client)
		}
	}

	logger.Debug("Listed clients",
		zap.String("company_id", companyID),
		zap.Int("total", len(clients)),
		zap.Int("active", len(active)))

	return active, nil
}
