// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

//go:generate mockgen -source=network.go -destination=../mock/network.go -package=mock

import (
	"context"

	"golang-ifrename/internal/types"
)

// InterfaceRenameManager is the primary port for interface renaming.
// It follows the Ports and Adapters (Hexagonal Architecture) pattern where this is the "port"
// and the rename adapter is the implementation.
type InterfaceRenameManager interface {
	// Plan computes the rename transactions for the current machine without applying them.
	Plan(ctx context.Context) ([]types.Transaction, error)

	// Run computes the rename transactions, applies them in order and persists the
	// resulting names for the next boot.
	Run(ctx context.Context) error
}
