package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/clancy-dev/receipts-api/internal/domain/entity"
)

// ReceiptRepository defines the interface for receipt data operations.
// The store is the only persistence boundary; callers re-sort and filter the
// List result themselves, so no ordering is promised here.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	// GetByID returns (nil, nil) when no receipt exists for id.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	// List returns all receipts in storage order.
	List(ctx context.Context) ([]entity.Receipt, error)
	// Delete removes a receipt. Deleting a missing id succeeds, which keeps
	// double-submitted deletes harmless.
	Delete(ctx context.Context, id uuid.UUID) error
}
