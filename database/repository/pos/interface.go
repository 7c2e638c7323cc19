package posRepo

import (
	"context"
	"time"

	"simba/models"
)

// TransactionRepository defines methods for POS transaction records.
type TransactionRepository interface {
	Insert(ctx context.Context, txn *models.POSTransaction) error
	// GetByTransactionID returns nil, nil when no transaction matches.
	GetByTransactionID(ctx context.Context, transactionID string) (*models.POSTransaction, error)
	// GetByID looks a transaction up by its document id.
	GetByID(ctx context.Context, id string) (*models.POSTransaction, error)
	// MarkRefunded sets status on the record unless it is already REFUNDED.
	// It returns false when nothing was updated.
	MarkRefunded(ctx context.Context, id, status string) (bool, error)
	SetBookingID(ctx context.Context, id, bookingID string) error
	List(ctx context.Context, filter models.TransactionFilter) ([]models.POSTransaction, int64, error)
	// SalesSince totals completed SALE transactions created at or after since.
	SalesSince(ctx context.Context, since time.Time) (models.SalesWindow, error)
	Recent(ctx context.Context, limit int) ([]models.POSTransaction, error)
}
