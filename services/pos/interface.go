package pos

import (
	"context"
	"time"

	"simba/database"
	"simba/models"
	"simba/services/activity"
)

// POSService runs the point-of-sale workflows.
type POSService interface {
	Sale(ctx context.Context, req models.SaleRequest, processedBy string) (*models.POSTransaction, error)
	Refund(ctx context.Context, req models.RefundRequest, processedBy string) (*models.POSTransaction, error)
	Summary(ctx context.Context) (*models.POSSummary, error)
	ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.POSTransaction, int64, error)
	GetTransaction(ctx context.Context, transactionID string) (*models.POSTransaction, error)
}

// TransactionStore persists POS transactions.
type TransactionStore interface {
	Insert(ctx context.Context, txn *models.POSTransaction) error
	GetByTransactionID(ctx context.Context, transactionID string) (*models.POSTransaction, error)
	GetByID(ctx context.Context, id string) (*models.POSTransaction, error)
	MarkRefunded(ctx context.Context, id, status string) (bool, error)
	SetBookingID(ctx context.Context, id, bookingID string) error
	List(ctx context.Context, filter models.TransactionFilter) ([]models.POSTransaction, int64, error)
	SalesSince(ctx context.Context, since time.Time) (models.SalesWindow, error)
	Recent(ctx context.Context, limit int) ([]models.POSTransaction, error)
}

// BookingStore is the part of the booking collection the workflows touch.
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	SetStatus(ctx context.Context, id, status, paymentStatus string) (bool, error)
}

// CustomerFinder resolves a registered customer by normalized email.
type CustomerFinder interface {
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
}

// DefaultPOSService is the production implementation.
type DefaultPOSService struct {
	Transactions TransactionStore
	Bookings     BookingStore
	Customers    CustomerFinder
	Tx           database.Transactor
	Receipts     ReceiptNumberer
	Activity     activity.Recorder
	Now          func() time.Time
}

func (s *DefaultPOSService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultPOSService) record(ctx context.Context, entry models.ActivityLog) {
	if s.Activity != nil {
		s.Activity.Record(ctx, entry)
	}
}
