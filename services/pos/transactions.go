package pos

import (
	"context"

	"simba/models"
	"simba/utils"
)

func (s *DefaultPOSService) ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.POSTransaction, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	txns, total, err := s.Transactions.List(ctx, filter)
	if err != nil {
		return nil, 0, utils.NewPersistenceError("list transactions", err, nil)
	}
	return txns, total, nil
}

// GetTransaction resolves id as a TXN- transaction id first, then as a document id.
func (s *DefaultPOSService) GetTransaction(ctx context.Context, transactionID string) (*models.POSTransaction, error) {
	txn, err := s.Transactions.GetByTransactionID(ctx, transactionID)
	if err == nil && txn == nil {
		txn, err = s.Transactions.GetByID(ctx, transactionID)
	}
	if err != nil {
		return nil, utils.NewPersistenceError("load transaction", err, map[string]string{"transactionId": transactionID})
	}
	if txn == nil {
		return nil, utils.NewNotFoundError("transaction", transactionID)
	}
	return txn, nil
}
