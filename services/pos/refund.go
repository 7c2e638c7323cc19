package pos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"simba/models"
	"simba/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Refund reverses all or part of a prior sale. The reversing transaction,
// the original's status and the linked booking are written in that order
// inside one store transaction when the deployment supports it.
func (s *DefaultPOSService) Refund(ctx context.Context, req models.RefundRequest, processedBy string) (*models.POSTransaction, error) {
	req.TransactionID = strings.TrimSpace(req.TransactionID)
	req.Reason = strings.TrimSpace(req.Reason)
	if req.TransactionID == "" {
		return nil, utils.NewValidationError("transactionId", "is required")
	}
	if req.Reason == "" {
		return nil, utils.NewValidationError("reason", "is required")
	}
	if req.Amount != nil && *req.Amount <= 0 {
		return nil, utils.NewValidationError("amount", "must be greater than zero")
	}
	if processedBy == "" {
		processedBy = "admin"
	}

	original, err := s.Transactions.GetByTransactionID(ctx, req.TransactionID)
	if err != nil {
		return nil, utils.NewPersistenceError("load original transaction", err, map[string]string{
			"transactionId": req.TransactionID,
		})
	}
	if original == nil {
		return nil, utils.NewNotFoundError("transaction", req.TransactionID)
	}
	switch {
	case original.Status == models.TxnRefunded:
		return nil, &utils.InvalidStateError{Message: fmt.Sprintf("transaction %s is already refunded", original.TransactionID)}
	case original.Type == models.TxnRefund || original.Type == models.TxnPartialRefund:
		return nil, &utils.InvalidStateError{Message: fmt.Sprintf("transaction %s is a refund and cannot be refunded", original.TransactionID)}
	}

	total := decimal.NewFromFloat(original.Total)
	amount := total
	if req.Amount != nil {
		amount = decimal.NewFromFloat(*req.Amount)
	}
	full := amount.GreaterThanOrEqual(total)
	if full {
		amount = total
	}
	refundValue := amount.Neg().Round(2).InexactFloat64()

	refundType, originalStatus := models.TxnPartialRefund, models.TxnPartiallyRefunded
	if full {
		refundType, originalStatus = models.TxnRefund, models.TxnRefunded
	}

	var booking *models.Booking
	if original.BookingID != nil {
		booking, err = s.Bookings.GetByID(ctx, *original.BookingID)
		if err != nil {
			return nil, utils.NewPersistenceError("load linked booking", err, map[string]string{
				"transactionId": original.TransactionID,
				"bookingId":     *original.BookingID,
			})
		}
	}

	now := s.now()
	items := make([]models.LineItem, len(original.Items))
	copy(items, original.Items)
	refund := &models.POSTransaction{
		ID:            uuid.New().String(),
		TransactionID: NewTransactionID(now),
		Type:          refundType,
		BookingID:     original.BookingID,
		TourID:        original.TourID,
		Customer:      original.Customer,
		Items:         items,
		Subtotal:      refundValue,
		Tax:           0,
		Discount:      0,
		Total:         refundValue,
		AmountPaid:    refundValue,
		AmountDue:     0,
		PaymentMethod: original.PaymentMethod,
		Status:        models.TxnCompleted,
		ProcessedBy:   processedBy,
		Notes:         fmt.Sprintf("Refund for %s: %s", original.TransactionID, req.Reason),
		ReceiptNumber: s.Receipts.Next(ctx, now),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	ids := map[string]string{
		"originalTransactionId": original.TransactionID,
		"refundTransactionId":   refund.TransactionID,
	}
	if original.BookingID != nil {
		ids["bookingId"] = *original.BookingID
	}

	err = s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.Transactions.Insert(ctx, refund); err != nil {
			return utils.NewPersistenceError("insert refund transaction", err, ids)
		}
		updated, err := s.Transactions.MarkRefunded(ctx, original.ID, originalStatus)
		if err != nil {
			return utils.NewPersistenceError("update original transaction status", err, ids)
		}
		if !updated {
			// The refund row is already written when the store is not atomic.
			return utils.NewPersistenceError("update original transaction status",
				&utils.InvalidStateError{Message: fmt.Sprintf("transaction %s is already refunded", original.TransactionID)}, ids)
		}
		if booking != nil {
			if _, err := s.Bookings.SetStatus(ctx, booking.ID, models.BookingCancelled, models.PaymentRefunded); err != nil {
				return utils.NewPersistenceError("cancel linked booking", err, ids)
			}
		}
		return nil
	})
	if err != nil {
		s.record(ctx, refundActivity(refund, original, processedBy, req.Reason, false))
		var perr *utils.PersistenceError
		if errors.As(err, &perr) {
			utils.GetLogger().Error("pos: refund failed, reconcile manually", zap.Error(err))
		}
		return nil, err
	}

	if original.BookingID != nil && booking == nil {
		msg := fmt.Sprintf("linked booking %s no longer exists; nothing cancelled", *original.BookingID)
		utils.GetLogger().Warn("pos: "+msg, zap.String("transactionId", original.TransactionID))
		refund.Warnings = append(refund.Warnings, msg)
	}

	s.record(ctx, refundActivity(refund, original, processedBy, req.Reason, true))
	return refund, nil
}

func refundActivity(refund, original *models.POSTransaction, processedBy, reason string, ok bool) models.ActivityLog {
	entry := models.ActivityLog{
		Action:     models.ActionPOSRefund,
		AdminID:    processedBy,
		EntityType: models.EntityPOS,
		EntityID:   &original.TransactionID,
		Success:    ok,
		Severity:   models.SeverityWarning,
		Metadata: map[string]interface{}{
			"refundTransactionId": refund.TransactionID,
			"type":                refund.Type,
			"amount":              refund.Total,
			"reason":              reason,
		},
		Description: fmt.Sprintf("Refund of %.2f on %s", -refund.Total, original.TransactionID),
	}
	if !ok {
		entry.Severity = models.SeverityError
		entry.Description = fmt.Sprintf("Refund on %s failed", original.TransactionID)
	}
	return entry
}
