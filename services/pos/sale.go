package pos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"simba/models"
	"simba/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// defaultTripLead is how far ahead a POS booking is dated when no trip date is given.
const defaultTripLead = 7 * 24 * time.Hour

func validateSale(req *models.SaleRequest) error {
	if len(req.Items) == 0 {
		return utils.NewValidationError("items", "at least one item is required")
	}
	req.Customer.Name = strings.TrimSpace(req.Customer.Name)
	req.Customer.Email = strings.ToLower(strings.TrimSpace(req.Customer.Email))
	req.Customer.Phone = strings.TrimSpace(req.Customer.Phone)
	if req.Customer.Name == "" {
		return utils.NewValidationError("customer.name", "is required")
	}
	if req.Customer.Email == "" {
		return utils.NewValidationError("customer.email", "is required")
	}
	if !models.IsPaymentMethod(req.PaymentMethod) {
		return utils.NewValidationError("paymentMethod", fmt.Sprintf("unsupported payment method %q", req.PaymentMethod))
	}
	if req.TripDate != nil && *req.TripDate != "" {
		if _, err := time.Parse(utils.DateLayout, *req.TripDate); err != nil {
			return utils.NewValidationError("tripDate", "must be YYYY-MM-DD")
		}
	}
	return nil
}

// Sale prices the cart, stores a COMPLETED SALE and, when any item names a
// tour, creates one paid booking from the first such item.
func (s *DefaultPOSService) Sale(ctx context.Context, req models.SaleRequest, processedBy string) (*models.POSTransaction, error) {
	if err := validateSale(&req); err != nil {
		return nil, err
	}
	totals, err := ComputeTotals(req.Items, req.Discount)
	if err != nil {
		return nil, err
	}
	if processedBy == "" {
		processedBy = "admin"
	}

	now := s.now()
	txn := &models.POSTransaction{
		ID:            uuid.New().String(),
		TransactionID: NewTransactionID(now),
		Type:          models.TxnSale,
		Customer:      req.Customer,
		Items:         totals.Items,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Discount:      totals.Discount,
		DiscountCode:  req.DiscountCode,
		Total:         totals.Total,
		AmountPaid:    totals.Total,
		AmountDue:     0,
		PaymentMethod: req.PaymentMethod,
		Status:        models.TxnCompleted,
		ProcessedBy:   processedBy,
		ReceiptNumber: s.Receipts.Next(ctx, now),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.PaymentDetails != nil {
		txn.PaymentDetails = *req.PaymentDetails
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
	}

	tourItem := firstTourItem(totals.Items)
	if tourItem != nil {
		txn.TourID = tourItem.TourID
	}

	if err := s.Transactions.Insert(ctx, txn); err != nil {
		s.record(ctx, saleActivity(txn, processedBy, false))
		return nil, utils.NewPersistenceError("insert sale transaction", err, map[string]string{
			"transactionId": txn.TransactionID,
		})
	}

	if tourItem != nil {
		s.linkBooking(ctx, txn, tourItem, req.TripDate, now)
	}

	s.record(ctx, saleActivity(txn, processedBy, true))
	return txn, nil
}

// linkBooking creates the booking for a tour sale and stores its id on txn.
// The sale stays valid if either step fails; the failure is returned to the
// caller as a warning on the transaction.
func (s *DefaultPOSService) linkBooking(ctx context.Context, txn *models.POSTransaction, item *models.LineItem, tripDate *string, now time.Time) {
	booking := &models.Booking{
		ID:            uuid.New().String(),
		TourID:        *item.TourID,
		TourTitle:     item.Name,
		CustomerName:  txn.Customer.Name,
		CustomerEmail: txn.Customer.Email,
		CustomerPhone: txn.Customer.Phone,
		BookingDate:   now.Format(utils.DateLayout),
		TripDate:      now.Add(defaultTripLead).Format(utils.DateLayout),
		Participants:  item.Quantity,
		TotalAmount:   txn.Total,
		Status:        models.BookingConfirmed,
		PaymentStatus: models.PaymentPaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if tripDate != nil && *tripDate != "" {
		booking.TripDate = *tripDate
	}
	if s.Customers != nil {
		customer, err := s.Customers.GetByEmail(ctx, txn.Customer.Email)
		if err != nil {
			zap.L().Warn("pos: customer lookup failed, booking left unlinked",
				zap.String("email", txn.Customer.Email), zap.Error(err))
		} else if customer != nil {
			id := customer.ID
			booking.UserID = &id
		}
	}

	logger := utils.GetLogger().With(
		zap.String("transactionId", txn.TransactionID),
		zap.String("bookingId", booking.ID),
	)

	if err := s.Bookings.Create(ctx, booking); err != nil {
		perr := utils.NewPersistenceError("create booking for sale", err, map[string]string{
			"transactionId": txn.TransactionID,
		})
		logger.Error("pos: sale saved without booking", zap.Error(perr))
		txn.Warnings = append(txn.Warnings, perr.Error())
		return
	}

	if err := s.Transactions.SetBookingID(ctx, txn.ID, booking.ID); err != nil {
		perr := utils.NewPersistenceError("link booking to sale", err, map[string]string{
			"transactionId": txn.TransactionID,
			"bookingId":     booking.ID,
		})
		logger.Error("pos: booking created but not linked to sale", zap.Error(perr))
		txn.Warnings = append(txn.Warnings, perr.Error())
		return
	}
	txn.BookingID = &booking.ID
}

func firstTourItem(items []models.LineItem) *models.LineItem {
	for i := range items {
		if items[i].TourID != nil {
			return &items[i]
		}
	}
	return nil
}

func saleActivity(txn *models.POSTransaction, processedBy string, ok bool) models.ActivityLog {
	entry := models.ActivityLog{
		Action:     models.ActionPOSSale,
		AdminID:    processedBy,
		EntityType: models.EntityPOS,
		EntityID:   &txn.TransactionID,
		Success:    ok,
		Metadata: map[string]interface{}{
			"receiptNumber": txn.ReceiptNumber,
			"total":         txn.Total,
			"paymentMethod": txn.PaymentMethod,
			"items":         len(txn.Items),
		},
	}
	if ok {
		entry.Severity = models.SeverityInfo
		entry.Description = fmt.Sprintf("POS sale %s for %.2f to %s", txn.TransactionID, txn.Total, txn.Customer.Name)
	} else {
		entry.Severity = models.SeverityError
		entry.Description = fmt.Sprintf("POS sale %s failed to save", txn.TransactionID)
	}
	if txn.BookingID != nil {
		entry.Metadata["bookingId"] = *txn.BookingID
	}
	if len(txn.Warnings) > 0 {
		entry.Severity = models.SeverityWarning
		entry.Metadata["warnings"] = txn.Warnings
	}
	return entry
}
