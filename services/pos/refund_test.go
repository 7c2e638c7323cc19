package pos

import (
	"context"
	"errors"
	"testing"

	"simba/models"
	"simba/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedSale(t *testing.T, h *harness) *models.POSTransaction {
	t.Helper()
	txn, err := h.svc.Sale(context.Background(), safariSale(), "admin-1")
	require.NoError(t, err)
	require.NotNil(t, txn.BookingID)
	return txn
}

func TestPartialRefund(t *testing.T) {
	h := newHarness()
	sale := completedSale(t, h)

	refund, err := h.svc.Refund(context.Background(), models.RefundRequest{
		TransactionID: sale.TransactionID,
		Reason:        "guest left early",
		Amount:        floatPtr(300),
	}, "manager-1")
	require.NoError(t, err)

	assert.Equal(t, models.TxnPartialRefund, refund.Type)
	assert.Equal(t, models.TxnCompleted, refund.Status)
	assert.Equal(t, -300.0, refund.Total)
	assert.Equal(t, -300.0, refund.Subtotal)
	assert.Equal(t, -300.0, refund.AmountPaid)
	assert.Equal(t, 0.0, refund.Discount)
	assert.Equal(t, sale.PaymentMethod, refund.PaymentMethod)
	assert.Equal(t, sale.Customer, refund.Customer)
	assert.Len(t, refund.Items, len(sale.Items))
	assert.Contains(t, refund.Notes, sale.TransactionID)
	assert.Contains(t, refund.Notes, "guest left early")
	assert.NotEqual(t, sale.TransactionID, refund.TransactionID)
	assert.NotEqual(t, sale.ReceiptNumber, refund.ReceiptNumber)

	assert.Equal(t, models.TxnPartiallyRefunded, h.txns.get(sale.ID).Status)

	booking, _ := h.bookings.GetByID(context.Background(), *sale.BookingID)
	assert.Equal(t, models.BookingCancelled, booking.Status)
	assert.Equal(t, models.PaymentRefunded, booking.PaymentStatus)
	assert.Equal(t, 1, h.tx.calls)
}

func TestFullRefundWhenAmountOmitted(t *testing.T) {
	h := newHarness()
	sale := completedSale(t, h)

	refund, err := h.svc.Refund(context.Background(), models.RefundRequest{
		TransactionID: sale.TransactionID,
		Reason:        "cancelled trip",
	}, "manager-1")
	require.NoError(t, err)

	assert.Equal(t, models.TxnRefund, refund.Type)
	assert.Equal(t, -sale.Total, refund.Total)
	assert.Equal(t, models.TxnRefunded, h.txns.get(sale.ID).Status)
}

func TestRefundAboveTotalIsCappedAtTotal(t *testing.T) {
	h := newHarness()
	sale := completedSale(t, h)

	refund, err := h.svc.Refund(context.Background(), models.RefundRequest{
		TransactionID: sale.TransactionID,
		Reason:        "goodwill",
		Amount:        floatPtr(5000),
	}, "manager-1")
	require.NoError(t, err)
	assert.Equal(t, models.TxnRefund, refund.Type)
	assert.Equal(t, -950.0, refund.Total)
}

func TestRefundTwiceFails(t *testing.T) {
	h := newHarness()
	sale := completedSale(t, h)
	req := models.RefundRequest{TransactionID: sale.TransactionID, Reason: "cancelled trip"}

	_, err := h.svc.Refund(context.Background(), req, "manager-1")
	require.NoError(t, err)

	_, err = h.svc.Refund(context.Background(), req, "manager-1")
	var is *utils.InvalidStateError
	require.ErrorAs(t, err, &is)
	assert.Equal(t, 400, utils.StatusFor(err))
	assert.Equal(t, models.TxnRefunded, h.txns.get(sale.ID).Status)

	refunds := 0
	for _, txn := range h.txns.sorted() {
		if txn.Type == models.TxnRefund {
			refunds++
		}
	}
	assert.Equal(t, 1, refunds)
}

func TestRefundOfRefundIsRejected(t *testing.T) {
	h := newHarness()
	sale := completedSale(t, h)
	refund, err := h.svc.Refund(context.Background(), models.RefundRequest{
		TransactionID: sale.TransactionID, Reason: "partial", Amount: floatPtr(100),
	}, "manager-1")
	require.NoError(t, err)

	_, err = h.svc.Refund(context.Background(), models.RefundRequest{
		TransactionID: refund.TransactionID, Reason: "oops",
	}, "manager-1")
	var is *utils.InvalidStateError
	require.ErrorAs(t, err, &is)
}

func TestRefundValidation(t *testing.T) {
	h := newHarness()
	sale := completedSale(t, h)

	_, err := h.svc.Refund(context.Background(), models.RefundRequest{TransactionID: sale.TransactionID}, "m")
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "reason", ve.Field)

	_, err = h.svc.Refund(context.Background(), models.RefundRequest{
		TransactionID: sale.TransactionID, Reason: "x", Amount: floatPtr(0),
	}, "m")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "amount", ve.Field)

	assert.Equal(t, models.TxnCompleted, h.txns.get(sale.ID).Status)
}

func TestRefundUnknownTransaction(t *testing.T) {
	h := newHarness()
	_, err := h.svc.Refund(context.Background(), models.RefundRequest{TransactionID: "TXN-NOPE", Reason: "x"}, "m")
	var nf *utils.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 404, utils.StatusFor(err))
}

func TestRefundWithoutBooking(t *testing.T) {
	h := newHarness()
	req := safariSale()
	req.Items[0].TourID = nil
	sale, err := h.svc.Sale(context.Background(), req, "admin-1")
	require.NoError(t, err)

	refund, err := h.svc.Refund(context.Background(), models.RefundRequest{TransactionID: sale.TransactionID, Reason: "x"}, "m")
	require.NoError(t, err)
	assert.Nil(t, refund.BookingID)
	assert.Empty(t, refund.Warnings)
}

func TestRefundWarnsWhenLinkedBookingIsGone(t *testing.T) {
	h := newHarness()
	sale := completedSale(t, h)
	delete(h.bookings.byID, *sale.BookingID)

	refund, err := h.svc.Refund(context.Background(), models.RefundRequest{TransactionID: sale.TransactionID, Reason: "x"}, "m")
	require.NoError(t, err)
	require.Len(t, refund.Warnings, 1)
	assert.Equal(t, models.TxnRefunded, h.txns.get(sale.ID).Status)
}

func TestRefundStatusUpdateFailureNamesStepAndIDs(t *testing.T) {
	h := newHarness()
	sale := completedSale(t, h)
	h.txns.markErr = errors.New("primary stepped down")

	_, err := h.svc.Refund(context.Background(), models.RefundRequest{TransactionID: sale.TransactionID, Reason: "x"}, "m")
	var pe *utils.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "update original transaction status", pe.Step)
	assert.Equal(t, sale.TransactionID, pe.IDs["originalTransactionId"])
	assert.Equal(t, *sale.BookingID, pe.IDs["bookingId"])
	assert.NotEmpty(t, pe.IDs["refundTransactionId"])
}

// staleTransactions serves the original as it was before any refund, the way
// a concurrent request that read first would see it.
type staleTransactions struct {
	*fakeTransactions
	snapshot *models.POSTransaction
}

func (s *staleTransactions) GetByTransactionID(_ context.Context, transactionID string) (*models.POSTransaction, error) {
	if s.snapshot.TransactionID != transactionID {
		return nil, nil
	}
	cp := *s.snapshot
	return &cp, nil
}

func TestConcurrentRefundReportsOrphanRefundRow(t *testing.T) {
	h := newHarness()
	sale := completedSale(t, h)
	snapshot := *h.txns.get(sale.ID)
	req := models.RefundRequest{TransactionID: sale.TransactionID, Reason: "cancelled trip"}

	_, err := h.svc.Refund(context.Background(), req, "manager-1")
	require.NoError(t, err)

	h.svc.Transactions = &staleTransactions{fakeTransactions: h.txns, snapshot: &snapshot}
	_, err = h.svc.Refund(context.Background(), req, "manager-2")

	var pe *utils.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "update original transaction status", pe.Step)
	assert.Equal(t, sale.TransactionID, pe.IDs["originalTransactionId"])
	require.NotEmpty(t, pe.IDs["refundTransactionId"])
	var is *utils.InvalidStateError
	assert.ErrorAs(t, err, &is)
	assert.Equal(t, 400, utils.StatusFor(err))

	// Without an atomic store the second refund row stays and is named in the error.
	var orphan bool
	for _, txn := range h.txns.sorted() {
		if txn.TransactionID == pe.IDs["refundTransactionId"] {
			orphan = true
		}
	}
	assert.True(t, orphan)
}
