package pos

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"simba/models"
)

type fakeTransactions struct {
	mu        sync.Mutex
	byID      map[string]*models.POSTransaction
	insertErr error
	linkErr   error
	markErr   error
}

func newFakeTransactions() *fakeTransactions {
	return &fakeTransactions{byID: map[string]*models.POSTransaction{}}
}

func (f *fakeTransactions) Insert(_ context.Context, txn *models.POSTransaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	cp := *txn
	f.byID[txn.ID] = &cp
	return nil
}

func (f *fakeTransactions) GetByTransactionID(_ context.Context, transactionID string) (*models.POSTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.byID {
		if t.TransactionID == transactionID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTransactions) GetByID(_ context.Context, id string) (*models.POSTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTransactions) MarkRefunded(_ context.Context, id, status string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return false, f.markErr
	}
	t, ok := f.byID[id]
	if !ok || t.Status == models.TxnRefunded {
		return false, nil
	}
	t.Status = status
	return true, nil
}

func (f *fakeTransactions) SetBookingID(_ context.Context, id, bookingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.linkErr != nil {
		return f.linkErr
	}
	t, ok := f.byID[id]
	if !ok {
		return errors.New("not found")
	}
	t.BookingID = &bookingID
	return nil
}

func (f *fakeTransactions) List(_ context.Context, _ models.TransactionFilter) ([]models.POSTransaction, int64, error) {
	all := f.sorted()
	return all, int64(len(all)), nil
}

func (f *fakeTransactions) SalesSince(_ context.Context, since time.Time) (models.SalesWindow, error) {
	var w models.SalesWindow
	for _, t := range f.sorted() {
		if t.Type == models.TxnSale && t.Status == models.TxnCompleted && !t.CreatedAt.Before(since) {
			w.Total += t.Total
			w.Count++
		}
	}
	return w, nil
}

func (f *fakeTransactions) Recent(_ context.Context, limit int) ([]models.POSTransaction, error) {
	all := f.sorted()
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeTransactions) sorted() []models.POSTransaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.POSTransaction, 0, len(f.byID))
	for _, t := range f.byID {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeTransactions) get(id string) *models.POSTransaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id]
}

type fakeBookings struct {
	mu        sync.Mutex
	byID      map[string]*models.Booking
	createErr error
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{byID: map[string]*models.Booking{}}
}

func (f *fakeBookings) Create(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	cp := *b
	f.byID[b.ID] = &cp
	return nil
}

func (f *fakeBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookings) SetStatus(_ context.Context, id, status, paymentStatus string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	b.Status = status
	b.PaymentStatus = paymentStatus
	return true, nil
}

func (f *fakeBookings) all() []models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Booking{}
	for _, b := range f.byID {
		out = append(out, *b)
	}
	return out
}

type fakeCustomers map[string]*models.Customer

func (f fakeCustomers) GetByEmail(_ context.Context, email string) (*models.Customer, error) {
	return f[email], nil
}

type directTx struct{ calls int }

func (d *directTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	d.calls++
	return fn(ctx)
}

type fixedReceipts struct{ n int }

func (r *fixedReceipts) Next(_ context.Context, now time.Time) string {
	r.n++
	return formatReceipt(now.Format("20060102"), int64(r.n))
}

type captureRecorder struct {
	mu      sync.Mutex
	entries []models.ActivityLog
}

func (c *captureRecorder) Record(_ context.Context, e models.ActivityLog) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, e)
}

type harness struct {
	svc      *DefaultPOSService
	txns     *fakeTransactions
	bookings *fakeBookings
	tx       *directTx
	activity *captureRecorder
	now      time.Time
}

func newHarness() *harness {
	now := time.Date(2026, time.October, 21, 14, 30, 0, 0, time.UTC)
	h := &harness{
		txns:     newFakeTransactions(),
		bookings: newFakeBookings(),
		tx:       &directTx{},
		activity: &captureRecorder{},
		now:      now,
	}
	h.svc = &DefaultPOSService{
		Transactions: h.txns,
		Bookings:     h.bookings,
		Customers:    fakeCustomers{},
		Tx:           h.tx,
		Receipts:     &fixedReceipts{},
		Activity:     h.activity,
		Now:          func() time.Time { return h.now },
	}
	return h
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
