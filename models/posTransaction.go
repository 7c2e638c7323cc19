package models

import "time"

// Transaction types.
const (
	TxnSale           = "SALE"
	TxnRefund         = "REFUND"
	TxnPartialRefund  = "PARTIAL_REFUND"
	TxnDeposit        = "DEPOSIT"
	TxnBalancePayment = "BALANCE_PAYMENT"
)

// Transaction statuses.
const (
	TxnCompleted         = "COMPLETED"
	TxnPending           = "PENDING"
	TxnFailed            = "FAILED"
	TxnRefunded          = "REFUNDED"
	TxnPartiallyRefunded = "PARTIALLY_REFUNDED"
)

// Payment methods. These are labels only; no gateway is involved.
const (
	PayCash         = "CASH"
	PayCard         = "CARD"
	PayMpesa        = "MPESA"
	PayBankTransfer = "BANK_TRANSFER"
	PayPaypal       = "PAYPAL"
	PayMixed        = "MIXED"
)

func IsPaymentMethod(m string) bool {
	switch m {
	case PayCash, PayCard, PayMpesa, PayBankTransfer, PayPaypal, PayMixed:
		return true
	}
	return false
}

// CustomerSnapshot is the customer as known at the time of a transaction.
type CustomerSnapshot struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

// LineItem is one cart line. TotalPrice is always computed server-side.
type LineItem struct {
	Name       string  `bson:"name" json:"name"`
	Quantity   int     `bson:"quantity" json:"quantity"`
	UnitPrice  float64 `bson:"unitPrice" json:"unitPrice"`
	TotalPrice float64 `bson:"totalPrice" json:"totalPrice"`
	TourID     *string `bson:"tourId" json:"tourId"`
}

// PaymentDetails holds method-specific references.
type PaymentDetails struct {
	CardLast4 *string `bson:"cardLast4" json:"cardLast4"`
	MpesaRef  *string `bson:"mpesaRef" json:"mpesaRef"`
	BankRef   *string `bson:"bankRef" json:"bankRef"`
	PaypalRef *string `bson:"paypalRef" json:"paypalRef"`
}

// POSTransaction is one point-of-sale financial event.
type POSTransaction struct {
	ID             string           `bson:"_id" json:"_id"`
	TransactionID  string           `bson:"transactionId" json:"transactionId"`
	Type           string           `bson:"type" json:"type"`
	BookingID      *string          `bson:"bookingId" json:"bookingId"`
	TourID         *string          `bson:"tourId" json:"tourId"`
	Customer       CustomerSnapshot `bson:"customer" json:"customer"`
	Items          []LineItem       `bson:"items" json:"items"`
	Subtotal       float64          `bson:"subtotal" json:"subtotal"`
	Tax            float64          `bson:"tax" json:"tax"`
	Discount       float64          `bson:"discount" json:"discount"`
	DiscountCode   *string          `bson:"discountCode" json:"discountCode"`
	Total          float64          `bson:"total" json:"total"`
	AmountPaid     float64          `bson:"amountPaid" json:"amountPaid"`
	AmountDue      float64          `bson:"amountDue" json:"amountDue"`
	PaymentMethod  string           `bson:"paymentMethod" json:"paymentMethod"`
	PaymentDetails PaymentDetails   `bson:"paymentDetails" json:"paymentDetails"`
	Status         string           `bson:"status" json:"status"`
	ProcessedBy    string           `bson:"processedBy" json:"processedBy"`
	Notes          string           `bson:"notes" json:"notes"`
	ReceiptNumber  string           `bson:"receiptNumber" json:"receiptNumber"`
	CreatedAt      time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time        `bson:"updatedAt" json:"updatedAt"`

	// Warnings reports follow-up steps that failed after the record was saved.
	Warnings []string `bson:"-" json:"warnings,omitempty"`
}

// SaleItemInput is one cart line as sent by the POS terminal.
type SaleItemInput struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	TourID    *string `json:"tourId"`
}

// SaleRequest is the POS sale body. Client-computed totals are ignored.
type SaleRequest struct {
	Customer       CustomerSnapshot `json:"customer"`
	Items          []SaleItemInput  `json:"items"`
	PaymentMethod  string           `json:"paymentMethod"`
	PaymentDetails *PaymentDetails  `json:"paymentDetails"`
	Discount       *float64         `json:"discount"`
	DiscountCode   *string          `json:"discountCode"`
	Notes          *string          `json:"notes"`
	TripDate       *string          `json:"tripDate"`
}

// RefundRequest is the POS refund body.
type RefundRequest struct {
	TransactionID string   `json:"transactionId"`
	Reason        string   `json:"reason"`
	Amount        *float64 `json:"amount"`
}

// SalesWindow is one rollup bucket of the POS summary.
type SalesWindow struct {
	Total float64 `bson:"total" json:"total"`
	Count int64   `bson:"count" json:"count"`
}

// POSSummary is the dashboard rollup of sales.
type POSSummary struct {
	Today              SalesWindow      `json:"today"`
	Week               SalesWindow      `json:"week"`
	Month              SalesWindow      `json:"month"`
	RecentTransactions []POSTransaction `json:"recentTransactions"`
}

// TransactionFilter narrows the admin transaction list.
type TransactionFilter struct {
	Type          string
	Status        string
	PaymentMethod string
	From          *time.Time
	To            *time.Time
	Page          int
	Limit         int
}
