package models

import "time"

const (
	BookingPending   = "Pending"
	BookingConfirmed = "Confirmed"
	BookingCancelled = "Cancelled"
	BookingCompleted = "Completed"
)

const (
	PaymentPending  = "Pending"
	PaymentPaid     = "Paid"
	PaymentRefunded = "Refunded"
)

// Booking is one reservation of a tour occurrence by one customer.
// Status and PaymentStatus move independently of each other.
type Booking struct {
	ID            string    `bson:"_id" json:"_id"`
	TourID        string    `bson:"tourId" json:"tourId"`
	UserID        *string   `bson:"userId" json:"userId"`
	TourTitle     string    `bson:"tourTitle" json:"tourTitle"`
	CustomerName  string    `bson:"customerName" json:"customerName"`
	CustomerEmail string    `bson:"customerEmail" json:"customerEmail"`
	CustomerPhone string    `bson:"customerPhone" json:"customerPhone"`
	BookingDate   string    `bson:"bookingDate" json:"bookingDate"`
	TripDate      string    `bson:"tripDate" json:"tripDate"`
	Participants  int       `bson:"participants" json:"participants"`
	TotalAmount   float64   `bson:"totalAmount" json:"totalAmount"`
	Status        string    `bson:"status" json:"status"`
	PaymentStatus string    `bson:"paymentStatus" json:"paymentStatus"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BookingRequest is the public booking form.
type BookingRequest struct {
	TourID        string  `json:"tourId" binding:"required"`
	TourTitle     string  `json:"tourTitle"`
	CustomerName  string  `json:"customerName" binding:"required"`
	CustomerEmail string  `json:"customerEmail" binding:"required"`
	CustomerPhone string  `json:"customerPhone" binding:"required"`
	TripDate      string  `json:"tripDate" binding:"required"`
	Participants  int     `json:"participants" binding:"required"`
	TotalAmount   float64 `json:"totalAmount"`
}

// BookingUpdate is the admin patch body. Nil fields are left untouched.
type BookingUpdate struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
	TripDate      *string `json:"tripDate"`
	Participants  *int    `json:"participants"`
}

// BookingFilter narrows the admin booking list.
type BookingFilter struct {
	Status        string
	PaymentStatus string
	Search        string
	Page          int
	Limit         int
}

// Pagination describes one page of a listing.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

func IsBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

func IsPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}
