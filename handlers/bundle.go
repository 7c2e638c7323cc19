package handlers

import (
	"simba/services/auth"
)

// HandlerBundle groups every endpoint handler plus the authenticator the
// route guards need.
type HandlerBundle struct {
	Authn auth.Authenticator

	POS       *POSHandler
	Tours     *TourHandler
	Bookings  *BookingHandler
	Customers *CustomerHandler
	Admin     *AdminHandler
	Activity  *ActivityHandler
	Analytics *AnalyticsHandler
}
