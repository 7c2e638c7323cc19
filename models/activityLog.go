package models

import "time"

// Activity actions.
const (
	ActionLogin          = "LOGIN"
	ActionLogout         = "LOGOUT"
	ActionViewDashboard  = "VIEW_DASHBOARD"
	ActionViewTour       = "VIEW_TOUR"
	ActionCreateTour     = "CREATE_TOUR"
	ActionUpdateTour     = "UPDATE_TOUR"
	ActionDeleteTour     = "DELETE_TOUR"
	ActionViewBooking    = "VIEW_BOOKING"
	ActionCreateBooking  = "CREATE_BOOKING"
	ActionUpdateBooking  = "UPDATE_BOOKING"
	ActionDeleteBooking  = "DELETE_BOOKING"
	ActionCancelBooking  = "CANCEL_BOOKING"
	ActionConfirmBooking = "CONFIRM_BOOKING"
	ActionPOSSale        = "POS_SALE"
	ActionPOSRefund      = "POS_REFUND"
	ActionPaymentOK      = "PAYMENT_RECEIVED"
	ActionPaymentFailed  = "PAYMENT_FAILED"
	ActionExportData     = "EXPORT_DATA"
	ActionSettingsChange = "SETTINGS_CHANGE"
	ActionUserSearch     = "USER_SEARCH"
	ActionCustomerView   = "CUSTOMER_VIEW"
	ActionPageView       = "PAGE_VIEW"
)

var activityActions = map[string]bool{
	ActionLogin: true, ActionLogout: true, ActionViewDashboard: true, ActionViewTour: true,
	ActionCreateTour: true, ActionUpdateTour: true, ActionDeleteTour: true, ActionViewBooking: true,
	ActionCreateBooking: true, ActionUpdateBooking: true, ActionDeleteBooking: true,
	ActionCancelBooking: true, ActionConfirmBooking: true, ActionPOSSale: true, ActionPOSRefund: true,
	ActionPaymentOK: true, ActionPaymentFailed: true, ActionExportData: true,
	ActionSettingsChange: true, ActionUserSearch: true, ActionCustomerView: true, ActionPageView: true,
}

func IsActivityAction(a string) bool { return activityActions[a] }

// Entity types and severities.
const (
	EntityTour     = "tour"
	EntityBooking  = "booking"
	EntityCustomer = "customer"
	EntityPayment  = "payment"
	EntitySystem   = "system"
	EntityPOS      = "pos"

	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

func IsEntityType(e string) bool {
	switch e {
	case EntityTour, EntityBooking, EntityCustomer, EntityPayment, EntitySystem, EntityPOS:
		return true
	}
	return false
}

func IsSeverity(s string) bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError, SeverityCritical:
		return true
	}
	return false
}

// ActivityLog is one append-only audit event.
type ActivityLog struct {
	ID          string                 `bson:"_id" json:"_id"`
	Action      string                 `bson:"action" json:"action"`
	AdminID     string                 `bson:"adminId" json:"adminId"`
	AdminEmail  string                 `bson:"adminEmail" json:"adminEmail"`
	Description string                 `bson:"description" json:"description"`
	Metadata    map[string]interface{} `bson:"metadata" json:"metadata"`
	IPAddress   string                 `bson:"ipAddress" json:"ipAddress"`
	UserAgent   string                 `bson:"userAgent" json:"userAgent"`
	EntityType  string                 `bson:"entityType" json:"entityType"`
	EntityID    *string                `bson:"entityId" json:"entityId"`
	Severity    string                 `bson:"severity" json:"severity"`
	Success     bool                   `bson:"success" json:"success"`
	CreatedAt   time.Time              `bson:"createdAt" json:"createdAt"`
}

// ActivityFilter narrows the admin activity log list.
type ActivityFilter struct {
	Action     string
	EntityType string
	Severity   string
	Page       int
	Limit      int
}

// ActionCount is one row of the activity summary.
type ActionCount struct {
	Action string `bson:"_id" json:"action"`
	Count  int64  `bson:"count" json:"count"`
}

// ActivitySummary is the last-24h rollup shown on the activity page.
type ActivitySummary struct {
	Total    int64         `json:"total"`
	Failures int64         `json:"failures"`
	ByAction []ActionCount `json:"byAction"`
	Since    time.Time     `json:"since"`
}

// ClientActivity is an event reported by the storefront tracker.
type ClientActivity struct {
	Action      string                 `json:"action" binding:"required"`
	Description string                 `json:"description" binding:"required"`
	EntityType  string                 `json:"entityType"`
	EntityID    string                 `json:"entityId"`
	Severity    string                 `json:"severity"`
	Metadata    map[string]interface{} `json:"metadata"`
	UserID      string                 `json:"userId"`
	UserEmail   string                 `json:"userEmail"`
}
