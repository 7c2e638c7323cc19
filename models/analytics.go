package models

import "time"

// Analytics counter fields.
const (
	CounterPageViews      = "pageViews"
	CounterUniqueVisitors = "uniqueVisitors"
	CounterInquiries      = "inquiries"
	CounterBookings       = "bookings"
)

// DailyAnalytics holds one day of storefront counters.
type DailyAnalytics struct {
	Date           string    `bson:"date" json:"date"`
	PageViews      int       `bson:"pageViews" json:"pageViews"`
	UniqueVisitors int       `bson:"uniqueVisitors" json:"uniqueVisitors"`
	Inquiries      int       `bson:"inquiries" json:"inquiries"`
	Bookings       int       `bson:"bookings" json:"bookings"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TourRanking is one row of the top-tours report.
type TourRanking struct {
	TourTitle string  `bson:"_id" json:"tourTitle"`
	Count     int64   `bson:"count" json:"count"`
	Revenue   float64 `bson:"revenue" json:"revenue"`
}

// DashboardOverview holds the headline dashboard counters.
type DashboardOverview struct {
	TotalTours        int64   `json:"totalTours"`
	TotalBookings     int64   `json:"totalBookings"`
	PendingBookings   int64   `json:"pendingBookings"`
	ConfirmedBookings int64   `json:"confirmedBookings"`
	TotalCustomers    int64   `json:"totalCustomers"`
	MonthlyRevenue    float64 `json:"monthlyRevenue"`
}

// DashboardStats is the admin dashboard payload.
type DashboardStats struct {
	Overview       DashboardOverview `json:"overview"`
	TopTours       []TourRanking     `json:"topTours"`
	RecentBookings []Booking         `json:"recentBookings"`
}
