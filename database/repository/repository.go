package repository

import (
	activityRepo "simba/database/repository/activity"
	adminRepo "simba/database/repository/admin"
	analyticsRepo "simba/database/repository/analytics"
	bookingRepo "simba/database/repository/booking"
	customerRepo "simba/database/repository/customer"
	posRepo "simba/database/repository/pos"
	tourRepo "simba/database/repository/tour"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the repository interfaces and constructors.
type TourRepository = tourRepo.TourRepository

var NewMongoTourRepo = tourRepo.NewMongoTourRepo

type BookingRepository = bookingRepo.BookingRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

type CustomerRepository = customerRepo.CustomerRepository

var NewMongoCustomerRepo = customerRepo.NewMongoCustomerRepo

type TransactionRepository = posRepo.TransactionRepository

var NewMongoTransactionRepo = posRepo.NewMongoTransactionRepo

type ActivityLogRepository = activityRepo.ActivityLogRepository

var NewMongoActivityRepo = activityRepo.NewMongoActivityRepo

type AdminRepository = adminRepo.AdminRepository

var NewMongoAdminRepo = adminRepo.NewMongoAdminRepo

type AnalyticsRepository = analyticsRepo.AnalyticsRepository

var NewMongoAnalyticsRepo = analyticsRepo.NewMongoAnalyticsRepo

// Repositories bundles every collection the application touches.
type Repositories struct {
	Tours        TourRepository
	Bookings     BookingRepository
	Customers    CustomerRepository
	Transactions TransactionRepository
	Activity     ActivityLogRepository
	Admins       AdminRepository
	Analytics    AnalyticsRepository
}

// NewRepositories builds every Mongo repository against db.
func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Tours:        NewMongoTourRepo(db),
		Bookings:     NewMongoBookingRepo(db),
		Customers:    NewMongoCustomerRepo(db),
		Transactions: NewMongoTransactionRepo(db),
		Activity:     NewMongoActivityRepo(db),
		Admins:       NewMongoAdminRepo(db),
		Analytics:    NewMongoAnalyticsRepo(db),
	}
}
