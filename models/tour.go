package models

import "time"

const (
	DifficultyEasy        = "Easy"
	DifficultyModerate    = "Moderate"
	DifficultyChallenging = "Challenging"
	DifficultyExtreme     = "Extreme"
)

// ItineraryDay is one day of a tour's programme.
type ItineraryDay struct {
	Day         int    `bson:"day" json:"day"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
}

// Tour is a bookable trip package in the catalog.
type Tour struct {
	ID                   string         `bson:"_id" json:"_id"`
	Title                string         `bson:"title" json:"title"`
	Slug                 string         `bson:"slug" json:"slug"`
	Location             string         `bson:"location" json:"location"`
	Duration             string         `bson:"duration" json:"duration"`
	Difficulty           string         `bson:"difficulty" json:"difficulty"`
	Price                float64        `bson:"price" json:"price"`
	OriginalPrice        float64        `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Rating               float64        `bson:"rating" json:"rating"`
	ReviewCount          int            `bson:"reviewCount" json:"reviewCount"`
	Image                string         `bson:"image" json:"image"`
	ImagePublicID        string         `bson:"imagePublicId,omitempty" json:"-"`
	Gallery              []string       `bson:"gallery" json:"gallery"`
	ShortDescription     string         `bson:"shortDescription" json:"shortDescription"`
	Description          string         `bson:"description" json:"description"`
	Highlights           []string       `bson:"highlights" json:"highlights"`
	Inclusions           []string       `bson:"inclusions" json:"inclusions"`
	Exclusions           []string       `bson:"exclusions" json:"exclusions"`
	Itinerary            []ItineraryDay `bson:"itinerary" json:"itinerary"`
	NextDate             string         `bson:"nextDate" json:"nextDate"`
	RegistrationDeadline string         `bson:"registrationDeadline" json:"registrationDeadline"`
	SpotsLeft            int            `bson:"spotsLeft" json:"spotsLeft"`
	MaxGroupSize         int            `bson:"maxGroupSize" json:"maxGroupSize"`
	Views                int            `bson:"views" json:"views"`
	Inquiries            int            `bson:"inquiries" json:"inquiries"`
	Featured             bool           `bson:"featured" json:"featured"`
	Category             string         `bson:"category" json:"category"`
	CreatedAt            time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// TourInput carries the admin-editable fields of a tour.
type TourInput struct {
	Title                string         `json:"title"`
	Slug                 string         `json:"slug"`
	Location             string         `json:"location"`
	Duration             string         `json:"duration"`
	Difficulty           string         `json:"difficulty"`
	Price                *float64       `json:"price"`
	OriginalPrice        float64        `json:"originalPrice"`
	Image                string         `json:"image"`
	Gallery              []string       `json:"gallery"`
	ShortDescription     string         `json:"shortDescription"`
	Description          string         `json:"description"`
	Highlights           []string       `json:"highlights"`
	Inclusions           []string       `json:"inclusions"`
	Exclusions           []string       `json:"exclusions"`
	Itinerary            []ItineraryDay `json:"itinerary"`
	NextDate             string         `json:"nextDate"`
	RegistrationDeadline string         `json:"registrationDeadline"`
	SpotsLeft            *int           `json:"spotsLeft"`
	MaxGroupSize         *int           `json:"maxGroupSize"`
	Featured             *bool          `json:"featured"`
	Category             string         `json:"category"`
}
