package tour

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"simba/database"
	"simba/models"
	"simba/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultFeaturedLimit = 3
	imageFolder          = "simba/tours"
)

func (s *DefaultTourService) List(ctx context.Context) ([]models.Tour, error) {
	tours, err := s.Cache.Get(ctx, s.Store.List)
	if err != nil {
		return nil, utils.NewPersistenceError("list tours", err, nil)
	}
	return tours, nil
}

// Featured returns up to limit featured tours from the cached listing.
func (s *DefaultTourService) Featured(ctx context.Context, limit int) ([]models.Tour, error) {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}
	tours, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Tour{}
	for _, t := range tours {
		if t.Featured {
			out = append(out, t)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *DefaultTourService) GetBySlug(ctx context.Context, slug string) (*models.Tour, error) {
	tour, err := s.Store.GetBySlug(ctx, slug)
	if err != nil {
		return nil, utils.NewPersistenceError("load tour", err, map[string]string{"slug": slug})
	}
	if tour == nil {
		return nil, utils.NewNotFoundError("tour", slug)
	}
	return tour, nil
}

func (s *DefaultTourService) GetByID(ctx context.Context, id string) (*models.Tour, error) {
	tour, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewPersistenceError("load tour", err, map[string]string{"tourId": id})
	}
	if tour == nil {
		return nil, utils.NewNotFoundError("tour", id)
	}
	return tour, nil
}

// RecordView bumps the tour's view counter and the day's page views.
// The cached listing is left alone; view counts may lag by one TTL.
func (s *DefaultTourService) RecordView(ctx context.Context, id string) error {
	found, err := s.Store.IncrementViews(ctx, id)
	if err != nil {
		return utils.NewPersistenceError("record tour view", err, map[string]string{"tourId": id})
	}
	if !found {
		return utils.NewNotFoundError("tour", id)
	}
	if s.Analytics != nil {
		s.Analytics.Increment(ctx, models.CounterPageViews)
	}
	return nil
}

func validateInput(input *models.TourInput, creating bool) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Slug = strings.TrimSpace(strings.ToLower(input.Slug))
	if creating && input.Title == "" {
		return utils.NewValidationError("title", "is required")
	}
	if creating && input.Price == nil {
		return utils.NewValidationError("price", "is required")
	}
	if input.Price != nil && *input.Price < 0 {
		return utils.NewValidationError("price", "must not be negative")
	}
	if input.SpotsLeft != nil && *input.SpotsLeft < 0 {
		return utils.NewValidationError("spotsLeft", "must not be negative")
	}
	if input.MaxGroupSize != nil && *input.MaxGroupSize < 0 {
		return utils.NewValidationError("maxGroupSize", "must not be negative")
	}
	switch input.Difficulty {
	case "", models.DifficultyEasy, models.DifficultyModerate, models.DifficultyChallenging, models.DifficultyExtreme:
	default:
		return utils.NewValidationError("difficulty", fmt.Sprintf("unknown difficulty %q", input.Difficulty))
	}
	return nil
}

// apply copies every non-empty input field onto t.
func apply(t *models.Tour, in models.TourInput) {
	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setString(&t.Title, in.Title)
	setString(&t.Slug, in.Slug)
	setString(&t.Location, in.Location)
	setString(&t.Duration, in.Duration)
	setString(&t.Difficulty, in.Difficulty)
	setString(&t.Image, in.Image)
	setString(&t.ShortDescription, in.ShortDescription)
	setString(&t.Description, in.Description)
	setString(&t.NextDate, in.NextDate)
	setString(&t.RegistrationDeadline, in.RegistrationDeadline)
	setString(&t.Category, in.Category)
	if in.Price != nil {
		t.Price = *in.Price
	}
	if in.OriginalPrice > 0 {
		t.OriginalPrice = in.OriginalPrice
	}
	if in.SpotsLeft != nil {
		t.SpotsLeft = *in.SpotsLeft
	}
	if in.MaxGroupSize != nil {
		t.MaxGroupSize = *in.MaxGroupSize
	}
	if in.Featured != nil {
		t.Featured = *in.Featured
	}
	if in.Gallery != nil {
		t.Gallery = in.Gallery
	}
	if in.Highlights != nil {
		t.Highlights = in.Highlights
	}
	if in.Inclusions != nil {
		t.Inclusions = in.Inclusions
	}
	if in.Exclusions != nil {
		t.Exclusions = in.Exclusions
	}
	if in.Itinerary != nil {
		t.Itinerary = in.Itinerary
	}
}

func (s *DefaultTourService) Create(ctx context.Context, input models.TourInput, adminID string) (*models.Tour, error) {
	if err := validateInput(&input, true); err != nil {
		return nil, err
	}
	now := s.now()
	t := &models.Tour{
		ID:         uuid.New().String(),
		Difficulty: models.DifficultyModerate,
		Gallery:    []string{},
		Highlights: []string{},
		Inclusions: []string{},
		Exclusions: []string{},
		Itinerary:  []models.ItineraryDay{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	apply(t, input)
	if t.Slug == "" {
		t.Slug = Slugify(t.Title)
	}

	if err := s.Store.Create(ctx, t); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, &utils.ConflictError{Message: fmt.Sprintf("slug %q is already in use", t.Slug)}
		}
		return nil, utils.NewPersistenceError("create tour", err, map[string]string{"tourId": t.ID})
	}
	s.Cache.Invalidate()
	s.record(ctx, models.ActionCreateTour, adminID, t, fmt.Sprintf("Created tour %s", t.Title))
	return t, nil
}

func (s *DefaultTourService) Update(ctx context.Context, id string, input models.TourInput, adminID string) (*models.Tour, error) {
	if err := validateInput(&input, false); err != nil {
		return nil, err
	}
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(t, input)
	t.UpdatedAt = s.now()

	found, err := s.Store.Replace(ctx, t)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, &utils.ConflictError{Message: fmt.Sprintf("slug %q is already in use", t.Slug)}
		}
		return nil, utils.NewPersistenceError("update tour", err, map[string]string{"tourId": id})
	}
	if !found {
		return nil, utils.NewNotFoundError("tour", id)
	}
	s.Cache.Invalidate()
	s.record(ctx, models.ActionUpdateTour, adminID, t, fmt.Sprintf("Updated tour %s", t.Title))
	return t, nil
}

func (s *DefaultTourService) Delete(ctx context.Context, id string, adminID string) error {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	found, err := s.Store.Delete(ctx, id)
	if err != nil {
		return utils.NewPersistenceError("delete tour", err, map[string]string{"tourId": id})
	}
	if !found {
		return utils.NewNotFoundError("tour", id)
	}
	s.Cache.Invalidate()

	if t.ImagePublicID != "" && s.Images != nil {
		if err := s.Images.DeleteFile(ctx, t.ImagePublicID); err != nil {
			utils.GetLogger().Warn("tour: image cleanup failed", zap.String("tourId", id), zap.Error(err))
		}
	}
	s.record(ctx, models.ActionDeleteTour, adminID, t, fmt.Sprintf("Deleted tour %s", t.Title))
	return nil
}

// UploadImage stores a new cover image and replaces the previous one.
func (s *DefaultTourService) UploadImage(ctx context.Context, id string, file interface{}, adminID string) (*models.Tour, error) {
	if s.Images == nil {
		return nil, &utils.InvalidStateError{Message: "image storage is not configured"}
	}
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	uploaded, err := s.Images.UploadImage(ctx, file, imageFolder)
	if err != nil {
		return nil, fmt.Errorf("upload tour image: %w", err)
	}

	previous := t.ImagePublicID
	t.Image = uploaded.URL
	t.ImagePublicID = uploaded.PublicID
	t.UpdatedAt = s.now()
	if _, err := s.Store.Replace(ctx, t); err != nil {
		return nil, utils.NewPersistenceError("save tour image", err, map[string]string{"tourId": id, "publicId": uploaded.PublicID})
	}
	s.Cache.Invalidate()

	if previous != "" {
		if err := s.Images.DeleteFile(ctx, previous); err != nil {
			utils.GetLogger().Warn("tour: previous image cleanup failed", zap.String("publicId", previous), zap.Error(err))
		}
	}
	s.record(ctx, models.ActionUpdateTour, adminID, t, fmt.Sprintf("Uploaded image for %s", t.Title))
	return t, nil
}

func (s *DefaultTourService) record(ctx context.Context, action, adminID string, t *models.Tour, description string) {
	if s.Activity == nil {
		return
	}
	id := t.ID
	s.Activity.Record(ctx, models.ActivityLog{
		Action:      action,
		AdminID:     adminID,
		Description: description,
		EntityType:  models.EntityTour,
		EntityID:    &id,
		Success:     true,
		Metadata:    map[string]interface{}{"slug": t.Slug},
	})
}
