package activity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"simba/models"
	"simba/utils"
)

const summaryWindow = 24 * time.Hour

func (s *DefaultActivityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Track records an event reported by the storefront.
func (s *DefaultActivityService) Track(ctx context.Context, event models.ClientActivity) error {
	if !models.IsActivityAction(event.Action) {
		return utils.NewValidationError("action", fmt.Sprintf("unknown action %q", event.Action))
	}
	if strings.TrimSpace(event.Description) == "" {
		return utils.NewValidationError("description", "is required")
	}
	entityType := event.EntityType
	if entityType == "" {
		entityType = models.EntitySystem
	}
	if !models.IsEntityType(entityType) {
		return utils.NewValidationError("entityType", fmt.Sprintf("unknown entity type %q", entityType))
	}
	severity := event.Severity
	if severity == "" {
		severity = models.SeverityInfo
	}
	if !models.IsSeverity(severity) {
		return utils.NewValidationError("severity", fmt.Sprintf("unknown severity %q", severity))
	}

	entry := models.ActivityLog{
		Action:      event.Action,
		AdminID:     event.UserID,
		AdminEmail:  event.UserEmail,
		Description: event.Description,
		Metadata:    event.Metadata,
		EntityType:  entityType,
		Severity:    severity,
		Success:     true,
		CreatedAt:   s.now(),
	}
	if entry.AdminID == "" {
		entry.AdminID = "anonymous"
	}
	if event.EntityID != "" {
		id := event.EntityID
		entry.EntityID = &id
	}
	s.Recorder.Record(ctx, entry)
	return nil
}

func (s *DefaultActivityService) List(ctx context.Context, filter models.ActivityFilter) ([]models.ActivityLog, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	logs, total, err := s.Store.List(ctx, filter)
	if err != nil {
		return nil, 0, utils.NewPersistenceError("list activity logs", err, nil)
	}
	return logs, total, nil
}

// Summary rolls up the last 24 hours of activity.
func (s *DefaultActivityService) Summary(ctx context.Context) (*models.ActivitySummary, error) {
	summary, err := s.Store.Summary(ctx, s.now().Add(-summaryWindow))
	if err != nil {
		return nil, utils.NewPersistenceError("summarize activity logs", err, nil)
	}
	return summary, nil
}
