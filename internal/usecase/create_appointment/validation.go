package create_appointment

import (
	"fmt"
	"time"

	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	"github.com/elegantstudio/ES-SchedulingService/pkg/types"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: client id must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service id must be positive", ErrInvalidInput)
	}
	if req.MasterID != nil && *req.MasterID <= 0 {
		return fmt.Errorf("%w: master id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

// startsInPast проверяет, что момент начала записи уже прошел
func startsInPast(date time.Time, start types.TimeString, now time.Time) bool {
	minutes, _ := start.Minutes() // время провалидировано раньше
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	startAt := startOfDay.Add(time.Duration(minutes) * time.Minute)
	return startAt.Before(now)
}
