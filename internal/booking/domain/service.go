package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// FallbackServiceName is used when a service has no translation at all.
const FallbackServiceName = "Service"

// Service is a bookable offering with localized naming and a fixed duration.
type Service struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	Name            map[string]string
	Description     map[string]string
	ImageURL        *string
	DurationMinutes int
	PriceCents      int64
	Currency        Currency
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Duration returns the service duration as a time.Duration.
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// LocalizedName resolves the service name for the given language. Falls back
// to any available translation (lowest key for determinism), then to the
// generic fallback.
func (s *Service) LocalizedName(lang string) string {
	if name, ok := s.Name[lang]; ok && name != "" {
		return name
	}
	keys := make([]string, 0, len(s.Name))
	for k, v := range s.Name {
		if v != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) > 0 {
		sort.Strings(keys)
		return s.Name[keys[0]]
	}
	return FallbackServiceName
}
