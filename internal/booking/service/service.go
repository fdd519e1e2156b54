// Package service implements the booking bounded context's business logic:
// the availability engine, booking creation and customer self-service.
package service

import (
	"time"

	"reserva_backend/internal/booking/repository"
	"reserva_backend/internal/events"
	"reserva_backend/platform/logger"
	"reserva_backend/platform/metrics"
)

// Service orchestrates availability computation and booking lifecycle.
type Service struct {
	store   repository.Store
	bus     events.Bus
	metrics *metrics.Metrics
	log     *logger.Logger
	now     func() time.Time
}

// New creates the booking service. The event bus and metrics may be nil in
// tests that do not assert on them.
func New(store repository.Store, bus events.Bus, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{
		store:   store,
		bus:     bus,
		metrics: m,
		log:     log,
		now:     time.Now,
	}
}

// WithClock overrides the service's time source. Tests use this to pin "now".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
