// Package booking wires the public booking bounded context: availability,
// booking submission and customer self-service management.
package booking

import (
	"reserva_backend/internal/booking/handler"
	"reserva_backend/internal/booking/repository"
	"reserva_backend/internal/booking/service"
	"reserva_backend/internal/events"
	apphttp "reserva_backend/internal/http"
	"reserva_backend/platform/logger"
	"reserva_backend/platform/metrics"
)

// Module bundles the booking context's dependencies.
type Module struct {
	svc     *service.Service
	handler *handler.Handler
}

// NewModule wires the booking context against the shared store.
func NewModule(store repository.Store, bus events.Bus, m *metrics.Metrics, log *logger.Logger) *Module {
	svc := service.New(store, bus, m, log)
	return &Module{
		svc:     svc,
		handler: handler.New(svc),
	}
}

// Name identifies the module in logs.
func (m *Module) Name() string { return "booking" }

// Service exposes the booking service for cross-module wiring.
func (m *Module) Service() *service.Service { return m.svc }

// RegisterRoutes mounts the public booking API.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/public")

	tenants := public.Group("/tenants/:slug")
	tenants.GET("", m.handler.GetTenant)
	tenants.GET("/services", m.handler.ListServices)
	tenants.GET("/availability", m.handler.GetAvailability)
	tenants.POST("/bookings", ctx.BookingRateLimiter.RateLimit(), m.handler.CreateBooking)

	bookings := public.Group("/bookings/:id")
	bookings.GET("", m.handler.GetBooking)
	bookings.POST("/cancel", m.handler.CancelBooking)
}

var _ apphttp.Module = (*Module)(nil)
