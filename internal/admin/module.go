// Package admin wires the tenant dashboard bounded context: catalog,
// schedules, booking oversight and policy settings.
package admin

import (
	"reserva_backend/internal/admin/handler"
	"reserva_backend/internal/admin/service"
	"reserva_backend/internal/booking/repository"
	"reserva_backend/internal/events"
	apphttp "reserva_backend/internal/http"
	"reserva_backend/platform/logger"
	"reserva_backend/platform/metrics"
)

// Module bundles the admin context's dependencies.
type Module struct {
	handler *handler.Handler
}

// NewModule wires the admin context against the shared store.
func NewModule(store repository.Store, bus events.Bus, m *metrics.Metrics, log *logger.Logger) *Module {
	svc := service.New(store, bus, m, log)
	return &Module{handler: handler.New(svc)}
}

// Name identifies the module in logs.
func (m *Module) Name() string { return "admin" }

// RegisterRoutes mounts the tenant dashboard API behind auth.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	admin := ctx.Protected.Group("/admin")

	services := admin.Group("/services")
	services.GET("", m.handler.ListServices)
	services.POST("", m.handler.CreateService)
	services.PUT("/:id", m.handler.UpdateService)
	services.DELETE("/:id", m.handler.DeleteService)

	schedules := admin.Group("/schedules")
	schedules.GET("", m.handler.ListSchedules)
	schedules.POST("", m.handler.CreateSchedule)
	schedules.DELETE("/:id", m.handler.DeleteSchedule)

	exceptions := admin.Group("/schedule-exceptions")
	exceptions.GET("", m.handler.ListExceptions)
	exceptions.POST("", m.handler.CreateException)
	exceptions.DELETE("/:id", m.handler.DeleteException)

	bookings := admin.Group("/bookings")
	bookings.GET("", m.handler.ListBookings)
	bookings.PATCH("/:id/status", m.handler.UpdateBookingStatus)

	settings := admin.Group("/settings")
	settings.GET("", m.handler.GetSettings)
	settings.PUT("", m.handler.UpdateSettings)
}

var _ apphttp.Module = (*Module)(nil)
