// Package handler exposes the public booking API over HTTP.
package handler

import (
	"net/http"
	"time"

	"reserva_backend/internal/booking/service"
	"reserva_backend/internal/booking/transport"
	"reserva_backend/platform/apperr"
	"reserva_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler serves the public booking endpoints.
type Handler struct {
	svc *service.Service
}

// New creates the public booking handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// GetTenant returns a tenant's public booking profile.
// GET /public/tenants/:slug
func (h *Handler) GetTenant(c *gin.Context) {
	tenant, err := h.svc.GetTenantBySlug(c.Request.Context(), c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.NewTenantPublicResponse(tenant))
}

// ListServices returns a tenant's bookable services.
// GET /public/tenants/:slug/services
func (h *Handler) ListServices(c *gin.Context) {
	tenant, err := h.svc.GetTenantBySlug(c.Request.Context(), c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}

	services, err := h.svc.ListServices(c.Request.Context(), tenant.ID)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := make([]transport.ServiceResponse, 0, len(services))
	for i := range services {
		resp = append(resp, transport.NewServiceResponse(&services[i]))
	}
	httpkit.OK(c, resp)
}

// GetAvailability returns the open slots for a service on a date.
// GET /public/tenants/:slug/availability?serviceId=...&date=YYYY-MM-DD
func (h *Handler) GetAvailability(c *gin.Context) {
	tenant, err := h.svc.GetTenantBySlug(c.Request.Context(), c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}

	serviceID, err := uuid.Parse(c.Query("serviceId"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("serviceId must be a valid UUID"))
		return
	}

	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.Local)
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("date must be formatted as YYYY-MM-DD"))
		return
	}

	slots, err := h.svc.ComputeAvailableSlots(c.Request.Context(), tenant.ID, serviceID, date)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.AvailabilityResponse{
		Date:  c.Query("date"),
		Slots: slots,
	})
}

// CreateBooking books a slot for a (possibly new) customer.
// POST /public/tenants/:slug/bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	tenant, err := h.svc.GetTenantBySlug(c.Request.Context(), c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}

	var req transport.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindValidation, "invalid booking payload", err))
		return
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("serviceId must be a valid UUID"))
		return
	}

	booking, err := h.svc.SubmitBooking(c.Request.Context(), tenant.ID, service.SubmitBookingInput{
		ServiceID:      serviceID,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		TelegramChatID: req.TelegramChatID,
		StartTime:      req.StartTime,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.NewBookingResponse(booking, true))
}

// GetBooking returns a booking for its management link.
// GET /public/bookings/:id?token=...
func (h *Handler) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("booking id must be a valid UUID"))
		return
	}

	booking, err := h.svc.GetBookingWithToken(c.Request.Context(), bookingID, c.Query("token"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.NewBookingResponse(booking, false))
}

// CancelBooking cancels a booking through its management link.
// POST /public/bookings/:id/cancel?token=...
func (h *Handler) CancelBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("booking id must be a valid UUID"))
		return
	}

	booking, err := h.svc.CancelBookingWithToken(c.Request.Context(), bookingID, c.Query("token"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.NewBookingResponse(booking, false))
}
