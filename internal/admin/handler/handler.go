// Package handler exposes the tenant admin API over HTTP. All routes are
// JWT-protected; the tenant scope comes from the token's claims.
package handler

import (
	"net/http"
	"time"

	"reserva_backend/internal/admin/service"
	"reserva_backend/internal/admin/transport"
	"reserva_backend/internal/booking/domain"
	"reserva_backend/internal/booking/repository"
	bookingtransport "reserva_backend/internal/booking/transport"
	"reserva_backend/platform/apperr"
	"reserva_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler serves the tenant dashboard endpoints.
type Handler struct {
	svc *service.Service
}

// New creates the admin handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// =============================================================================
// Services
// =============================================================================

// ListServices GET /admin/services
func (h *Handler) ListServices(c *gin.Context) {
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}
	services, err := h.svc.ListServices(c.Request.Context(), tenantID)
	if httpkit.HandleError(c, err) {
		return
	}
	resp := make([]bookingtransport.ServiceResponse, 0, len(services))
	for i := range services {
		resp = append(resp, bookingtransport.NewServiceResponse(&services[i]))
	}
	httpkit.OK(c, resp)
}

// CreateService POST /admin/services
func (h *Handler) CreateService(c *gin.Context) {
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}
	var req transport.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindValidation, "invalid service payload", err))
		return
	}
	svc, err := h.svc.CreateService(c.Request.Context(), tenantID, repository.ServiceInput{
		Name:            req.Name,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		Currency:        domain.Currency(req.Currency),
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, bookingtransport.NewServiceResponse(svc))
}

// UpdateService PUT /admin/services/:id
func (h *Handler) UpdateService(c *gin.Context) {
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("service id must be a valid UUID"))
		return
	}
	var req transport.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindValidation, "invalid service payload", err))
		return
	}
	update := repository.ServiceUpdate{
		Name:            req.Name,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
	}
	if req.Currency != nil {
		currency := domain.Currency(*req.Currency)
		update.Currency = &currency
	}
	svc, err := h.svc.UpdateService(c.Request.Context(), tenantID, serviceID, update)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, bookingtransport.NewServiceResponse(svc))
}

// DeleteService DELETE /admin/services/:id
func (h *Handler) DeleteService(c *gin.Context) {
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("service id must be a valid UUID"))
		return
	}
	if httpkit.HandleError(c, h.svc.DeleteService(c.Request.Context(), tenantID, serviceID)) {
		return
	}
	c.Status(http.StatusNoContent)
}

// =============================================================================
// Schedules
// =============================================================================

// ListSchedules GET /admin/schedules
func (h *Handler) ListSchedules(c *gin.Context) {
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}
	schedules, err := h.svc.ListSchedules(c.Request.Context(), tenantID)
	if httpkit.HandleError(c, err) {
		return
	}
	resp := make([]transport.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		resp = append(resp, transport.NewScheduleResponse(&schedules[i]))
	}
	httpkit.OK(c, resp)
}

// CreateSchedule POST /admin/schedules
func (h *Handler) CreateSchedule(c *gin.Context) {
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}
	var req transport.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindValidation, "invalid schedule payload", err))
		return
	}
	schedule, err := h.svc.CreateSchedule(c.Request.Context(), tenantID, repository.ScheduleInput{
		DayOfWeek: req.DayOfWeek,
		OpenTime:  req.OpenTime,
		CloseTime: req.CloseTime,
		ValidFrom: req.ValidFrom,
		ValidTo:   req.ValidTo,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.NewScheduleResponse(schedule))
}

// DeleteSchedule DELETE /admin/schedules/:id
func (h *Handler) DeleteSchedule(c *gin.Context) {
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}
	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("schedule id must be a valid UUID"))
		return
	}
	if httpkit.HandleError(c, h.svc.DeleteSchedule(c.Request.Context(), tenantID, scheduleID)) {
		return
	}
	c.Status(http.StatusNoContent)
}

// =============================================================================
// Schedule exceptions
// =============================================================================

// ListExceptions GET /admin/schedule-exceptions
func (h *Handler) ListExceptions(c *gin.Context) {
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}
	exceptions, err := h.svc.ListScheduleExceptions(c.Request.Context(), tenantID)
	if httpkit.HandleError(c, err) {
		return
	}
	resp := make([]transport.ExceptionResponse, 0, len(exceptions))
	for i := range exceptions {
		resp = append(resp, transport.NewExceptionResponse(&exceptions[i]))
	}
	httpkit.OK(c, resp)
}

// CreateException POST /admin/schedule-exceptions
func (h *Handler) CreateException(c *gin.Context) {
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}
	var req transport.CreateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindValidation, "invalid exception payload", err))
		return
	}
	exception, err := h.svc.CreateScheduleException(c.Request.Context(), tenantID, repository.ExceptionInput{
		ExceptionDate: req.ExceptionDate,
		IsClosed:      req.IsClosed,
		OpenTime:      req.OpenTime,
		CloseTime:     req.CloseTime,
		Reason:        req.Reason,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.NewExceptionResponse(exception))
}

// DeleteException DELETE /admin/schedule-exceptions/:id
func (h *Handler) DeleteException(c *gin.Context) {
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}
	exceptionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("exception id must be a valid UUID"))
		return
	}
	if httpkit.HandleError(c, h.svc.DeleteScheduleException(c.Request.Context(), tenantID, exceptionID)) {
		return
	}
	c.Status(http.StatusNoContent)
}

// =============================================================================
// Bookings
// =============================================================================

// ListBookings GET /admin/bookings?status=&from=&to=&limit=
func (h *Handler) ListBookings(c *gin.Context) {
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}

	var filter repository.BookingFilter
	if raw := c.Query("status"); raw != "" {
		status := domain.BookingStatus(raw)
		if !domain.ValidBookingStatus(status) {
			httpkit.HandleError(c, apperr.BadRequest("unknown booking status filter"))
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpkit.HandleError(c, apperr.BadRequest("from must be RFC3339"))
			return
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpkit.HandleError(c, apperr.BadRequest("to must be RFC3339"))
			return
		}
		filter.To = &to
	}

	bookings, err := h.svc.ListBookings(c.Request.Context(), tenantID, filter)
	if httpkit.HandleError(c, err) {
		return
	}
	resp := make([]transport.AdminBookingResponse, 0, len(bookings))
	for i := range bookings {
		resp = append(resp, transport.NewAdminBookingResponse(&bookings[i]))
	}
	httpkit.OK(c, resp)
}

// UpdateBookingStatus PATCH /admin/bookings/:id/status
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("booking id must be a valid UUID"))
		return
	}
	var req transport.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindValidation, "invalid status payload", err))
		return
	}
	booking, err := h.svc.UpdateBookingStatus(c.Request.Context(), tenantID, bookingID, domain.BookingStatus(req.Status))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.NewAdminBookingResponse(booking))
}

// =============================================================================
// Settings
// =============================================================================

// GetSettings GET /admin/settings
func (h *Handler) GetSettings(c *gin.Context) {
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}
	tenant, err := h.svc.GetSettings(c.Request.Context(), tenantID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.NewSettingsResponse(tenant))
}

// UpdateSettings PUT /admin/settings
func (h *Handler) UpdateSettings(c *gin.Context) {
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}
	var req transport.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindValidation, "invalid settings payload", err))
		return
	}
	update := repository.TenantSettingsUpdate{
		Name:                        req.Name,
		DefaultLanguage:             req.DefaultLanguage,
		SlotIntervalMinutes:         req.SlotIntervalMinutes,
		MinBookingNoticeHours:       req.MinBookingNoticeHours,
		MaxBookingNoticeDays:        req.MaxBookingNoticeDays,
		ReminderHoursPrior:          req.ReminderHoursPrior,
		ReminderTemplateBody:        req.ReminderTemplateBody,
		TelegramChatID:              req.TelegramChatID,
		NotifyEmailConfirmations:    req.NotifyEmailConfirmations,
		NotifyTelegramConfirmations: req.NotifyTelegramConfirmations,
		NotifyEmailReminders:        req.NotifyEmailReminders,
		NotifyTelegramReminders:     req.NotifyTelegramReminders,
	}
	if req.PreferredCurrency != nil {
		currency := domain.Currency(*req.PreferredCurrency)
		update.PreferredCurrency = &currency
	}
	tenant, err := h.svc.UpdateSettings(c.Request.Context(), tenantID, update)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.NewSettingsResponse(tenant))
}
