package notification

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/notification/model"
	"hotelier/internal/domains/notification/service"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Notification
	otel    otel.Otel
}

func New(service service.Notification, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Notifications are written by booking mutations; there is no create route.
func (handler *Handler) Router(router chi.Router) {
	router.Route("/notifications", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetNotifications)
		routerGroup.Get("/{id}", handler.GetNotificationByID)
		routerGroup.Patch("/{id}/read", handler.MarkNotificationRead)
		routerGroup.Delete("/{id}", handler.DeleteNotification)
	})
}

// GetNotifications lists notifications with the unread count.
// @Summary Get all notifications
// @Tags Notification
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param kind query string false "Filter by kind"
// @Param reference_id query integer false "Filter by referenced booking"
// @Param read query boolean false "Filter by read flag"
// @Success 200 {object} response.Data[dto.GetNotificationsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/notifications [get]
func (handler *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNotifications")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterFromQuery(r,
		gDto.QueryFilter{Field: model.FieldKind},
		gDto.QueryFilter{Field: model.FieldReferenceID},
		gDto.QueryFilter{Field: model.FieldRead},
	)

	notifications, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get notifications")

		response.WithError(w, err)

		return
	}

	scope.SetAttribute("notifications.unread", notifications.Unread)

	response.WithJSON(w, http.StatusOK, notifications)
}

// GetNotificationByID retrieves a notification by its ID.
// @Summary Get a notification by ID
// @Tags Notification
// @Produce json
// @Param id path integer true "Notification ID"
// @Success 200 {object} response.Data[dto.NotificationResponse]
// @Failure 404 {object} response.Error
// @Router /v1/notifications/{id} [get]
func (handler *Handler) GetNotificationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNotificationByID")
	defer scope.End()

	id, err := shared.PathID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	notification, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get notification by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, notification)
}

// MarkNotificationRead flags a notification as read.
// @Summary Mark a notification read
// @Tags Notification
// @Produce json
// @Param id path integer true "Notification ID"
// @Success 200 {object} response.Data[dto.NotificationResponse]
// @Failure 404 {object} response.Error
// @Router /v1/notifications/{id}/read [patch]
func (handler *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkNotificationRead")
	defer scope.End()

	id, err := shared.PathID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	notification, err := handler.service.MarkRead(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark notification read")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, notification)
}

// DeleteNotification removes a notification.
// @Summary Delete a notification by ID
// @Tags Notification
// @Produce json
// @Param id path integer true "Notification ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/notifications/{id} [delete]
func (handler *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteNotification")
	defer scope.End()

	id, err := shared.PathID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete notification")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Notification deleted successfully")
}
