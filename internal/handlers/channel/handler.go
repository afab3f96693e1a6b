package channel

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/channel/model"
	"hotelier/internal/domains/channel/model/dto"
	"hotelier/internal/domains/channel/service"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/validator"
	"hotelier/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Channel
	otel    otel.Otel
}

func New(service service.Channel, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/channels", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateChannel)
		routerGroup.Get("/", handler.GetChannels)
		routerGroup.Get("/{id}", handler.GetChannelByID)
		routerGroup.Patch("/{id}", handler.UpdateChannel)
		routerGroup.Delete("/{id}", handler.DeleteChannel)
	})
}

// CreateChannel registers a booking channel.
// @Summary Create a new channel
// @Tags Channel
// @Accept json
// @Produce json
// @Param request body dto.CreateChannelRequest true "Channel details"
// @Success 201 {object} response.Data[dto.ChannelResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/channels [post]
func (handler *Handler) CreateChannel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateChannel")
	defer scope.End()

	var req dto.CreateChannelRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	channel, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create channel")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Channel created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, channel)
}

// GetChannels retrieves all channels.
// @Summary Get all channels
// @Tags Channel
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param active query boolean false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetChannelsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/channels [get]
func (handler *Handler) GetChannels(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetChannels")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterFromQuery(r,
		gDto.QueryFilter{Field: model.FieldName, Operator: gDto.FilterOperatorLike},
		gDto.QueryFilter{Field: model.FieldActive},
	)

	channels, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get channels")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, channels)
}

// GetChannelByID retrieves a channel by its ID.
// @Summary Get a channel by ID
// @Tags Channel
// @Produce json
// @Param id path integer true "Channel ID"
// @Success 200 {object} response.Data[dto.ChannelResponse]
// @Failure 404 {object} response.Error
// @Router /v1/channels/{id} [get]
func (handler *Handler) GetChannelByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetChannelByID")
	defer scope.End()

	id, err := shared.PathID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	channel, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get channel by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, channel)
}

// UpdateChannel updates an existing channel by its ID.
// @Summary Update a channel by ID
// @Tags Channel
// @Accept json
// @Produce json
// @Param id path integer true "Channel ID"
// @Param request body dto.UpdateChannelRequest true "Fields to change"
// @Success 200 {object} response.Data[dto.ChannelResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/channels/{id} [patch]
func (handler *Handler) UpdateChannel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateChannel")
	defer scope.End()

	id, err := shared.PathID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	var req dto.UpdateChannelRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	channel, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update channel")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Channel updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, channel)
}

// DeleteChannel deactivates a channel.
// @Summary Deactivate a channel by ID
// @Tags Channel
// @Produce json
// @Param id path integer true "Channel ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/channels/{id} [delete]
func (handler *Handler) DeleteChannel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteChannel")
	defer scope.End()

	id, err := shared.PathID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete channel")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Channel deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Channel deleted successfully")
}
