package feedback

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/feedback/model"
	"hotelier/internal/domains/feedback/model/dto"
	"hotelier/internal/domains/feedback/service"
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
	service service.Feedback
	otel    otel.Otel
}

func New(service service.Feedback, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/feedback", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateFeedback)
		routerGroup.Get("/", handler.GetFeedback)
		routerGroup.Get("/{id}", handler.GetFeedbackByID)
		routerGroup.Patch("/{id}", handler.UpdateFeedback)
		routerGroup.Delete("/{id}", handler.DeleteFeedback)
	})
}

// CreateFeedback stores a guest review.
// @Summary Create feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body dto.CreateFeedbackRequest true "Feedback"
// @Success 201 {object} response.Data[dto.FeedbackResponse]
// @Failure 400 {object} response.Error
// @Router /v1/feedback [post]
func (handler *Handler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFeedback")
	defer scope.End()

	var req dto.CreateFeedbackRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	feedback, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create feedback")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, feedback)
}

// GetFeedback lists feedback.
// @Summary Get all feedback
// @Tags Feedback
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param customer_id query integer false "Filter by customer"
// @Param booking_id query integer false "Filter by booking"
// @Param rating query integer false "Filter by minimum rating"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetFeedbackResponse]
// @Failure 500 {object} response.Error
// @Router /v1/feedback [get]
func (handler *Handler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeedback")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterFromQuery(r,
		gDto.QueryFilter{Field: model.FieldCustomerID},
		gDto.QueryFilter{Field: model.FieldBookingID},
		gDto.QueryFilter{Field: model.FieldRating, Operator: gDto.FilterOperatorGreaterEq},
		gDto.QueryFilter{Field: model.FieldStatus},
	)

	feedback, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get feedback")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, feedback)
}

// GetFeedbackByID retrieves feedback by its ID.
// @Summary Get feedback by ID
// @Tags Feedback
// @Produce json
// @Param id path integer true "Feedback ID"
// @Success 200 {object} response.Data[dto.FeedbackResponse]
// @Failure 404 {object} response.Error
// @Router /v1/feedback/{id} [get]
func (handler *Handler) GetFeedbackByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeedbackByID")
	defer scope.End()

	id, err := shared.PathID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	feedback, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get feedback by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, feedback)
}

// UpdateFeedback edits feedback or marks it reviewed.
// @Summary Update feedback by ID
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path integer true "Feedback ID"
// @Param request body dto.UpdateFeedbackRequest true "Fields to change"
// @Success 200 {object} response.Data[dto.FeedbackResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/feedback/{id} [patch]
func (handler *Handler) UpdateFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateFeedback")
	defer scope.End()

	id, err := shared.PathID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	var req dto.UpdateFeedbackRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	feedback, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update feedback")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Feedback updated by user " + user)

	response.WithJSON(w, http.StatusOK, feedback)
}

// DeleteFeedback removes feedback.
// @Summary Delete feedback by ID
// @Tags Feedback
// @Produce json
// @Param id path integer true "Feedback ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/feedback/{id} [delete]
func (handler *Handler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFeedback")
	defer scope.End()

	id, err := shared.PathID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete feedback")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Feedback deleted by user " + user)

	response.WithMessage(w, http.StatusOK, "Feedback deleted successfully")
}
