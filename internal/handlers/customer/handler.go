package customer

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/customer/model"
	"hotelier/internal/domains/customer/model/dto"
	"hotelier/internal/domains/customer/service"
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
	service service.Customer
	otel    otel.Otel
}

func New(service service.Customer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/customers", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCustomer)
		routerGroup.Get("/", handler.GetCustomers)
		routerGroup.Get("/{id}", handler.GetCustomerByID)
		routerGroup.Get("/{id}/loyalty", handler.GetCustomerLoyalty)
		routerGroup.Patch("/{id}", handler.UpdateCustomer)
		routerGroup.Delete("/{id}", handler.DeleteCustomer)
	})
}

// CreateCustomer registers a guest. Email and phone are unique.
// @Summary Create a new customer
// @Tags Customer
// @Accept json
// @Produce json
// @Param request body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} response.Data[dto.CustomerResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/customers [post]
func (handler *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCustomer")
	defer scope.End()

	var req dto.CreateCustomerRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	customer, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create customer")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Customer created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, customer)
}

// GetCustomers retrieves all customers.
// @Summary Get all customers
// @Tags Customer
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param email query string false "Filter by email"
// @Param phone query string false "Filter by phone"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetCustomersResponse]
// @Failure 500 {object} response.Error
// @Router /v1/customers [get]
func (handler *Handler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterFromQuery(r,
		gDto.QueryFilter{Field: model.FieldName, Operator: gDto.FilterOperatorLike},
		gDto.QueryFilter{Field: model.FieldEmail, Operator: gDto.FilterOperatorLike},
		gDto.QueryFilter{Field: model.FieldPhone},
		gDto.QueryFilter{Field: model.FieldStatus},
	)

	customers, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customers")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Customers retrieved successfully")

	response.WithJSON(w, http.StatusOK, customers)
}

// GetCustomerByID retrieves a customer by its ID.
// @Summary Get a customer by ID
// @Tags Customer
// @Produce json
// @Param id path integer true "Customer ID"
// @Success 200 {object} response.Data[dto.CustomerResponse]
// @Failure 404 {object} response.Error
// @Router /v1/customers/{id} [get]
func (handler *Handler) GetCustomerByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomerByID")
	defer scope.End()

	id, err := shared.PathID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	customer, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customer by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, customer)
}

// GetCustomerLoyalty reports the tier, discount and distance to the next tier.
// @Summary Get a customer's loyalty summary
// @Tags Customer
// @Produce json
// @Param id path integer true "Customer ID"
// @Success 200 {object} response.Data[dto.LoyaltyResponse]
// @Failure 404 {object} response.Error
// @Router /v1/customers/{id}/loyalty [get]
func (handler *Handler) GetCustomerLoyalty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomerLoyalty")
	defer scope.End()

	id, err := shared.PathID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	loyalty, err := handler.service.Loyalty(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customer loyalty")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, loyalty)
}

// UpdateCustomer updates an existing customer by its ID.
// @Summary Update a customer by ID
// @Tags Customer
// @Accept json
// @Produce json
// @Param id path integer true "Customer ID"
// @Param request body dto.UpdateCustomerRequest true "Fields to change"
// @Success 200 {object} response.Data[dto.CustomerResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/customers/{id} [patch]
func (handler *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCustomer")
	defer scope.End()

	id, err := shared.PathID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	var req dto.UpdateCustomerRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	customer, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update customer")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Customer updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, customer)
}

// DeleteCustomer marks a customer inactive. Booking history is kept.
// @Summary Deactivate a customer by ID
// @Tags Customer
// @Produce json
// @Param id path integer true "Customer ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/customers/{id} [delete]
func (handler *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCustomer")
	defer scope.End()

	id, err := shared.PathID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete customer")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Customer deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Customer deleted successfully")
}
