//go:build wireinject
// +build wireinject

package di

import (
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	"hotelier/transport/http"
	"hotelier/transport/http/middleware"
	"hotelier/transport/http/router"

	availabilityService "hotelier/internal/domains/availability/service"
	bookingRepository "hotelier/internal/domains/booking/repository"
	bookingService "hotelier/internal/domains/booking/service"
	channelRepository "hotelier/internal/domains/channel/repository"
	channelService "hotelier/internal/domains/channel/service"
	customerRepository "hotelier/internal/domains/customer/repository"
	customerService "hotelier/internal/domains/customer/service"
	feedbackRepository "hotelier/internal/domains/feedback/repository"
	feedbackService "hotelier/internal/domains/feedback/service"
	notificationRepository "hotelier/internal/domains/notification/repository"
	notificationService "hotelier/internal/domains/notification/service"
	paymentRepository "hotelier/internal/domains/payment/repository"
	paymentService "hotelier/internal/domains/payment/service"
	roomRepository "hotelier/internal/domains/room/repository"
	roomService "hotelier/internal/domains/room/service"
	roomTypeRepository "hotelier/internal/domains/roomtype/repository"
	roomTypeService "hotelier/internal/domains/roomtype/service"
	userRepository "hotelier/internal/domains/user/repository"
	userService "hotelier/internal/domains/user/service"

	bookingHandler "hotelier/internal/handlers/booking"
	channelHandler "hotelier/internal/handlers/channel"
	customerHandler "hotelier/internal/handlers/customer"
	feedbackHandler "hotelier/internal/handlers/feedback"
	notificationHandler "hotelier/internal/handlers/notification"
	paymentHandler "hotelier/internal/handlers/payment"
	roomHandler "hotelier/internal/handlers/room"
	roomTypeHandler "hotelier/internal/handlers/roomtype"
	userHandler "hotelier/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	recordstore.NewBackend,
	recordstore.New,
	provideEvents,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	provideCache,
)

var repositories = wire.NewSet(
	userRepository.New,
	roomTypeRepository.New,
	roomRepository.New,
	channelRepository.New,
	customerRepository.New,
	bookingRepository.New,
	paymentRepository.New,
	feedbackRepository.New,
	notificationRepository.New,
)

var domains = wire.NewSet(
	repositories,
	userService.New,
	roomTypeService.New,
	roomService.New,
	availabilityService.New,
	channelService.New,
	customerService.New,
	bookingService.New,
	paymentService.New,
	feedbackService.New,
	notificationService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	userHandler.New,
	roomTypeHandler.New,
	roomHandler.New,
	channelHandler.New,
	customerHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	feedbackHandler.New,
	notificationHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}
