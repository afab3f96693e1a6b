package router

import (
	"hotelier/internal/handlers/booking"
	"hotelier/internal/handlers/channel"
	"hotelier/internal/handlers/customer"
	"hotelier/internal/handlers/feedback"
	"hotelier/internal/handlers/notification"
	"hotelier/internal/handlers/payment"
	"hotelier/internal/handlers/room"
	"hotelier/internal/handlers/roomtype"
	"hotelier/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	User         user.Handler
	RoomType     roomtype.Handler
	Room         room.Handler
	Channel      channel.Handler
	Customer     customer.Handler
	Booking      booking.Handler
	Payment      payment.Handler
	Feedback     feedback.Handler
	Notification notification.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.RoomType.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Channel.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Feedback.Router(routerGroup)
		r.DomainHandlers.Notification.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
