package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/x67digital/raffle/docs"
	adminhandlers "github.com/x67digital/raffle/internal/handlers/admin"
	authhandlers "github.com/x67digital/raffle/internal/handlers/auth"
	competitionhandlers "github.com/x67digital/raffle/internal/handlers/competitions"
	ordershandlers "github.com/x67digital/raffle/internal/handlers/orders"
	winnershandlers "github.com/x67digital/raffle/internal/handlers/winners"
	"github.com/x67digital/raffle/internal/service"
	"github.com/x67digital/raffle/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type CompetitionHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Featured(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	Purchase(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	GetOrders(w http.ResponseWriter, r *http.Request)
	GetMyTickets(w http.ResponseWriter, r *http.Request)
}

type WinnerHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	Stats(w http.ResponseWriter, r *http.Request)
	ListCompetitions(w http.ResponseWriter, r *http.Request)
	CreateCompetition(w http.ResponseWriter, r *http.Request)
	UpdateCompetition(w http.ResponseWriter, r *http.Request)
	DeleteCompetition(w http.ResponseWriter, r *http.Request)
	Draw(w http.ResponseWriter, r *http.Request)
	Refund(w http.ResponseWriter, r *http.Request)
	ListOrders(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler        AuthHandler
	CompetitionHandler CompetitionHandler
	OrderHandler       OrderHandler
	WinnerHandler      WinnerHandler
	AdminHandler       AdminHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:        authhandlers.New(s.AuthService),
		CompetitionHandler: competitionhandlers.New(s.CompetitionService),
		OrderHandler:       ordershandlers.New(s.TicketService),
		WinnerHandler:      winnershandlers.New(s.DrawService),
		AdminHandler:       adminhandlers.New(s.CompetitionService, s.DrawService, s.TicketService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.AuthHandler.Register)
			r.Post("/login", h.AuthHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(auth.AuthMiddleware)
				r.Get("/me", h.AuthHandler.Me)
			})
		})

		r.Route("/competitions", func(r chi.Router) {
			r.Get("/", h.CompetitionHandler.List)
			r.Get("/featured", h.CompetitionHandler.Featured)
			r.Get("/{id}", h.CompetitionHandler.Get)
		})
		r.Get("/winners", h.WinnerHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Post("/tickets/purchase", h.OrderHandler.Purchase)
			r.Get("/tickets/my", h.OrderHandler.GetMyTickets)
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.OrderHandler.GetOrders)
				r.Post("/{id}/confirm", h.OrderHandler.Confirm)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.AuthMiddleware, auth.AdminMiddleware)
			r.Get("/stats", h.AdminHandler.Stats)
			r.Route("/competitions", func(r chi.Router) {
				r.Get("/", h.AdminHandler.ListCompetitions)
				r.Post("/", h.AdminHandler.CreateCompetition)
				r.Put("/{id}", h.AdminHandler.UpdateCompetition)
				r.Delete("/{id}", h.AdminHandler.DeleteCompetition)
				r.Post("/{id}/draw", h.AdminHandler.Draw)
			})
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.AdminHandler.ListOrders)
				r.Post("/{id}/refund", h.AdminHandler.Refund)
			})
			r.Get("/users", h.AdminHandler.ListUsers)
		})
	})

	return r
}
