package service

import (
	"context"

	"github.com/x67digital/raffle/internal/cache"
	"github.com/x67digital/raffle/internal/notify"
	"github.com/x67digital/raffle/internal/pg"
	"github.com/x67digital/raffle/internal/repo"
	"github.com/x67digital/raffle/internal/service/authservice"
	"github.com/x67digital/raffle/internal/service/competitionservice"
	"github.com/x67digital/raffle/internal/service/drawservice"
	"github.com/x67digital/raffle/internal/service/ticketservice"
	pkgauth "github.com/x67digital/raffle/pkg/auth"
)

// Notifier is the outbound event sink shared by the ticket and draw services.
type Notifier interface {
	OrderConfirmed(ctx context.Context, event notify.OrderConfirmedEvent) error
	WinnerDrawn(ctx context.Context, event notify.WinnerDrawnEvent) error
}

type Services struct {
	AuthService        *authservice.Service
	CompetitionService *competitionservice.Service
	TicketService      *ticketservice.Service
	DrawService        *drawservice.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, listingCache *cache.Cache, notifier Notifier) *Services {
	authService := authservice.New(repo.UserRepo, &pkgauth.HashService{}, &pkgauth.JWTService{})
	competitionService := competitionservice.New(repo.CompetitionRepo, repo.OrderRepo, repo.UserRepo, listingCache)
	ticketService := ticketservice.New(repo.CompetitionRepo, repo.OrderRepo, repo.UserRepo, txManager, notifier)
	drawService := drawservice.New(repo.CompetitionRepo, repo.OrderRepo, repo.WinnerRepo, repo.UserRepo, txManager, notifier)

	return &Services{
		AuthService:        authService,
		CompetitionService: competitionService,
		TicketService:      ticketService,
		DrawService:        drawService,
	}
}
