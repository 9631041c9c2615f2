package repo

import (
	"github.com/x67digital/raffle/internal/pg"
	competitionrepo "github.com/x67digital/raffle/internal/repo/competition-repo"
	orderrepo "github.com/x67digital/raffle/internal/repo/order-repo"
	userrepo "github.com/x67digital/raffle/internal/repo/user-repo"
	winnerrepo "github.com/x67digital/raffle/internal/repo/winner-repo"
)

type Repositories struct {
	UserRepo        *userrepo.Repository
	CompetitionRepo *competitionrepo.Repository
	OrderRepo       *orderrepo.Repository
	WinnerRepo      *winnerrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:        userrepo.New(conn),
		CompetitionRepo: competitionrepo.New(conn, txManager),
		OrderRepo:       orderrepo.New(conn, txManager),
		WinnerRepo:      winnerrepo.New(conn),
	}
}
