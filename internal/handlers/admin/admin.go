package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/x67digital/raffle/internal/domain"
	"github.com/x67digital/raffle/internal/dto"
	"github.com/x67digital/raffle/internal/service/competitionservice"
	"github.com/x67digital/raffle/internal/service/drawservice"
	"github.com/x67digital/raffle/internal/service/ticketservice"
	"github.com/x67digital/raffle/pkg/utils"
)

type CompetitionService interface {
	ListAll(ctx context.Context) ([]domain.Competition, error)
	Get(ctx context.Context, id int) (*domain.Competition, error)
	Create(ctx context.Context, comp *domain.Competition) (*domain.Competition, error)
	Update(ctx context.Context, comp *domain.Competition) (*domain.Competition, error)
	Delete(ctx context.Context, id int) error
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	Stats(ctx context.Context) (*domain.AdminStats, error)
}

type DrawService interface {
	Draw(ctx context.Context, competitionID int) (*domain.Winner, error)
}

type TicketService interface {
	Refund(ctx context.Context, orderID int) (*domain.Order, error)
}

type AdminHandler struct {
	competitionService CompetitionService
	drawService        DrawService
	ticketService      TicketService
}

func New(competitionService CompetitionService, drawService DrawService, ticketService TicketService) *AdminHandler {
	return &AdminHandler{
		competitionService: competitionService,
		drawService:        drawService,
		ticketService:      ticketService,
	}
}

// Stats godoc
//
//	@Summary		Platform statistics
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.AdminStatsDTO
//	@Failure		403	{object}	utils.Response	"Admin access required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/stats [get]
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.competitionService.Stats(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AdminStatsDTO{
		TotalUsers:         stats.TotalUsers,
		TotalCompetitions:  stats.TotalCompetitions,
		ActiveCompetitions: stats.ActiveCompetitions,
		TotalOrders:        stats.TotalOrders,
		TotalRevenue:       stats.TotalRevenue,
		TicketsSoldToday:   stats.TicketsSoldToday,
	})
}

// ListCompetitions godoc
//
//	@Summary		List all competitions including hidden ones
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.CompetitionResponseDTO
//	@Failure		403	{object}	utils.Response	"Admin access required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/competitions [get]
func (h *AdminHandler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	comps, err := h.competitionService.ListAll(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromCompetitions(comps, time.Now()))
}

// CreateCompetition godoc
//
//	@Summary		Create a competition
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.CreateCompetitionRequestDTO	true	"Competition"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.CompetitionResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body"
//	@Failure		403	{object}	utils.Response	"Admin access required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/competitions [post]
func (h *AdminHandler) CreateCompetition(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCompetitionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" || req.TotalTickets <= 0 || req.TicketPrice <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Title, total_tickets and ticket_price are required")
		return
	}
	drawDate, err := time.Parse(time.RFC3339, req.DrawDate)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid draw_date, expected RFC3339")
		return
	}

	comp := &domain.Competition{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		PrizeValue:   req.PrizeValue,
		TicketPrice:  req.TicketPrice,
		TotalTickets: req.TotalTickets,
		DrawDate:     drawDate,
		ImageURL:     req.ImageURL,
		Featured:     req.Featured,
		IsVisible:    req.IsVisible,
	}
	created, err := h.competitionService.Create(r.Context(), comp)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.FromCompetition(created, time.Now()))
}

// UpdateCompetition godoc
//
//	@Summary		Update a competition
//	@Description	Applies a partial update; omitted fields are left unchanged
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int								true	"Competition ID"
//	@Param			request	body	dto.UpdateCompetitionRequestDTO	true	"Fields to update"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.CompetitionResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body"
//	@Failure		403	{object}	utils.Response	"Admin access required"
//	@Failure		404	{object}	utils.Response	"Competition not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/competitions/{id} [put]
func (h *AdminHandler) UpdateCompetition(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid competition id")
		return
	}
	var req dto.UpdateCompetitionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comp, err := h.competitionService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, competitionservice.ErrCompetitionNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Competition not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if req.Title != nil {
		comp.Title = *req.Title
	}
	if req.Description != nil {
		comp.Description = *req.Description
	}
	if req.Category != nil {
		comp.Category = *req.Category
	}
	if req.PrizeValue != nil {
		comp.PrizeValue = *req.PrizeValue
	}
	if req.TicketPrice != nil {
		comp.TicketPrice = *req.TicketPrice
	}
	if req.TotalTickets != nil {
		comp.TotalTickets = *req.TotalTickets
	}
	if req.DrawDate != nil {
		drawDate, err := time.Parse(time.RFC3339, *req.DrawDate)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid draw_date, expected RFC3339")
			return
		}
		comp.DrawDate = drawDate
	}
	if req.ImageURL != nil {
		comp.ImageURL = *req.ImageURL
	}
	if req.Featured != nil {
		comp.Featured = *req.Featured
	}
	if req.IsVisible != nil {
		comp.IsVisible = *req.IsVisible
	}

	updated, err := h.competitionService.Update(r.Context(), comp)
	if err != nil {
		if errors.Is(err, competitionservice.ErrCompetitionNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Competition not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromCompetition(updated, time.Now()))
}

// DeleteCompetition godoc
//
//	@Summary		Delete a competition
//	@Tags			Admin
//	@Produce		json
//	@Param			id	path	int	true	"Competition ID"
//	@Security		BearerAuth
//	@Success		200	{object}	utils.Response
//	@Failure		403	{object}	utils.Response	"Admin access required"
//	@Failure		404	{object}	utils.Response	"Competition not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/competitions/{id} [delete]
func (h *AdminHandler) DeleteCompetition(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid competition id")
		return
	}
	if err := h.competitionService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, competitionservice.ErrCompetitionNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Competition not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Competition deleted"})
}

// Draw godoc
//
//	@Summary		Draw a winner for a competition
//	@Description	Selects one winning ticket uniformly among sold tickets and finalizes the competition
//	@Tags			Admin
//	@Produce		json
//	@Param			id	path	int	true	"Competition ID"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.WinnerResponseDTO
//	@Failure		400	{object}	utils.Response	"No tickets sold yet"
//	@Failure		403	{object}	utils.Response	"Admin access required"
//	@Failure		404	{object}	utils.Response	"Competition not found"
//	@Failure		409	{object}	utils.Response	"Winner already drawn"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/competitions/{id}/draw [post]
func (h *AdminHandler) Draw(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid competition id")
		return
	}
	winner, err := h.drawService.Draw(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, drawservice.ErrCompetitionNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, drawservice.ErrAlreadyDrawn):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, drawservice.ErrNoEntries):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromWinner(winner))
}

// Refund godoc
//
//	@Summary		Refund a completed order
//	@Description	Marks the order refunded and returns its ticket numbers to the pool
//	@Tags			Admin
//	@Produce		json
//	@Param			id	path	int	true	"Order ID"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		400	{object}	utils.Response	"Order is not eligible for refund"
//	@Failure		403	{object}	utils.Response	"Admin access required"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/orders/{id}/refund [post]
func (h *AdminHandler) Refund(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	order, err := h.ticketService.Refund(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ticketservice.ErrOrderNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ticketservice.ErrOrderNotRefundable):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromOrder(order))
}

// ListOrders godoc
//
//	@Summary		List all orders
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.OrderResponseDTO
//	@Failure		403	{object}	utils.Response	"Admin access required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/orders [get]
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.competitionService.ListOrders(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromOrders(orders))
}

// ListUsers godoc
//
//	@Summary		List all users
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.UserDTO
//	@Failure		403	{object}	utils.Response	"Admin access required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.competitionService.ListUsers(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	response := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		response = append(response, dto.UserDTO{
			ID:        u.ID,
			Email:     u.Email,
			FullName:  u.FullName,
			Role:      u.Role,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
