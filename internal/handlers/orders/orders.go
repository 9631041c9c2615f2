package orders

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
	"github.com/x67digital/raffle/internal/service/ticketservice"
	"github.com/x67digital/raffle/pkg/auth"
	"github.com/x67digital/raffle/pkg/utils"
)

type Service interface {
	Allocate(ctx context.Context, userID, competitionID, quantity int) (*domain.Order, error)
	Confirm(ctx context.Context, orderID, userID int) (*domain.Order, error)
	GetOrders(ctx context.Context, userID int) ([]domain.Order, error)
	GetMyTickets(ctx context.Context, userID int) ([]domain.TicketGroup, error)
}

type OrderHandler struct {
	ticketService Service
}

func New(ticketService Service) *OrderHandler {
	return &OrderHandler{
		ticketService: ticketService,
	}
}

// Purchase godoc
//
//	@Summary		Purchase tickets
//	@Description	Allocates unique ticket numbers and creates a pending order
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.PurchaseRequestDTO	true	"Purchase request"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.OrderResponseDTO
//	@Failure		400	{object}	utils.Response	"Competition unavailable or not enough tickets"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Competition not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/tickets/purchase [post]
func (h *OrderHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.PurchaseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.ticketService.Allocate(r.Context(), userID, req.CompetitionID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, ticketservice.ErrCompetitionNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ticketservice.ErrCompetitionUnavailable),
			errors.Is(err, ticketservice.ErrInsufficientTickets),
			errors.Is(err, ticketservice.ErrQuantityInvalid):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.FromOrder(order))
}

// Confirm godoc
//
//	@Summary		Confirm an order after payment
//	@Description	Marks the order completed and permanently consumes its ticket numbers
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path	int	true	"Order ID"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Order already completed or tickets taken"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/orders/{id}/confirm [post]
func (h *OrderHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	order, err := h.ticketService.Confirm(r.Context(), orderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ticketservice.ErrOrderNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ticketservice.ErrOrderAlreadyCompleted),
			errors.Is(err, ticketservice.ErrTicketsTaken):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromOrder(order))
}

// GetOrders godoc
//
//	@Summary		List the user's orders
//	@Tags			Orders
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.OrderResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/orders [get]
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	orders, err := h.ticketService.GetOrders(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromOrders(orders))
}

// GetMyTickets godoc
//
//	@Summary		List the user's tickets grouped by competition
//	@Tags			Orders
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.TicketGroupDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/tickets/my [get]
func (h *OrderHandler) GetMyTickets(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	groups, err := h.ticketService.GetMyTickets(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.TicketGroupDTO, 0, len(groups))
	for _, g := range groups {
		response = append(response, dto.TicketGroupDTO{
			CompetitionID:    g.CompetitionID,
			CompetitionTitle: g.CompetitionTitle,
			DrawDate:         g.DrawDate.Format(time.RFC3339),
			Status:           g.Status,
			Tickets:          g.Tickets,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
