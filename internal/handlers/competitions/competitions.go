package competitions

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/x67digital/raffle/internal/domain"
	"github.com/x67digital/raffle/internal/dto"
	"github.com/x67digital/raffle/internal/service/competitionservice"
	"github.com/x67digital/raffle/pkg/utils"
)

type Service interface {
	List(ctx context.Context, status, category string) ([]domain.Competition, error)
	Featured(ctx context.Context) ([]domain.Competition, error)
	Get(ctx context.Context, id int) (*domain.Competition, error)
}

type CompetitionHandler struct {
	competitionService Service
}

func New(competitionService Service) *CompetitionHandler {
	return &CompetitionHandler{
		competitionService: competitionService,
	}
}

// List godoc
//
//	@Summary		List visible competitions
//	@Description	Returns visible competitions with derived status, optionally filtered
//	@Tags			Competitions
//	@Produce		json
//	@Param			status		query		string	false	"Filter by derived status"	Enums(live, ending_soon, sold_out, completed)
//	@Param			category	query		string	false	"Filter by category"
//	@Success		200			{array}		dto.CompetitionResponseDTO
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/competitions [get]
func (h *CompetitionHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	category := r.URL.Query().Get("category")

	comps, err := h.competitionService.List(r.Context(), status, category)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromCompetitions(comps, time.Now()))
}

// Featured godoc
//
//	@Summary		List featured competitions open for purchase
//	@Tags			Competitions
//	@Produce		json
//	@Success		200	{array}		dto.CompetitionResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/competitions/featured [get]
func (h *CompetitionHandler) Featured(w http.ResponseWriter, r *http.Request) {
	comps, err := h.competitionService.Featured(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromCompetitions(comps, time.Now()))
}

// Get godoc
//
//	@Summary		Get a competition by id
//	@Tags			Competitions
//	@Produce		json
//	@Param			id	path		int	true	"Competition ID"
//	@Success		200	{object}	dto.CompetitionResponseDTO
//	@Failure		404	{object}	utils.Response	"Competition not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/competitions/{id} [get]
func (h *CompetitionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid competition id")
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
	resp := dto.FromCompetition(comp, time.Now())
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
