package winners

import (
	"context"
	"net/http"

	"github.com/x67digital/raffle/internal/domain"
	"github.com/x67digital/raffle/internal/dto"
	"github.com/x67digital/raffle/pkg/utils"
)

type Service interface {
	Winners(ctx context.Context) ([]domain.Winner, error)
}

type WinnerHandler struct {
	drawService Service
}

func New(drawService Service) *WinnerHandler {
	return &WinnerHandler{
		drawService: drawService,
	}
}

// List godoc
//
//	@Summary		List recent winners
//	@Description	Returns the most recent winners, newest first
//	@Tags			Winners
//	@Produce		json
//	@Success		200	{array}		dto.WinnerResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/winners [get]
func (h *WinnerHandler) List(w http.ResponseWriter, r *http.Request) {
	winners, err := h.drawService.Winners(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	response := make([]dto.WinnerResponseDTO, 0, len(winners))
	for i := range winners {
		response = append(response, dto.FromWinner(&winners[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
