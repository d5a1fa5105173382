package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Domenick1991/flightsearch/internal/domain"
	"github.com/Domenick1991/flightsearch/internal/service/search"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service search.SearchUseCase
	logger  *slog.Logger
}

func NewFlightHandler(service search.SearchUseCase, logger *slog.Logger) *FlightHandler {
	return &FlightHandler{service: service, logger: logger}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/flights", h.search)
}

// search answers with the provider body byte for byte.
func (h *FlightHandler) search(c *gin.Context) {
	input := search.SearchInput{
		DepartDate: c.Query("departDate"),
		ReturnDate: c.Query("returnDate"),
		FromID:     c.Query("fromId"),
		ToID:       c.Query("toId"),
		TripType:   c.Query("tripType"),
	}

	body, err := h.service.Search(c.Request.Context(), input)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"errors": vErr.Messages})
		case errors.Is(err, domain.ErrProvider):
			h.logger.ErrorContext(c.Request.Context(), "error fetching flights", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": internalServerError})
		default:
			_ = c.Error(err)
		}
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
