package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Domenick1991/flightsearch/internal/domain"
	"github.com/Domenick1991/flightsearch/internal/service/saved"
	"github.com/gin-gonic/gin"
)

type SavedFlightHandler struct {
	service saved.SavedFlightUseCase
	logger  *slog.Logger
}

type saveFlightRequest struct {
	FlightNumber jsonText `json:"flightNumber"`
	Departure    jsonText `json:"departure"`
	Arrival      jsonText `json:"arrival"`
}

// jsonText accepts a JSON string or number. Absent and null leave it unset.
type jsonText struct {
	value *string
}

func (t *jsonText) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.value = &s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	s = n.String()
	t.value = &s
	return nil
}

type saveFlightResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type deleteFlightResponse struct {
	Message     string `json:"message"`
	DeletedRows int64  `json:"deletedRows"`
}

func NewSavedFlightHandler(service saved.SavedFlightUseCase, logger *slog.Logger) *SavedFlightHandler {
	return &SavedFlightHandler{service: service, logger: logger}
}

func (h *SavedFlightHandler) Register(router *gin.RouterGroup) {
	router.POST("/save-flight", h.save)
	router.GET("/saved-flights", h.list)
	router.DELETE("/delete-flight/:flightNumber", h.delete)
}

func (h *SavedFlightHandler) save(c *gin.Context) {
	var req saveFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id, err := h.service.Save(c.Request.Context(), saved.SaveInput{
		FlightNumber: req.FlightNumber.value,
		Departure:    req.Departure.value,
		Arrival:      req.Arrival.value,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateFlight) {
			h.logger.InfoContext(c.Request.Context(), "flight already saved", "flight_number", req.FlightNumber.value)
			c.JSON(http.StatusConflict, gin.H{"error": "Flight already exists in the database."})
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, saveFlightResponse{Message: "Flight saved successfully", ID: id})
}

func (h *SavedFlightHandler) list(c *gin.Context) {
	flights, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *SavedFlightHandler) delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), c.Param("flightNumber"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, deleteFlightResponse{Message: "Flight deleted successfully", DeletedRows: deleted})
}
