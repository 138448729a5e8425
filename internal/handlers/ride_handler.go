package handlers

import (
	"errors"
	"io"
	"net/http"

	"taxigo/internal/middleware"
	"taxigo/internal/models"
	"taxigo/internal/services"
	"taxigo/internal/utils"

	"github.com/gin-gonic/gin"
)

type RideHandler struct {
	rideService services.RideService
}

func NewRideHandler(rideService services.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

type RideRequest struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

type CompleteRideRequest struct {
	Rating *float64 `json:"rating" validate:"omitempty,rating"`
}

// RequestRide handles POST /rides/request
func (h *RideHandler) RequestRide(c *gin.Context) {
	var request RideRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(&request); err != nil {
		utils.BadRequestResponse(c, "from and to are required")
		return
	}

	ride, err := h.rideService.Request(c.Request.Context(), middleware.UserID(c), request.From, request.To)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInsufficientFunds),
			errors.Is(err, models.ErrNoDriversAvailable):
			utils.BadRequestResponse(c, err.Error())
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	c.JSON(http.StatusOK, ride)
}

// ListRides handles GET /rides: the caller's own rides only.
func (h *RideHandler) ListRides(c *gin.Context) {
	rides, err := h.rideService.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	c.JSON(http.StatusOK, rides)
}

// CompleteRide handles POST /rides/complete/:rideId
func (h *RideHandler) CompleteRide(c *gin.Context) {
	// The body is optional; an absent body means no rating.
	var request CompleteRideRequest
	if err := c.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(&request); err != nil {
		utils.BadRequestResponse(c, "rating must be between 1 and 5")
		return
	}

	ride, err := h.rideService.Complete(c.Request.Context(), c.Param("rideId"), request.Rating)
	if err != nil {
		h.rideError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "ride": ride})
}

// CancelRide handles POST /rides/cancel/:rideId
func (h *RideHandler) CancelRide(c *gin.Context) {
	ride, err := h.rideService.Cancel(c.Request.Context(), c.Param("rideId"))
	if err != nil {
		h.rideError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "ride": ride})
}

// GetDriverLocation handles GET /rides/driver-location/:rideId
func (h *RideHandler) GetDriverLocation(c *gin.Context) {
	result, err := h.rideService.DriverLocation(c.Request.Context(), c.Param("rideId"))
	if err != nil {
		h.rideError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *RideHandler) rideError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrRideNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, models.ErrInvalidRideState):
		utils.BadRequestResponse(c, err.Error())
	default:
		utils.InternalServerErrorResponse(c)
	}
}
