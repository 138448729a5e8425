package handlers

import (
	"net/http"

	"taxigo/internal/services"
	"taxigo/internal/utils"

	"github.com/gin-gonic/gin"
)

type DriverHandler struct {
	driverService services.DriverService
}

func NewDriverHandler(driverService services.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// ListDrivers handles GET /drivers. Public: returns every driver,
// available or not.
func (h *DriverHandler) ListDrivers(c *gin.Context) {
	drivers, err := h.driverService.List(c.Request.Context())
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	c.JSON(http.StatusOK, drivers)
}
