// README: Operator handlers: fleet-wide listing, assignment, status advance.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripdesk/internal/modules/trip"
	"tripdesk/internal/types"
)

type AdminHandler struct {
	trips *trip.Service
}

func NewAdminHandler(svc *trip.Service) *AdminHandler {
	return &AdminHandler{trips: svc}
}

func (h *AdminHandler) List(c *gin.Context) {
	var filter trip.Filter
	if raw := c.Query("status"); raw != "" {
		status, ok := trip.ParseStatus(raw)
		if !ok {
			writeError(c, http.StatusBadRequest, "invalid status filter")
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("category"); raw != "" {
		category, ok := trip.ParseCategory(raw)
		if !ok {
			writeError(c, http.StatusBadRequest, "invalid category filter")
			return
		}
		filter.Category = &category
	}
	if raw := c.Query("start_date"); raw != "" {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid start_date")
			return
		}
		filter.StartDate = &d
	}
	if raw := c.Query("end_date"); raw != "" {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid end_date")
			return
		}
		filter.EndDate = &d
	}

	trips, pagination, err := h.trips.List(c.Request.Context(), filter, pageParams(c))
	if err != nil {
		writeTripError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips, "pagination": pagination})
}

type assignTripReq struct {
	DriverID           string `json:"driver_id"`
	VehicleID          string `json:"vehicle_id"`
	EstimatedCostCents *int64 `json:"estimated_cost_cents"`
}

func (h *AdminHandler) Assign(c *gin.Context) {
	var req assignTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.trips.Assign(c.Request.Context(), trip.AssignCommand{
		TripID:             types.ID(c.Param("id")),
		DriverID:           types.ID(req.DriverID),
		VehicleID:          types.ID(req.VehicleID),
		EstimatedCostCents: req.EstimatedCostCents,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": trip.StatusConfirmed})
}

type updateStatusReq struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.trips.UpdateStatus(c.Request.Context(), trip.UpdateStatusCommand{
		TripID: types.ID(c.Param("id")),
		Status: req.Status,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}
