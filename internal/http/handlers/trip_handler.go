// README: Customer-facing trip handlers: create, read, update, cancel, list, stats.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tripdesk/internal/http/middleware"
	"tripdesk/internal/infra"
	"tripdesk/internal/modules/trip"
	"tripdesk/internal/types"
)

const dateLayout = "2006-01-02"

type TripHandler struct {
	trips *trip.Service
}

func NewTripHandler(svc *trip.Service) *TripHandler {
	return &TripHandler{trips: svc}
}

// customer returns the caller identity when it carries a customer reference,
// else writes a 401 and returns nil.
func customer(c *gin.Context) *infra.Identity {
	id := middleware.Caller(c)
	if id == nil || id.CustomerID == "" {
		writeError(c, http.StatusUnauthorized, "authentication required")
		return nil
	}
	return id
}

type createTripReq struct {
	Title               string   `json:"title"`
	Category            string   `json:"category"`
	Origin              string   `json:"origin"`
	Destination         string   `json:"destination"`
	Stops               []string `json:"stops"`
	PreferredDate       string   `json:"preferred_date"`
	PreferredTime       string   `json:"preferred_time"`
	ReturnDate          *string  `json:"return_date"`
	ReturnTime          *string  `json:"return_time"`
	PassengerCount      int      `json:"passenger_count"`
	PassengerNames      []string `json:"passenger_names"`
	ContactName         string   `json:"contact_name"`
	ContactPhone        string   `json:"contact_phone"`
	ContactEmail        string   `json:"contact_email"`
	VehicleType         *string  `json:"vehicle_type"`
	SpecialRequirements *string  `json:"special_requirements"`
	BudgetCents         *int64   `json:"budget_cents"`
	Notes               *string  `json:"notes"`
}

func (h *TripHandler) Create(c *gin.Context) {
	id := customer(c)
	if id == nil {
		return
	}
	var req createTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	cmd := trip.CreateCommand{
		CustomerID:          types.ID(id.CustomerID),
		Title:               req.Title,
		Category:            req.Category,
		Origin:              req.Origin,
		Destination:         req.Destination,
		Stops:               req.Stops,
		PreferredTime:       req.PreferredTime,
		ReturnTime:          req.ReturnTime,
		PassengerCount:      req.PassengerCount,
		PassengerNames:      req.PassengerNames,
		ContactName:         req.ContactName,
		ContactPhone:        req.ContactPhone,
		ContactEmail:        req.ContactEmail,
		VehicleType:         req.VehicleType,
		SpecialRequirements: req.SpecialRequirements,
		BudgetCents:         req.BudgetCents,
		Notes:               req.Notes,
	}
	if req.PreferredDate != "" {
		d, err := time.Parse(dateLayout, req.PreferredDate)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid preferred_date")
			return
		}
		cmd.PreferredDate = d
	}
	if req.ReturnDate != nil {
		d, err := time.Parse(dateLayout, *req.ReturnDate)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid return_date")
			return
		}
		cmd.ReturnDate = &d
	}

	tripID, err := h.trips.Create(c.Request.Context(), cmd)
	if err != nil {
		writeTripError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"trip_id": tripID, "status": trip.StatusPending})
}

func (h *TripHandler) Get(c *gin.Context) {
	id := customer(c)
	if id == nil {
		return
	}
	scope := types.ID(id.CustomerID)
	t, err := h.trips.Get(c.Request.Context(), types.ID(c.Param("id")), &scope)
	if err != nil {
		writeTripError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

type updateTripReq struct {
	Title               *string   `json:"title"`
	Category            *string   `json:"category"`
	Origin              *string   `json:"origin"`
	Destination         *string   `json:"destination"`
	Stops               *[]string `json:"stops"`
	PreferredDate       *string   `json:"preferred_date"`
	PreferredTime       *string   `json:"preferred_time"`
	ReturnDate          *string   `json:"return_date"`
	ReturnTime          *string   `json:"return_time"`
	PassengerCount      *int      `json:"passenger_count"`
	PassengerNames      *[]string `json:"passenger_names"`
	ContactName         *string   `json:"contact_name"`
	ContactPhone        *string   `json:"contact_phone"`
	ContactEmail        *string   `json:"contact_email"`
	VehicleType         *string   `json:"vehicle_type"`
	SpecialRequirements *string   `json:"special_requirements"`
	BudgetCents         *int64    `json:"budget_cents"`
	Notes               *string   `json:"notes"`
}

func (h *TripHandler) Update(c *gin.Context) {
	id := customer(c)
	if id == nil {
		return
	}
	var req updateTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	patch := trip.Patch{
		Title:               req.Title,
		Origin:              req.Origin,
		Destination:         req.Destination,
		Stops:               req.Stops,
		PreferredTime:       req.PreferredTime,
		ReturnTime:          req.ReturnTime,
		PassengerCount:      req.PassengerCount,
		PassengerNames:      req.PassengerNames,
		ContactName:         req.ContactName,
		ContactPhone:        req.ContactPhone,
		ContactEmail:        req.ContactEmail,
		VehicleType:         req.VehicleType,
		SpecialRequirements: req.SpecialRequirements,
		BudgetCents:         req.BudgetCents,
		Notes:               req.Notes,
	}
	if req.Category != nil {
		cat := trip.Category(*req.Category)
		patch.Category = &cat
	}
	if req.PreferredDate != nil {
		d, err := time.Parse(dateLayout, *req.PreferredDate)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid preferred_date")
			return
		}
		patch.PreferredDate = &d
	}
	if req.ReturnDate != nil {
		d, err := time.Parse(dateLayout, *req.ReturnDate)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid return_date")
			return
		}
		patch.ReturnDate = &d
	}

	err := h.trips.Update(c.Request.Context(), trip.UpdateCommand{
		TripID:     types.ID(c.Param("id")),
		CustomerID: types.ID(id.CustomerID),
		Patch:      patch,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trip updated"})
}

func (h *TripHandler) Cancel(c *gin.Context) {
	id := customer(c)
	if id == nil {
		return
	}
	scope := types.ID(id.CustomerID)
	err := h.trips.Cancel(c.Request.Context(), trip.CancelCommand{
		TripID:     types.ID(c.Param("id")),
		CustomerID: &scope,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": trip.StatusCancelled})
}

func (h *TripHandler) List(c *gin.Context) {
	id := customer(c)
	if id == nil {
		return
	}
	scope := types.ID(id.CustomerID)
	filter := trip.Filter{CustomerID: &scope}
	if raw := c.Query("status"); raw != "" {
		status, ok := trip.ParseStatus(raw)
		if !ok {
			writeError(c, http.StatusBadRequest, "invalid status filter")
			return
		}
		filter.Status = &status
	}

	trips, pagination, err := h.trips.List(c.Request.Context(), filter, pageParams(c))
	if err != nil {
		writeTripError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips, "pagination": pagination})
}

func (h *TripHandler) Stats(c *gin.Context) {
	id := customer(c)
	if id == nil {
		return
	}
	stats, err := h.trips.Stats(c.Request.Context(), types.ID(id.CustomerID))
	if err != nil {
		writeTripError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func pageParams(c *gin.Context) trip.PageParams {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return trip.NewPageParams(page, limit)
}
