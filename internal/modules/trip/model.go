// README: Trip aggregate, status machine, and category definitions.
package trip

import (
	"errors"
	"strings"
	"time"

	"tripdesk/internal/modules/fleet"
	"tripdesk/internal/types"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// AllowedTransitions represents the trip state flow (diagram) as code.
var AllowedTransitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition may leave the status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ParseStatus validates a raw status value.
func ParseStatus(raw string) (Status, bool) {
	switch Status(strings.ToLower(raw)) {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(strings.ToLower(raw)), true
	}
	return "", false
}

type Category string

const (
	CategoryLuxury    Category = "luxury"
	CategorySafari    Category = "safari"
	CategoryTour      Category = "tour"
	CategoryAdventure Category = "adventure"
	CategoryCasual    Category = "casual"
)

// ParseCategory validates a raw category value, case-insensitively.
func ParseCategory(raw string) (Category, bool) {
	switch Category(strings.ToLower(raw)) {
	case CategoryLuxury, CategorySafari, CategoryTour, CategoryAdventure, CategoryCasual:
		return Category(strings.ToLower(raw)), true
	}
	return "", false
}

var (
	ErrValidation          = errors.New("missing or invalid field")
	ErrNotFound            = errors.New("trip not found")
	ErrInvalidState        = errors.New("invalid state transition")
	ErrTerminalState       = errors.New("trip is already terminal")
	ErrEmptyPatch          = errors.New("no fields to update")
	ErrResourceUnavailable = errors.New("resource unavailable")
	ErrConflict            = errors.New("trip state conflict")
)

type Trip struct {
	ID                  types.ID     `json:"trip_id"`
	CustomerID          types.ID     `json:"customer_id"`
	Title               string       `json:"title"`
	Category            Category     `json:"category"`
	Origin              string       `json:"origin"`
	Destination         string       `json:"destination"`
	Stops               []string     `json:"stops,omitempty"`
	PreferredDate       time.Time    `json:"preferred_date"`
	PreferredTime       string       `json:"preferred_time"`
	ReturnDate          *time.Time   `json:"return_date,omitempty"`
	ReturnTime          *string      `json:"return_time,omitempty"`
	PassengerCount      int          `json:"passenger_count"`
	PassengerNames      []string     `json:"passenger_names,omitempty"`
	ContactName         string       `json:"contact_name"`
	ContactPhone        string       `json:"contact_phone"`
	ContactEmail        string       `json:"contact_email"`
	VehicleType         *string      `json:"vehicle_type,omitempty"`
	SpecialRequirements *string      `json:"special_requirements,omitempty"`
	Budget              *types.Money `json:"budget,omitempty"`
	Notes               *string      `json:"notes,omitempty"`
	Status              Status       `json:"status"`
	AssignedDriverID    *types.ID    `json:"assigned_driver_id,omitempty"`
	AssignedVehicleID   *types.ID    `json:"assigned_vehicle_id,omitempty"`
	EstimatedCost       *types.Money `json:"estimated_cost,omitempty"`
	ActualCost          *types.Money `json:"actual_cost,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`

	// Denormalized projections filled by the store's joins.
	Driver  *fleet.Driver  `json:"driver,omitempty"`
	Vehicle *fleet.Vehicle `json:"vehicle,omitempty"`
}

// Stats holds the per-status counts for a customer's dashboard. Buckets with
// no trips are zero, never omitted.
type Stats struct {
	TotalTrips int `json:"total_trips"`
	Pending    int `json:"pending_trips"`
	Confirmed  int `json:"confirmed_trips"`
	InProgress int `json:"active_trips"`
	Completed  int `json:"completed_trips"`
	Cancelled  int `json:"cancelled_trips"`
}
