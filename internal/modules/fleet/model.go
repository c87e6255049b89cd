// README: Read-only driver and vehicle projections owned by the fleet subsystem.
package fleet

import (
	"errors"

	"tripdesk/internal/types"
)

var ErrNotFound = errors.New("fleet record not found")

// Driver is the slice of the fleet subsystem's driver record that trip
// responses and assignment checks need.
type Driver struct {
	ID        types.ID `json:"driver_id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Mobile    string   `json:"mobile"`
}

// Vehicle is the projection used for response enrichment and assignment checks.
type Vehicle struct {
	ID              types.ID `json:"vehicle_id"`
	Model           string   `json:"model"`
	LicensePlate    string   `json:"license_plate"`
	SeatingCapacity int      `json:"seating_capacity"`
	Color           string   `json:"color"`
}
