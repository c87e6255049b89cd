// README: Trip service; the single authority for lifecycle transitions and assignment.
package trip

import (
	"context"
	"fmt"
	"time"

	"tripdesk/internal/modules/fleet"
	"tripdesk/internal/types"
)

const clockLayout = "15:04"

type Service struct {
	store *Store
	fleet *fleet.Store
	cache *StatsCache
}

func NewService(store *Store, fleetStore *fleet.Store, cache *StatsCache) *Service {
	return &Service{store: store, fleet: fleetStore, cache: cache}
}

type CreateCommand struct {
	CustomerID          types.ID
	Title               string
	Category            string
	Origin              string
	Destination         string
	Stops               []string
	PreferredDate       time.Time
	PreferredTime       string
	ReturnDate          *time.Time
	ReturnTime          *string
	PassengerCount      int
	PassengerNames      []string
	ContactName         string
	ContactPhone        string
	ContactEmail        string
	VehicleType         *string
	SpecialRequirements *string
	BudgetCents         *int64
	Notes               *string
}

type UpdateCommand struct {
	TripID     types.ID
	CustomerID types.ID
	Patch      Patch
}

type CancelCommand struct {
	TripID types.ID
	// CustomerID scopes the cancel to the owning customer. Nil for
	// operator-initiated cancels through the status endpoint.
	CustomerID *types.ID
}

type AssignCommand struct {
	TripID             types.ID
	DriverID           types.ID
	VehicleID          types.ID
	EstimatedCostCents *int64
}

type UpdateStatusCommand struct {
	TripID types.ID
	Status string
}

// Create validates the request and persists a new pending trip. The customer
// reference is fixed here and never changes afterwards.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (types.ID, error) {
	if cmd.CustomerID == "" {
		return "", fmt.Errorf("%w: customer", ErrValidation)
	}
	for field, v := range map[string]string{
		"title":         cmd.Title,
		"category":      cmd.Category,
		"origin":        cmd.Origin,
		"destination":   cmd.Destination,
		"contact_name":  cmd.ContactName,
		"contact_phone": cmd.ContactPhone,
		"contact_email": cmd.ContactEmail,
	} {
		if v == "" {
			return "", fmt.Errorf("%w: %s", ErrValidation, field)
		}
	}
	category, ok := ParseCategory(cmd.Category)
	if !ok {
		return "", fmt.Errorf("%w: category %q", ErrValidation, cmd.Category)
	}
	if cmd.PreferredDate.IsZero() {
		return "", fmt.Errorf("%w: preferred_date", ErrValidation)
	}
	if _, err := time.Parse(clockLayout, cmd.PreferredTime); err != nil {
		return "", fmt.Errorf("%w: preferred_time", ErrValidation)
	}
	if cmd.ReturnTime != nil {
		if _, err := time.Parse(clockLayout, *cmd.ReturnTime); err != nil {
			return "", fmt.Errorf("%w: return_time", ErrValidation)
		}
	}
	passengerCount := cmd.PassengerCount
	if passengerCount == 0 {
		passengerCount = 1
	}
	if passengerCount < 1 {
		return "", fmt.Errorf("%w: passenger_count", ErrValidation)
	}

	now := time.Now()
	t := &Trip{
		ID:                  types.NewID(),
		CustomerID:          cmd.CustomerID,
		Title:               cmd.Title,
		Category:            category,
		Origin:              cmd.Origin,
		Destination:         cmd.Destination,
		Stops:               cmd.Stops,
		PreferredDate:       cmd.PreferredDate,
		PreferredTime:       cmd.PreferredTime,
		ReturnDate:          cmd.ReturnDate,
		ReturnTime:          cmd.ReturnTime,
		PassengerCount:      passengerCount,
		PassengerNames:      cmd.PassengerNames,
		ContactName:         cmd.ContactName,
		ContactPhone:        cmd.ContactPhone,
		ContactEmail:        cmd.ContactEmail,
		VehicleType:         cmd.VehicleType,
		SpecialRequirements: cmd.SpecialRequirements,
		Budget:              moneyPtr(cmd.BudgetCents),
		Notes:               cmd.Notes,
		Status:              StatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.store.Create(ctx, t); err != nil {
		return "", err
	}
	s.invalidateStats(ctx, cmd.CustomerID)
	return t.ID, nil
}

// Get returns a trip with its driver/vehicle projections. A non-nil
// scopeCustomer folds ownership into the lookup: foreign trips are not found.
func (s *Service) Get(ctx context.Context, id types.ID, scopeCustomer *types.ID) (*Trip, error) {
	return s.store.GetByID(ctx, id, scopeCustomer)
}

// Update edits trip fields; only legal while the trip is still pending.
func (s *Service) Update(ctx context.Context, cmd UpdateCommand) error {
	if cmd.Patch.IsEmpty() {
		return ErrEmptyPatch
	}
	if cmd.Patch.Category != nil {
		if _, ok := ParseCategory(string(*cmd.Patch.Category)); !ok {
			return fmt.Errorf("%w: category %q", ErrValidation, *cmd.Patch.Category)
		}
	}
	if cmd.Patch.PassengerCount != nil && *cmd.Patch.PassengerCount < 1 {
		return fmt.Errorf("%w: passenger_count", ErrValidation)
	}
	if cmd.Patch.PreferredTime != nil {
		if _, err := time.Parse(clockLayout, *cmd.Patch.PreferredTime); err != nil {
			return fmt.Errorf("%w: preferred_time", ErrValidation)
		}
	}
	if cmd.Patch.ReturnTime != nil {
		if _, err := time.Parse(clockLayout, *cmd.Patch.ReturnTime); err != nil {
			return fmt.Errorf("%w: return_time", ErrValidation)
		}
	}

	ok, err := s.store.UpdateFields(ctx, cmd.TripID, cmd.CustomerID, cmd.Patch)
	if err != nil {
		return err
	}
	if !ok {
		return s.classifyFieldEdit(ctx, cmd.TripID, cmd.CustomerID)
	}
	return nil
}

// classifyFieldEdit explains a zero-row guarded update: the trip is missing,
// outside the caller's scope, or no longer pending.
func (s *Service) classifyFieldEdit(ctx context.Context, id, customerID types.ID) error {
	status, err := s.store.GetStatus(ctx, id, &customerID)
	if err != nil {
		return err
	}
	if status != StatusPending {
		return fmt.Errorf("%w: trip is %s", ErrInvalidState, status)
	}
	// The trip was pending on re-read, so the guard lost a race.
	return ErrConflict
}

// Cancel moves a trip to cancelled. Repeating it fails: an already terminal
// trip reports ErrTerminalState rather than succeeding silently.
func (s *Service) Cancel(ctx context.Context, cmd CancelCommand) error {
	customerID, ok, err := s.store.Cancel(ctx, cmd.TripID, cmd.CustomerID)
	if err != nil {
		return err
	}
	if !ok {
		status, err := s.store.GetStatus(ctx, cmd.TripID, cmd.CustomerID)
		if err != nil {
			return err
		}
		if status.IsTerminal() {
			return fmt.Errorf("%w: trip is %s", ErrTerminalState, status)
		}
		return ErrConflict
	}
	s.invalidateStats(ctx, customerID)
	return nil
}

// Assign binds a driver and vehicle to a pending trip and confirms it.
// Hardened preconditions: both resources must exist and the trip must still
// be pending; the binding itself is one atomic update.
func (s *Service) Assign(ctx context.Context, cmd AssignCommand) error {
	if cmd.DriverID == "" || cmd.VehicleID == "" {
		return fmt.Errorf("%w: driver_id and vehicle_id", ErrValidation)
	}
	if _, err := s.fleet.GetDriver(ctx, cmd.DriverID); err != nil {
		if err == fleet.ErrNotFound {
			return fmt.Errorf("%w: driver %s", ErrResourceUnavailable, cmd.DriverID)
		}
		return err
	}
	if _, err := s.fleet.GetVehicle(ctx, cmd.VehicleID); err != nil {
		if err == fleet.ErrNotFound {
			return fmt.Errorf("%w: vehicle %s", ErrResourceUnavailable, cmd.VehicleID)
		}
		return err
	}

	customerID, ok, err := s.store.Assign(ctx, cmd.TripID, cmd.DriverID, cmd.VehicleID, cmd.EstimatedCostCents)
	if err != nil {
		return err
	}
	if !ok {
		status, err := s.store.GetStatus(ctx, cmd.TripID, nil)
		if err != nil {
			return err
		}
		if status != StatusPending {
			return fmt.Errorf("%w: trip is %s", ErrInvalidState, status)
		}
		return ErrConflict
	}
	s.invalidateStats(ctx, customerID)
	return nil
}

// UpdateStatus advances a trip along the state machine at an operator's
// request. The guard re-checks the expected current status at write time.
func (s *Service) UpdateStatus(ctx context.Context, cmd UpdateStatusCommand) error {
	target, ok := ParseStatus(cmd.Status)
	if !ok {
		return fmt.Errorf("%w: status %q", ErrValidation, cmd.Status)
	}

	current, err := s.store.GetStatus(ctx, cmd.TripID, nil)
	if err != nil {
		return err
	}
	if !CanTransition(current, target) {
		return fmt.Errorf("%w: trip is %s", ErrInvalidState, current)
	}

	customerID, ok, err := s.store.UpdateStatus(ctx, cmd.TripID, current, target)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	s.invalidateStats(ctx, customerID)
	return nil
}

// List returns one page of trips plus pagination metadata. Out-of-range pages
// yield an empty page with consistent metadata, not an error.
func (s *Service) List(ctx context.Context, f Filter, p PageParams) ([]*Trip, Pagination, error) {
	trips, err := s.store.List(ctx, f, p)
	if err != nil {
		return nil, Pagination{}, err
	}
	total, err := s.store.Count(ctx, f)
	if err != nil {
		return nil, Pagination{}, err
	}
	return trips, NewPagination(p, total), nil
}

// Stats serves the dashboard counts, read through the cache when available.
func (s *Service) Stats(ctx context.Context, customerID types.ID) (*Stats, error) {
	if s.cache != nil {
		if st, ok := s.cache.Get(ctx, customerID); ok {
			return st, nil
		}
	}
	st, err := s.store.Stats(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, customerID, st)
	}
	return st, nil
}

func (s *Service) invalidateStats(ctx context.Context, customerID types.ID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, customerID)
	}
}
