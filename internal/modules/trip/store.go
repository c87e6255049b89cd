// README: Trip store backed by PostgreSQL; owns SQL construction for the module.
package trip

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tripdesk/internal/modules/fleet"
	"tripdesk/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const tripColumns = `
	t.id, t.customer_id, t.title, t.category, t.origin, t.destination, t.stops,
	t.preferred_date, t.preferred_time, t.return_date, t.return_time,
	t.passenger_count, t.passenger_names,
	t.contact_name, t.contact_phone, t.contact_email,
	t.vehicle_type, t.special_requirements, t.budget_cents, t.notes,
	t.status, t.assigned_driver_id, t.assigned_vehicle_id,
	t.estimated_cost_cents, t.actual_cost_cents,
	t.created_at, t.updated_at,
	d.id, d.first_name, d.last_name, d.mobile,
	v.id, v.model, v.license_plate, v.seating_capacity, v.color`

const tripJoins = `
	FROM trips t
	LEFT JOIN drivers d ON t.assigned_driver_id = d.id
	LEFT JOIN vehicles v ON t.assigned_vehicle_id = v.id`

func (s *Store) Create(ctx context.Context, t *Trip) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO trips (
			id, customer_id, title, category, origin, destination, stops,
			preferred_date, preferred_time, return_date, return_time,
			passenger_count, passenger_names,
			contact_name, contact_phone, contact_email,
			vehicle_type, special_requirements, budget_cents, notes,
			status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, COALESCE($7, '{}'::TEXT[]),
			$8, $9, $10, $11,
			$12, COALESCE($13, '{}'::TEXT[]),
			$14, $15, $16,
			$17, $18, $19, $20,
			$21, $22, $23
		)`,
		string(t.ID),
		string(t.CustomerID),
		t.Title,
		string(t.Category),
		t.Origin,
		t.Destination,
		t.Stops,
		t.PreferredDate,
		t.PreferredTime,
		t.ReturnDate,
		t.ReturnTime,
		t.PassengerCount,
		t.PassengerNames,
		t.ContactName,
		t.ContactPhone,
		t.ContactEmail,
		t.VehicleType,
		t.SpecialRequirements,
		moneyCents(t.Budget),
		t.Notes,
		string(t.Status),
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

// GetByID returns the trip with its driver/vehicle projections. When
// scopeCustomer is set the ownership filter is part of the predicate, so a
// foreign trip reads as not found rather than leaking.
func (s *Store) GetByID(ctx context.Context, id types.ID, scopeCustomer *types.ID) (*Trip, error) {
	query := `SELECT` + tripColumns + tripJoins + `
	WHERE t.id = $1`
	args := []any{string(id)}
	if scopeCustomer != nil {
		query += ` AND t.customer_id = $2`
		args = append(args, string(*scopeCustomer))
	}

	t, err := scanTrip(s.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetStatus reads the current status, honoring an optional ownership scope.
// Used to classify zero-row conditional updates.
func (s *Store) GetStatus(ctx context.Context, id types.ID, scopeCustomer *types.ID) (Status, error) {
	query := `SELECT status FROM trips WHERE id = $1`
	args := []any{string(id)}
	if scopeCustomer != nil {
		query += ` AND customer_id = $2`
		args = append(args, string(*scopeCustomer))
	}

	var raw string
	err := s.db.QueryRow(ctx, query, args...).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return Status(raw), nil
}

// UpdateFields applies a partial update. The WHERE guard makes the edit
// conditional on ownership and pending status in a single statement, so there
// is no window between a status check and the write.
func (s *Store) UpdateFields(ctx context.Context, id, customerID types.ID, p Patch) (bool, error) {
	assigns := p.assignments()
	if len(assigns) == 0 {
		return false, ErrEmptyPatch
	}

	set := make([]string, 0, len(assigns)+1)
	args := make([]any, 0, len(assigns)+2)
	for i, a := range assigns {
		set = append(set, fmt.Sprintf("%s = $%d", a.column, i+1))
		args = append(args, a.value)
	}
	set = append(set, "updated_at = NOW()")
	args = append(args, string(id), string(customerID))

	query := fmt.Sprintf(
		"UPDATE trips SET %s WHERE id = $%d AND customer_id = $%d AND status = 'pending'",
		strings.Join(set, ", "), len(assigns)+1, len(assigns)+2,
	)
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Cancel moves a non-terminal trip to cancelled and reports the owning
// customer, so callers can invalidate dashboards.
func (s *Store) Cancel(ctx context.Context, id types.ID, scopeCustomer *types.ID) (types.ID, bool, error) {
	query := `
		UPDATE trips
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1
		  AND status NOT IN ('completed', 'cancelled')`
	args := []any{string(id)}
	if scopeCustomer != nil {
		query += ` AND customer_id = $2`
		args = append(args, string(*scopeCustomer))
	}
	query += ` RETURNING customer_id`

	var customerID string
	err := s.db.QueryRow(ctx, query, args...).Scan(&customerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return types.ID(customerID), true, nil
}

// Assign binds driver, vehicle, and estimated cost and confirms the trip in
// one atomic statement; no partial-assignment state is observable.
func (s *Store) Assign(ctx context.Context, id, driverID, vehicleID types.ID, estimatedCents *int64) (types.ID, bool, error) {
	var customerID string
	err := s.db.QueryRow(ctx, `
		UPDATE trips
		SET assigned_driver_id = $1,
		    assigned_vehicle_id = $2,
		    estimated_cost_cents = $3,
		    status = 'confirmed',
		    updated_at = NOW()
		WHERE id = $4 AND status = 'pending'
		RETURNING customer_id`,
		string(driverID),
		string(vehicleID),
		estimatedCents,
		string(id),
	).Scan(&customerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return types.ID(customerID), true, nil
}

// UpdateStatus advances a trip conditionally on its expected current status.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status) (types.ID, bool, error) {
	var customerID string
	err := s.db.QueryRow(ctx, `
		UPDATE trips
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING customer_id`,
		string(to),
		string(id),
		string(from),
	).Scan(&customerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return types.ID(customerID), true, nil
}

// List returns one page of trips matching the filter, most recent first. The
// trip id is a secondary sort key so equal timestamps order deterministically.
func (s *Store) List(ctx context.Context, f Filter, p PageParams) ([]*Trip, error) {
	where, args := buildFilter(f)
	query := `SELECT` + tripColumns + tripJoins + where +
		fmt.Sprintf(`
	ORDER BY t.created_at DESC, t.id DESC
	LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, p.Limit, p.Offset())

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []*Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// Count re-runs the filter predicate without pagination. Two round-trips per
// listing; isolated here so a windowed count can replace it without touching
// callers.
func (s *Store) Count(ctx context.Context, f Filter) (int, error) {
	where, args := buildFilter(f)
	var total int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM trips t`+where, args...).Scan(&total)
	return total, err
}

// Stats computes the per-status buckets in a single pass.
func (s *Store) Stats(ctx context.Context, customerID types.ID) (*Stats, error) {
	var st Stats
	err := s.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'confirmed'),
			COUNT(*) FILTER (WHERE status = 'in-progress'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'cancelled')
		FROM trips
		WHERE customer_id = $1`, string(customerID),
	).Scan(&st.TotalTrips, &st.Pending, &st.Confirmed, &st.InProgress, &st.Completed, &st.Cancelled)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// buildFilter grows the predicate incrementally from the optional filters.
func buildFilter(f Filter) (string, []any) {
	conds := []string{}
	args := []any{}
	add := func(expr string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}
	if f.CustomerID != nil {
		add("t.customer_id = $%d", string(*f.CustomerID))
	}
	if f.Status != nil {
		add("t.status = $%d", string(*f.Status))
	}
	if f.Category != nil {
		add("t.category = $%d", string(*f.Category))
	}
	if f.StartDate != nil {
		add("t.preferred_date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("t.preferred_date <= $%d", *f.EndDate)
	}
	if len(conds) == 0 {
		return "", args
	}
	return "\n\tWHERE " + strings.Join(conds, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps one joined row into a Trip, assembling the driver/vehicle
// projections when the joins matched.
func scanTrip(s scanner) (*Trip, error) {
	var (
		t                     Trip
		id, customerID        string
		category, status      string
		returnDate            *time.Time
		budgetCents           *int64
		driverID, vehicleID   *string
		estCents, actualCents *int64
		dID, dFirst, dLast    *string
		dMobile               *string
		vID, vModel, vPlate   *string
		vSeats                *int
		vColor                *string
	)

	err := s.Scan(
		&id, &customerID, &t.Title, &category, &t.Origin, &t.Destination, &t.Stops,
		&t.PreferredDate, &t.PreferredTime, &returnDate, &t.ReturnTime,
		&t.PassengerCount, &t.PassengerNames,
		&t.ContactName, &t.ContactPhone, &t.ContactEmail,
		&t.VehicleType, &t.SpecialRequirements, &budgetCents, &t.Notes,
		&status, &driverID, &vehicleID,
		&estCents, &actualCents,
		&t.CreatedAt, &t.UpdatedAt,
		&dID, &dFirst, &dLast, &dMobile,
		&vID, &vModel, &vPlate, &vSeats, &vColor,
	)
	if err != nil {
		return nil, err
	}

	t.ID = types.ID(id)
	t.CustomerID = types.ID(customerID)
	t.Category = Category(category)
	t.Status = Status(status)
	t.ReturnDate = returnDate
	t.Budget = moneyPtr(budgetCents)
	t.EstimatedCost = moneyPtr(estCents)
	t.ActualCost = moneyPtr(actualCents)
	if driverID != nil {
		v := types.ID(*driverID)
		t.AssignedDriverID = &v
	}
	if vehicleID != nil {
		v := types.ID(*vehicleID)
		t.AssignedVehicleID = &v
	}
	if dID != nil {
		t.Driver = &fleet.Driver{
			ID:        types.ID(*dID),
			FirstName: strOrEmpty(dFirst),
			LastName:  strOrEmpty(dLast),
			Mobile:    strOrEmpty(dMobile),
		}
	}
	if vID != nil {
		t.Vehicle = &fleet.Vehicle{
			ID:           types.ID(*vID),
			Model:        strOrEmpty(vModel),
			LicensePlate: strOrEmpty(vPlate),
			Color:        strOrEmpty(vColor),
		}
		if vSeats != nil {
			t.Vehicle.SeatingCapacity = *vSeats
		}
	}
	return &t, nil
}

func moneyPtr(cents *int64) *types.Money {
	if cents == nil {
		return nil
	}
	m := types.NewMoney(*cents)
	return &m
}

func moneyCents(m *types.Money) *int64 {
	if m == nil {
		return nil
	}
	n := m.Amount
	return &n
}

func strOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
