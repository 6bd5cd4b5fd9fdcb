package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dissom/Train-Station-API-Service/internal/domain/journey"
	"github.com/dissom/Train-Station-API-Service/internal/domain/train"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type JourneyRepository struct {
	pool *pgxpool.Pool
}

func NewJourneyRepository(pool *pgxpool.Pool) *JourneyRepository {
	return &JourneyRepository{pool: pool}
}

// JourneyFilter narrows journey listings. Date filters match the calendar
// date of the timestamp.
type JourneyFilter struct {
	TrainName     string
	DepartureDate *time.Time
	ArrivalDate   *time.Time
}

func (r *JourneyRepository) Create(ctx context.Context, j *journey.Journey) error {
	const sql = `
		INSERT INTO journeys (id, route_id, train_id, departure_time, arrival_time)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, sql, j.ID, j.RouteID, j.TrainID, j.DepartureTime, j.ArrivalTime)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("insert journey: %w", err)
	}

	return nil
}

// GetWithTrain returns the journey with its train configuration embedded.
// The allocator uses this to validate seat bounds against the same stored
// configuration the availability query reads.
func (r *JourneyRepository) GetWithTrain(ctx context.Context, id string) (*journey.Journey, error) {
	const sql = `
		SELECT
			j.id, j.route_id, j.train_id, j.departure_time, j.arrival_time,
			t.id, t.name, t.cargo_num, t.places_in_cargo, t.train_type_id
		FROM journeys j
		JOIN trains t ON t.id = j.train_id
		WHERE j.id = $1
	`

	j := &journey.Journey{Train: &train.Train{}}
	err := r.pool.QueryRow(ctx, sql, id).Scan(
		&j.ID, &j.RouteID, &j.TrainID, &j.DepartureTime, &j.ArrivalTime,
		&j.Train.ID, &j.Train.Name, &j.Train.CargoNum, &j.Train.PlacesInCargo, &j.Train.TrainTypeID,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get journey by id: %w", err)
	}

	return j, nil
}

// Availability computes the remaining seats and free cargo slots for a
// journey from the live ticket set. Never cached: every call reflects the
// tickets committed at the time of the query.
func (r *JourneyRepository) Availability(ctx context.Context, journeyID string) (*journey.Availability, error) {
	const sql = `
		SELECT
			t.cargo_num * t.places_in_cargo - COUNT(tk.id),
			t.cargo_num - COUNT(DISTINCT tk.cargo)
		FROM journeys j
		JOIN trains t ON t.id = j.train_id
		LEFT JOIN tickets tk ON tk.journey_id = j.id
		WHERE j.id = $1
		GROUP BY t.cargo_num, t.places_in_cargo
	`

	var a journey.Availability
	err := r.pool.QueryRow(ctx, sql, journeyID).Scan(&a.TicketsAvailable, &a.CargoNumAvailable)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("journey availability: %w", err)
	}

	return &a, nil
}

// List returns journeys annotated with availability, applying the filter.
func (r *JourneyRepository) List(ctx context.Context, f JourneyFilter) ([]*journey.ListItem, error) {
	const sql = `
		SELECT
			j.id, j.route_id, j.train_id, j.departure_time, j.arrival_time,
			t.name, rt.distance,
			t.cargo_num * t.places_in_cargo - COUNT(tk.id),
			t.cargo_num - COUNT(DISTINCT tk.cargo)
		FROM journeys j
		JOIN trains t ON t.id = j.train_id
		JOIN routes rt ON rt.id = j.route_id
		LEFT JOIN tickets tk ON tk.journey_id = j.id
		WHERE ($1 = '' OR t.name ILIKE '%' || $1 || '%')
		  AND ($2::date IS NULL OR j.departure_time::date = $2::date)
		  AND ($3::date IS NULL OR j.arrival_time::date = $3::date)
		GROUP BY j.id, t.name, rt.distance, t.cargo_num, t.places_in_cargo
		ORDER BY j.id
	`

	rows, err := r.pool.Query(ctx, sql, f.TrainName, f.DepartureDate, f.ArrivalDate)
	if err != nil {
		return nil, fmt.Errorf("query journeys: %w", err)
	}
	defer rows.Close()

	var journeys []*journey.ListItem
	for rows.Next() {
		item := &journey.ListItem{}
		if err := rows.Scan(
			&item.ID, &item.RouteID, &item.TrainID, &item.DepartureTime, &item.ArrivalTime,
			&item.TrainName, &item.RouteDistance,
			&item.TicketsAvailable, &item.CargoNumAvailable,
		); err != nil {
			return nil, fmt.Errorf("scan journey: %w", err)
		}
		journeys = append(journeys, item)
	}

	return journeys, rows.Err()
}

func (r *JourneyRepository) Update(ctx context.Context, j *journey.Journey) error {
	const sql = `
		UPDATE journeys
		SET route_id = $2, train_id = $3, departure_time = $4, arrival_time = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, sql, j.ID, j.RouteID, j.TrainID, j.DepartureTime, j.ArrivalTime)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("update journey: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *JourneyRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM journeys WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete journey: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
