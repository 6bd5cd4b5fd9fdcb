package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dissom/Train-Station-API-Service/internal/domain/crew"
	"github.com/dissom/Train-Station-API-Service/internal/domain/journey"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CrewRepository struct {
	pool *pgxpool.Pool
}

func NewCrewRepository(pool *pgxpool.Pool) *CrewRepository {
	return &CrewRepository{pool: pool}
}

// CrewFilter narrows crew listings by the journeys the member is assigned to.
type CrewFilter struct {
	TrainName     string
	JourneyIDs    []string
	DepartureDate *time.Time
	ArrivalDate   *time.Time
}

// Create inserts the member and its journey assignments in one transaction.
func (r *CrewRepository) Create(ctx context.Context, m *crew.Member) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const sql = `INSERT INTO crews (id, first_name, last_name) VALUES ($1, $2, $3)`
	if _, err := tx.Exec(ctx, sql, m.ID, m.FirstName, m.LastName); err != nil {
		return fmt.Errorf("insert crew member: %w", err)
	}

	if err := replaceAssignments(ctx, tx, m.ID, m.JourneyIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *CrewRepository) Update(ctx context.Context, m *crew.Member) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const sql = `UPDATE crews SET first_name = $2, last_name = $3 WHERE id = $1`
	tag, err := tx.Exec(ctx, sql, m.ID, m.FirstName, m.LastName)
	if err != nil {
		return fmt.Errorf("update crew member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM crew_journeys WHERE crew_id = $1`, m.ID); err != nil {
		return fmt.Errorf("clear crew journeys: %w", err)
	}
	if err := replaceAssignments(ctx, tx, m.ID, m.JourneyIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func replaceAssignments(ctx context.Context, tx pgx.Tx, crewID string, journeyIDs []string) error {
	for _, jid := range journeyIDs {
		const sql = `INSERT INTO crew_journeys (crew_id, journey_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
		if _, err := tx.Exec(ctx, sql, crewID, jid); err != nil {
			if isForeignKeyViolation(err) {
				return ErrNotFound
			}
			return fmt.Errorf("assign journey %s: %w", jid, err)
		}
	}
	return nil
}

func (r *CrewRepository) GetByID(ctx context.Context, id string) (*crew.Member, error) {
	const sql = `
		SELECT c.id, c.first_name, c.last_name, COALESCE(array_agg(cj.journey_id) FILTER (WHERE cj.journey_id IS NOT NULL), '{}')
		FROM crews c
		LEFT JOIN crew_journeys cj ON cj.crew_id = c.id
		WHERE c.id = $1
		GROUP BY c.id
	`

	m := &crew.Member{}
	err := r.pool.QueryRow(ctx, sql, id).Scan(&m.ID, &m.FirstName, &m.LastName, &m.JourneyIDs)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get crew member by id: %w", err)
	}

	return m, nil
}

// List returns crew members matching the filter, with their assigned journey
// summaries embedded.
func (r *CrewRepository) List(ctx context.Context, f CrewFilter) ([]*crew.Member, error) {
	const sql = `
		SELECT DISTINCT c.id, c.first_name, c.last_name
		FROM crews c
		LEFT JOIN crew_journeys cj ON cj.crew_id = c.id
		LEFT JOIN journeys j ON j.id = cj.journey_id
		LEFT JOIN trains t ON t.id = j.train_id
		WHERE ($1 = '' OR t.name ILIKE '%' || $1 || '%')
		  AND (cardinality($2::uuid[]) = 0 OR cj.journey_id = ANY($2::uuid[]))
		  AND ($3::date IS NULL OR j.departure_time::date = $3::date)
		  AND ($4::date IS NULL OR j.arrival_time::date = $4::date)
		ORDER BY c.last_name, c.first_name
	`

	ids := f.JourneyIDs
	if ids == nil {
		ids = []string{}
	}

	rows, err := r.pool.Query(ctx, sql, f.TrainName, ids, f.DepartureDate, f.ArrivalDate)
	if err != nil {
		return nil, fmt.Errorf("query crews: %w", err)
	}
	defer rows.Close()

	var members []*crew.Member
	for rows.Next() {
		m := &crew.Member{}
		if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName); err != nil {
			return nil, fmt.Errorf("scan crew member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, m := range members {
		if err := r.loadJourneys(ctx, m); err != nil {
			return nil, err
		}
	}

	return members, nil
}

func (r *CrewRepository) loadJourneys(ctx context.Context, m *crew.Member) error {
	const sql = `
		SELECT j.id, j.route_id, j.train_id, j.departure_time, j.arrival_time, t.name, rt.distance
		FROM crew_journeys cj
		JOIN journeys j ON j.id = cj.journey_id
		JOIN trains t ON t.id = j.train_id
		JOIN routes rt ON rt.id = j.route_id
		WHERE cj.crew_id = $1
		ORDER BY j.departure_time
	`

	rows, err := r.pool.Query(ctx, sql, m.ID)
	if err != nil {
		return fmt.Errorf("query crew journeys: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		j := &journey.Journey{}
		if err := rows.Scan(&j.ID, &j.RouteID, &j.TrainID, &j.DepartureTime, &j.ArrivalTime, &j.TrainName, &j.RouteDistance); err != nil {
			return fmt.Errorf("scan crew journey: %w", err)
		}
		m.JourneyIDs = append(m.JourneyIDs, j.ID)
		m.Journeys = append(m.Journeys, j)
	}

	return rows.Err()
}

func (r *CrewRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM crews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete crew member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
