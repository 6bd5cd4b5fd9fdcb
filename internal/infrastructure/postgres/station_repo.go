package postgres

import (
	"context"
	"fmt"

	"github.com/dissom/Train-Station-API-Service/internal/domain/station"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StationRepository struct {
	pool *pgxpool.Pool
}

func NewStationRepository(pool *pgxpool.Pool) *StationRepository {
	return &StationRepository{pool: pool}
}

func (r *StationRepository) Create(ctx context.Context, s *station.Station) error {
	const sql = `
		INSERT INTO stations (id, name, latitude, longitude)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, sql, s.ID, s.Name, s.Latitude, s.Longitude)
	if err != nil {
		return fmt.Errorf("insert station: %w", err)
	}

	return nil
}

func (r *StationRepository) GetByID(ctx context.Context, id string) (*station.Station, error) {
	const sql = `
		SELECT id, name, latitude, longitude
		FROM stations
		WHERE id = $1
	`

	var s station.Station
	err := r.pool.QueryRow(ctx, sql, id).Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get station by id: %w", err)
	}

	return &s, nil
}

func (r *StationRepository) List(ctx context.Context) ([]*station.Station, error) {
	const sql = `
		SELECT id, name, latitude, longitude
		FROM stations
		ORDER BY name ASC
	`

	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query stations: %w", err)
	}
	defer rows.Close()

	var stations []*station.Station
	for rows.Next() {
		s := &station.Station{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude); err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		stations = append(stations, s)
	}

	return stations, rows.Err()
}

func (r *StationRepository) Update(ctx context.Context, s *station.Station) error {
	const sql = `
		UPDATE stations
		SET name = $2, latitude = $3, longitude = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, sql, s.ID, s.Name, s.Latitude, s.Longitude)
	if err != nil {
		return fmt.Errorf("update station: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *StationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete station: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
