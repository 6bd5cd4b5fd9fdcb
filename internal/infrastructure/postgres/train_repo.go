package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dissom/Train-Station-API-Service/internal/domain/train"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateName is returned when a train or train type name is already taken.
var ErrDuplicateName = errors.New("name already in use")

type TrainTypeRepository struct {
	pool *pgxpool.Pool
}

func NewTrainTypeRepository(pool *pgxpool.Pool) *TrainTypeRepository {
	return &TrainTypeRepository{pool: pool}
}

func (r *TrainTypeRepository) Create(ctx context.Context, tt *train.TrainType) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO train_types (id, name) VALUES ($1, $2)`, tt.ID, tt.Name)
	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrDuplicateName
		}
		return fmt.Errorf("insert train type: %w", err)
	}
	return nil
}

func (r *TrainTypeRepository) GetByID(ctx context.Context, id string) (*train.TrainType, error) {
	var tt train.TrainType
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM train_types WHERE id = $1`, id).
		Scan(&tt.ID, &tt.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get train type by id: %w", err)
	}
	return &tt, nil
}

func (r *TrainTypeRepository) List(ctx context.Context) ([]*train.TrainType, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM train_types ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query train types: %w", err)
	}
	defer rows.Close()

	var types []*train.TrainType
	for rows.Next() {
		tt := &train.TrainType{}
		if err := rows.Scan(&tt.ID, &tt.Name); err != nil {
			return nil, fmt.Errorf("scan train type: %w", err)
		}
		types = append(types, tt)
	}

	return types, rows.Err()
}

func (r *TrainTypeRepository) Update(ctx context.Context, tt *train.TrainType) error {
	tag, err := r.pool.Exec(ctx, `UPDATE train_types SET name = $2 WHERE id = $1`, tt.ID, tt.Name)
	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrDuplicateName
		}
		return fmt.Errorf("update train type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TrainTypeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM train_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete train type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type TrainRepository struct {
	pool *pgxpool.Pool
}

func NewTrainRepository(pool *pgxpool.Pool) *TrainRepository {
	return &TrainRepository{pool: pool}
}

func (r *TrainRepository) Create(ctx context.Context, t *train.Train) error {
	const sql = `
		INSERT INTO trains (id, name, cargo_num, places_in_cargo, train_type_id)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, sql, t.ID, t.Name, t.CargoNum, t.PlacesInCargo, t.TrainTypeID)
	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrDuplicateName
		}
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("insert train: %w", err)
	}

	return nil
}

func (r *TrainRepository) GetByID(ctx context.Context, id string) (*train.Train, error) {
	const sql = `
		SELECT t.id, t.name, t.cargo_num, t.places_in_cargo, t.train_type_id, tt.name
		FROM trains t
		JOIN train_types tt ON tt.id = t.train_type_id
		WHERE t.id = $1
	`

	var t train.Train
	err := r.pool.QueryRow(ctx, sql, id).Scan(
		&t.ID, &t.Name, &t.CargoNum, &t.PlacesInCargo, &t.TrainTypeID, &t.TrainTypeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get train by id: %w", err)
	}

	return &t, nil
}

// List returns trains, optionally filtered by a case-insensitive substring of
// the train type name.
func (r *TrainRepository) List(ctx context.Context, typeName string) ([]*train.Train, error) {
	const sql = `
		SELECT t.id, t.name, t.cargo_num, t.places_in_cargo, t.train_type_id, tt.name
		FROM trains t
		JOIN train_types tt ON tt.id = t.train_type_id
		WHERE $1 = '' OR tt.name ILIKE '%' || $1 || '%'
		ORDER BY t.name
	`

	rows, err := r.pool.Query(ctx, sql, typeName)
	if err != nil {
		return nil, fmt.Errorf("query trains: %w", err)
	}
	defer rows.Close()

	var trains []*train.Train
	for rows.Next() {
		t := &train.Train{}
		if err := rows.Scan(&t.ID, &t.Name, &t.CargoNum, &t.PlacesInCargo, &t.TrainTypeID, &t.TrainTypeName); err != nil {
			return nil, fmt.Errorf("scan train: %w", err)
		}
		trains = append(trains, t)
	}

	return trains, rows.Err()
}

func (r *TrainRepository) Update(ctx context.Context, t *train.Train) error {
	const sql = `
		UPDATE trains
		SET name = $2, cargo_num = $3, places_in_cargo = $4, train_type_id = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, sql, t.ID, t.Name, t.CargoNum, t.PlacesInCargo, t.TrainTypeID)
	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrDuplicateName
		}
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("update train: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *TrainRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM trains WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete train: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
