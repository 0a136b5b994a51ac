package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
)

// ValueSignalRepository reads the externally maintained value_signals table.
type ValueSignalRepository struct {
	db *sql.DB
}

func NewValueSignalRepository(db *sql.DB) *ValueSignalRepository {
	return &ValueSignalRepository{db: db}
}

func (r *ValueSignalRepository) Series(ctx context.Context, from, to time.Time) ([]models.ValuePoint, error) {
	query := `SELECT day, value FROM value_signals WHERE day >= $1 AND day < $2 ORDER BY day`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var points []models.ValuePoint
	for rows.Next() {
		var p models.ValuePoint
		if err := rows.Scan(&p.Day, &p.Value); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
