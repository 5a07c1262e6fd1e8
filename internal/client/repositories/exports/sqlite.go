package exports

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"github.com/dmitrijs2005/cakeinvoice/internal/dbx"
	"github.com/google/uuid"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, rec models.ExportRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO exports (id, invoice_number, file_name, channel, tier, status, location, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.InvoiceNumber, rec.FileName, string(rec.Channel), rec.Tier,
		rec.Status, rec.Location, rec.Detail, rec.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert export %s: %w", rec.InvoiceNumber, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]models.ExportRecord, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, invoice_number, file_name, channel, tier, status, location, detail, created_at
		FROM exports
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	var out []models.ExportRecord
	for rows.Next() {
		var (
			rec     models.ExportRecord
			channel string
			created int64
		)
		if err := rows.Scan(&rec.ID, &rec.InvoiceNumber, &rec.FileName, &channel, &rec.Tier,
			&rec.Status, &rec.Location, &rec.Detail, &created); err != nil {
			return nil, fmt.Errorf("scan export row: %w", err)
		}
		rec.Channel = models.Channel(channel)
		rec.CreatedAt = time.UnixMilli(created)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate export rows: %w", err)
	}
	return out, nil
}
