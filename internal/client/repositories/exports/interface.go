// Package exports keeps the local history of where invoices were written:
// saved files, cloud uploads and ledger rows.
package exports

import (
	"context"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
)

type Repository interface {
	// Insert stores rec. An empty ID is replaced by a fresh UUID.
	Insert(ctx context.Context, rec models.ExportRecord) error
	// List returns at most limit records, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]models.ExportRecord, error)
}
