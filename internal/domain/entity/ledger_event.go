package entity

import "time"

// Operaciones reportadas al sink de auditoría.
const (
	OperationStockUpdate    = "stock_update"
	OperationTransfer       = "transfer"
	OperationBulkUpdate     = "bulk_update"
	OperationPriceUpdate    = "price_update"
	OperationArticleCreated = "article_created"
)

// LedgerEvent es el evento de operación completada que se emite tras cada commit.
type LedgerEvent struct {
	Actor     string    `json:"actor"`
	Operation string    `json:"operation"`
	Affected  int       `json:"affected"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference,omitempty"`
	StoreID   string    `json:"store_id,omitempty"`
	ArticleID string    `json:"article_id,omitempty"`
	At        time.Time `json:"at"`
}
