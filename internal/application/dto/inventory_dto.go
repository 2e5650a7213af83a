package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyMovementRequest entrada de una actualización de stock (POST /inventario/movimientos).
// Cantidad > 0 es ENTRADA, < 0 es SALIDA.
type ApplyMovementRequest struct {
	ArticleID   string           `json:"articulo_id"`
	StoreID     string           `json:"tienda_id"`
	Quantity    int64            `json:"cantidad"`
	Price       *decimal.Decimal `json:"precio,omitempty"`
	Reason      string           `json:"motivo,omitempty"`
	ExternalRef string           `json:"referencia_externa,omitempty"`
}

// ApplyMovementResponse saldo antes y después del movimiento.
type ApplyMovementResponse struct {
	PreviousStock int64  `json:"stock_anterior"`
	NewStock      int64  `json:"stock_nuevo"`
	NeedsRestock  bool   `json:"requiere_restock"`
	ExternalRef   string `json:"referencia_externa"`
}

// TransferRequest traspaso entre tiendas (POST /inventario/traspasos).
type TransferRequest struct {
	ArticleID     string `json:"articulo_id"`
	SourceStoreID string `json:"tienda_origen_id"`
	DestStoreID   string `json:"tienda_destino_id"`
	Quantity      int64  `json:"cantidad"`
	Reason        string `json:"motivo,omitempty"`
}

// StoreQuantity saldo resultante en una tienda.
type StoreQuantity struct {
	StoreID  string `json:"tienda_id"`
	Quantity int64  `json:"stock_actual"`
}

// TransferResponse resultado del traspaso: origen primero, destino después.
type TransferResponse struct {
	Completed   bool            `json:"traspaso_completado"`
	ExternalRef string          `json:"referencia_externa"`
	Stocks      []StoreQuantity `json:"stocks_actualizados"`
}

// BulkItem un artículo dentro de una actualización masiva.
type BulkItem struct {
	ArticleID string           `json:"articulo_id"`
	Quantity  int64            `json:"cantidad"`
	Price     *decimal.Decimal `json:"precio,omitempty"`
}

// BulkRequest actualización masiva para una tienda (POST /inventario/masivo).
type BulkRequest struct {
	StoreID string     `json:"tienda_id"`
	Items   []BulkItem `json:"articulos"`
	Reason  string     `json:"motivo,omitempty"`
}

// BulkItemError error aislado de un ítem.
type BulkItemError struct {
	ArticleID string `json:"articulo_id"`
	Code      string `json:"code"`
	Message   string `json:"error"`
}

// BulkResponse resultado por ítem, en el orden de la solicitud.
type BulkResponse struct {
	Success bool            `json:"success"`
	Updated int             `json:"actualizados"`
	Failed  int             `json:"errores"`
	Results []string        `json:"resultados"`
	Errors  []BulkItemError `json:"detalles_errores"`
}

// PriceUpdateRequest cambio de precio de venta (PUT /inventario/precios).
type PriceUpdateRequest struct {
	ArticleID string           `json:"articulo_id"`
	StoreID   string           `json:"tienda_id"`
	NewPrice  *decimal.Decimal `json:"nuevo_precio"`
	Reason    string           `json:"motivo,omitempty"`
}

// PriceUpdateResponse cambio_porcentual es null cuando el precio anterior era 0.
type PriceUpdateResponse struct {
	PreviousPrice decimal.Decimal  `json:"precio_anterior"`
	NewPrice      decimal.Decimal  `json:"precio_nuevo"`
	PercentChange *decimal.Decimal `json:"cambio_porcentual"`
}

// BalanceResponse saldo de un artículo en una tienda.
type BalanceResponse struct {
	ArticleID    string          `json:"articulo_id"`
	StoreID      string          `json:"tienda_id"`
	Quantity     int64           `json:"stock_actual"`
	MinStock     int64           `json:"stock_minimo"`
	SalePrice    decimal.Decimal `json:"precio_venta"`
	CostPrice    decimal.Decimal `json:"precio_costo"`
	NeedsRestock bool            `json:"requiere_restock"`
	Active       bool            `json:"activo"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// MovementResponse registro del libro de movimientos.
type MovementResponse struct {
	ID            string          `json:"id"`
	ArticleID     string          `json:"articulo_id"`
	StoreID       string          `json:"tienda_id"`
	Type          string          `json:"tipo_movimiento"`
	Quantity      int64           `json:"cantidad"`
	UnitPrice     decimal.Decimal `json:"precio_unitario"`
	PreviousStock int64           `json:"stock_anterior"`
	NewStock      int64           `json:"stock_nuevo"`
	Reason        string          `json:"motivo"`
	ExternalRef   string          `json:"referencia_externa,omitempty"`
	UserID        string          `json:"usuario_id,omitempty"`
	Date          time.Time       `json:"fecha_movimiento"`
}

// MovementListResponse página de movimientos, más recientes primero.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// VerifyBalanceResponse compara el saldo con el último registro del libro.
type VerifyBalanceResponse struct {
	ArticleID    string `json:"articulo_id"`
	StoreID      string `json:"tienda_id"`
	Quantity     int64  `json:"stock_actual"`
	LastNewStock *int64 `json:"ultimo_stock_nuevo"`
	Consistent   bool   `json:"consistente"`
}

// ReplenishmentSuggestion artículo a reponer en una tienda. prioridad 1 = más urgente.
type ReplenishmentSuggestion struct {
	ArticleID     string          `json:"articulo_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"nombre"`
	Quantity      int64           `json:"stock_actual"`
	MinStock      int64           `json:"stock_minimo"`
	IdealStock    int64           `json:"stock_ideal"`
	SuggestedQty  int64           `json:"cantidad_sugerida"`
	CostPrice     decimal.Decimal `json:"precio_costo"`
	EstimatedCost decimal.Decimal `json:"costo_estimado"`
	MarginPct     decimal.Decimal `json:"margen_pct"`
	Priority      int             `json:"prioridad"`
}
