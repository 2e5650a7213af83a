package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
	"github.com/jhoicas/retail-inventario/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro append-only movimientos_stock (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento. El índice único parcial sobre
// (articulo_id, tienda_id, referencia_externa) rechaza reintentos duplicados.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimientos_stock (id, articulo_id, tienda_id, tipo_movimiento, cantidad, precio_unitario,
			stock_anterior, stock_nuevo, motivo, referencia_externa, usuario_id, fecha_movimiento)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ArticleID, m.StoreID, m.Type, m.Quantity, m.UnitPrice,
		m.PreviousStock, m.NewStock, m.Reason, nullable(m.ExternalRef), nullable(m.UserID), m.Date,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: referencia_externa %s ya registrada", domain.ErrConflict, m.ExternalRef)
		}
		return classify("create stock movement", err)
	}
	return nil
}

const selectMovement = `
	SELECT id, articulo_id, tienda_id, tipo_movimiento, cantidad, precio_unitario, stock_anterior, stock_nuevo,
		motivo, COALESCE(referencia_externa, ''), COALESCE(usuario_id, ''), fecha_movimiento
	FROM movimientos_stock
	WHERE articulo_id = $1 AND tienda_id = $2
	ORDER BY seq DESC`

// ListByArticleStore devuelve los movimientos más recientes primero.
func (r *StockMovementRepo) ListByArticleStore(ctx context.Context, articleID, storeID string, limit, offset int) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, selectMovement+" LIMIT $3 OFFSET $4", articleID, storeID, limit, offset)
	if err != nil {
		return nil, classify("list stock movements", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, classify("scan stock movement", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list stock movements", err)
	}
	return list, nil
}

// Last devuelve el último movimiento del par o nil, nil.
func (r *StockMovementRepo) Last(ctx context.Context, articleID, storeID string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, selectMovement+" LIMIT 1", articleID, storeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("last stock movement", err)
	}
	return m, nil
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(
		&m.ID, &m.ArticleID, &m.StoreID, &m.Type, &m.Quantity, &m.UnitPrice,
		&m.PreviousStock, &m.NewStock, &m.Reason, &m.ExternalRef, &m.UserID, &m.Date,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
