package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
	"github.com/jhoicas/retail-inventario/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo implementación del puerto ArticleRepository sobre PostgreSQL (usable con pool o tx).
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

// Create inserta el artículo; articulos.sku UNIQUE decide entre inserts concurrentes.
func (r *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	query := `
		INSERT INTO articulos (id, sku, producto_master_id, color_id, nombre, activo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.SKU, nullable(a.ProductMasterID), nullable(a.ColorID), a.Name, a.Active, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, a.SKU)
		}
		return classify("insert articulo", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	query := `
		SELECT id, sku, COALESCE(producto_master_id::text, ''), COALESCE(color_id::text, ''), nombre, activo, created_at
		FROM articulos WHERE id = $1`
	var a entity.Article
	err := r.q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.SKU, &a.ProductMasterID, &a.ColorID, &a.Name, &a.Active, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get articulo", err)
	}
	return &a, nil
}

// ExistsBySKU sondeo de solo lectura usado por el generador de SKU.
func (r *ArticleRepo) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM articulos WHERE sku = $1)`, sku).Scan(&exists)
	if err != nil {
		return false, classify("exists sku", err)
	}
	return exists, nil
}

// nullable convierte "" en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
