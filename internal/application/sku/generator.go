// Package sku resuelve colisiones de SKU contra el catálogo de artículos.
//
// El sondeo es de solo lectura y no reserva nada: la restricción UNIQUE de
// articulos.sku es el árbitro final. Claim modela ese contrato en dos fases
// (el generador propone, el almacén decide) y devuelve una señal de reintento
// con la semilla siguiente en vez de un error.
package sku

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/retail-inventario/internal/application/dto"
	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/repository"
	domainsku "github.com/jhoicas/retail-inventario/internal/domain/sku"
)

// Request entrada del generador. Seed es la cantidad de candidatos iniciales a saltar.
type Request struct {
	dto.GenerateSKURequest
	Seed int
}

// Result propuesta de SKU. IsUnique refleja el último sondeo.
type Result struct {
	SKU      string
	FullName string
	IsUnique bool
	Attempts int
	// NextSeed es la semilla que salta el candidato devuelto.
	NextSeed int
}

// ClaimResult resultado de la segunda fase: o quedó confirmado o hay que reintentar.
type ClaimResult struct {
	SKU       string
	Committed bool
	Retry     bool
	NextSeed  int
}

// Generator compone y sondea SKUs. No escribe en el catálogo.
type Generator struct {
	articles repository.ArticleRepository
	catalog  repository.CatalogRepository
	now      func() time.Time
}

// NewGenerator construye el generador. catalog puede ser nil si solo se usan prefijos directos.
func NewGenerator(articles repository.ArticleRepository, catalog repository.CatalogRepository) *Generator {
	return &Generator{articles: articles, catalog: catalog, now: time.Now}
}

// WithClock reemplaza el reloj del fallback por tiempo.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate devuelve el primer candidato libre a partir de req.Seed. Después del
// contador 99 usa los últimos 4 dígitos del reloj y deja de sondear.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	parts, fullName, err := g.resolve(ctx, req.GenerateSKURequest)
	if err != nil {
		return nil, err
	}
	seq, err := domainsku.Compose(parts)
	if err != nil {
		return nil, err
	}
	seed := req.Seed
	if seed < 0 {
		seed = 0
	}

	attempts := 0
	for i := seed; i < seq.Len(); i++ {
		candidate, _ := seq.At(i)
		attempts++
		taken, err := g.articles.ExistsBySKU(ctx, candidate)
		if err != nil {
			return nil, fmt.Errorf("probe sku: %w", err)
		}
		if !taken {
			return &Result{SKU: candidate, FullName: fullName, IsUnique: true, Attempts: attempts, NextSeed: i + 1}, nil
		}
	}

	candidate := seq.Fallback(g.now())
	attempts++
	taken, err := g.articles.ExistsBySKU(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("probe sku: %w", err)
	}
	next := seed + attempts
	if next < seq.Len() {
		next = seq.Len()
	}
	return &Result{SKU: candidate, FullName: fullName, IsUnique: !taken, Attempts: attempts, NextSeed: next}, nil
}

// Claim genera un SKU e intenta persistirlo con insert. Un ErrDuplicate del
// almacén no es un error: devuelve Retry con la semilla siguiente.
func (g *Generator) Claim(ctx context.Context, req Request, insert func(ctx context.Context, res *Result) error) (ClaimResult, *Result, error) {
	res, err := g.Generate(ctx, req)
	if err != nil {
		return ClaimResult{}, nil, err
	}
	if err := insert(ctx, res); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return ClaimResult{SKU: res.SKU, Retry: true, NextSeed: res.NextSeed}, res, nil
		}
		return ClaimResult{}, res, err
	}
	return ClaimResult{SKU: res.SKU, Committed: true}, res, nil
}

// resolve devuelve los prefijos, desde la solicitud o desde el catálogo.
func (g *Generator) resolve(ctx context.Context, in dto.GenerateSKURequest) (domainsku.Parts, string, error) {
	if in.ProductMasterID == "" && in.ColorID == "" {
		return domainsku.Parts{
			Category: in.CategoryPrefix,
			Brand:    in.BrandPrefix,
			Size:     in.SizeCode,
			Color:    in.ColorPrefix,
			Suffix:   in.CustomSuffix,
		}, "", nil
	}
	if in.ProductMasterID == "" || in.ColorID == "" {
		return domainsku.Parts{}, "", fmt.Errorf("%w: producto_master_id y color_id van juntos", domain.ErrInvalidInput)
	}
	if g.catalog == nil {
		return domainsku.Parts{}, "", fmt.Errorf("%w: catálogo no disponible", domain.ErrStoreUnavailable)
	}
	p, err := g.catalog.GetSKUParts(ctx, in.ProductMasterID, in.ColorID)
	if err != nil {
		return domainsku.Parts{}, "", err
	}
	if p == nil {
		return domainsku.Parts{}, "", fmt.Errorf("%w: producto %s / color %s", domain.ErrNotFound, in.ProductMasterID, in.ColorID)
	}
	return domainsku.Parts{
		Category: p.CategoryPrefix,
		Brand:    p.BrandPrefix,
		Size:     p.SizeCode,
		Color:    p.ColorPrefix,
		Suffix:   in.CustomSuffix,
	}, domainsku.FullName(p.ProductName, p.ColorName), nil
}
