package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/retail-inventario/internal/application/dto"
	"github.com/jhoicas/retail-inventario/internal/application/inventory"
	"github.com/jhoicas/retail-inventario/internal/application/sku"
	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
	"github.com/jhoicas/retail-inventario/internal/domain/repository"
	"github.com/jhoicas/retail-inventario/pkg/logger"
)

// DefaultMaxClaimAttempts reintentos de reserva de SKU si no se configura otro valor.
const DefaultMaxClaimAttempts = 5

// ArticleUseCase alta y consulta de artículos. El SKU se asigna una sola vez al crear.
type ArticleUseCase struct {
	repo        repository.ArticleRepository
	generator   *sku.Generator
	events      inventory.EventSink
	log         *logger.Logger
	maxAttempts int
}

// NewArticleUseCase construye el caso de uso. maxAttempts <= 0 usa DefaultMaxClaimAttempts.
func NewArticleUseCase(
	repo repository.ArticleRepository,
	generator *sku.Generator,
	events inventory.EventSink,
	log *logger.Logger,
	maxAttempts int,
) *ArticleUseCase {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxClaimAttempts
	}
	return &ArticleUseCase{
		repo:        repo,
		generator:   generator,
		events:      events,
		log:         log,
		maxAttempts: maxAttempts,
	}
}

// GenerateSKU propone un SKU sin reservarlo.
func (uc *ArticleUseCase) GenerateSKU(ctx context.Context, in dto.GenerateSKURequest) (*dto.GenerateSKUResponse, error) {
	res, err := uc.generator.Generate(ctx, sku.Request{GenerateSKURequest: in})
	if err != nil {
		return nil, err
	}
	return &dto.GenerateSKUResponse{
		SKU:      res.SKU,
		FullName: res.FullName,
		IsUnique: res.IsUnique,
		Attempts: res.Attempts,
	}, nil
}

// Create genera el SKU y lo inserta. Si otro proceso ganó el mismo SKU entre
// el sondeo y el insert, reintenta con la semilla siguiente hasta maxAttempts.
func (uc *ArticleUseCase) Create(ctx context.Context, actorID string, in dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	req := sku.Request{GenerateSKURequest: in.GenerateSKURequest}
	var article *entity.Article
	insert := func(ctx context.Context, res *sku.Result) error {
		name := in.Name
		if name == "" {
			name = res.FullName
		}
		article = &entity.Article{
			ID:              uuid.New().String(),
			SKU:             res.SKU,
			ProductMasterID: in.ProductMasterID,
			ColorID:         in.ColorID,
			Name:            name,
			Active:          true,
			CreatedAt:       time.Now(),
		}
		return uc.repo.Create(ctx, article)
	}

	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		claim, _, err := uc.generator.Claim(ctx, req, insert)
		if err != nil {
			return nil, err
		}
		if claim.Committed {
			uc.log.Info().Str("articulo_id", article.ID).Str("sku", article.SKU).Int("intento", attempt).Msg("artículo creado")
			uc.publish(ctx, actorID, article)
			out := toArticleResponse(article)
			out.ClaimAttempts = attempt
			return out, nil
		}
		uc.log.Warn().Str("sku", claim.SKU).Int("intento", attempt).Msg("sku tomado por otra transacción, reintentando")
		req.Seed = claim.NextSeed
	}
	return nil, fmt.Errorf("%w: no se pudo reservar un SKU después de %d intentos", domain.ErrConflict, uc.maxAttempts)
}

// GetByID obtiene un artículo por ID.
func (uc *ArticleUseCase) GetByID(ctx context.Context, id string) (*dto.ArticleResponse, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, id)
	}
	return toArticleResponse(a), nil
}

func (uc *ArticleUseCase) publish(ctx context.Context, actorID string, a *entity.Article) {
	if uc.events == nil {
		return
	}
	err := uc.events.Publish(ctx, entity.LedgerEvent{
		Actor:     actorID,
		Operation: entity.OperationArticleCreated,
		Affected:  1,
		Reference: a.SKU,
		ArticleID: a.ID,
		At:        a.CreatedAt,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("sku", a.SKU).Msg("no se pudo publicar el alta de artículo")
	}
}

func toArticleResponse(a *entity.Article) *dto.ArticleResponse {
	return &dto.ArticleResponse{
		ID:              a.ID,
		SKU:             a.SKU,
		ProductMasterID: a.ProductMasterID,
		ColorID:         a.ColorID,
		Name:            a.Name,
		Active:          a.Active,
		CreatedAt:       a.CreatedAt,
	}
}
