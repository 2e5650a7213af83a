// Package memory implementa los repositorios del motor de inventario en memoria.
// Se usa con STORE_DRIVER=memory y en las pruebas de los casos de uso.
package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/retail-inventario/internal/domain/entity"
)

type stockKey struct {
	ArticleID string
	StoreID   string
}

type refKey struct {
	stockKey
	Ref string
}

type catalogKey struct {
	ProductMasterID string
	ColorID         string
}

// Store guarda todo el estado. txMu serializa las unidades de trabajo
// (equivalente al bloqueo de fila de Postgres); mu protege los mapas.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	articles  map[string]entity.Article
	skus      map[string]string
	stores    map[string]entity.Store
	stocks    map[stockKey]entity.StoreStock
	movements map[stockKey][]entity.StockMovement
	refs      map[refKey]struct{}
	catalog   map[catalogKey]entity.SKUParts

	now func() time.Time
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		articles:  make(map[string]entity.Article),
		skus:      make(map[string]string),
		stores:    make(map[string]entity.Store),
		stocks:    make(map[stockKey]entity.StoreStock),
		movements: make(map[stockKey][]entity.StockMovement),
		refs:      make(map[refKey]struct{}),
		catalog:   make(map[catalogKey]entity.SKUParts),
		now:       time.Now,
	}
}

// AddStore registra una tienda.
func (s *Store) AddStore(st entity.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores[st.ID] = st
}

// PutStock fija un saldo sin pasar por el libro. Solo para carga inicial.
func (s *Store) PutStock(st entity.StoreStock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = s.now()
	}
	s.stocks[stockKey{st.ArticleID, st.StoreID}] = st
}

// AddCatalogEntry registra los prefijos de un producto master + color.
func (s *Store) AddCatalogEntry(productMasterID, colorID string, parts entity.SKUParts) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog[catalogKey{productMasterID, colorID}] = parts
}

// Articles devuelve el repositorio de artículos.
func (s *Store) Articles() *ArticleRepo { return &ArticleRepo{s: s} }

// Stores devuelve el repositorio de tiendas.
func (s *Store) Stores() *StoreRepo { return &StoreRepo{s: s} }

// Catalog devuelve el resolvedor de prefijos.
func (s *Store) Catalog() *CatalogRepo { return &CatalogRepo{s: s} }

// Stocks devuelve el repositorio de saldos fuera de transacción (lecturas).
func (s *Store) Stocks() *StockRepo { return &StockRepo{s: s} }

// Movements devuelve el libro de movimientos fuera de transacción (lecturas).
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// Replenishment devuelve la consulta de saldos bajo mínimo.
func (s *Store) Replenishment() *ReplenishmentRepo { return &ReplenishmentRepo{s: s} }

// TxRunner devuelve el ejecutor de unidades de trabajo.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }
