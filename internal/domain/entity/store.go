package entity

import "time"

// Store representa una tienda donde se mantiene inventario.
type Store struct {
	ID        string
	Name      string
	Code      string
	Active    bool
	CreatedAt time.Time
}
