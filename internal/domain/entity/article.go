package entity

import "time"

// Article representa un artículo vendible (variante producto + talla + color).
// El SKU se asigna una sola vez al crear el artículo y es único en todo el sistema.
type Article struct {
	ID              string
	SKU             string // único global (constraint en BD)
	ProductMasterID string // vacío si el SKU se generó con prefijos directos
	ColorID         string
	Name            string
	Active          bool
	CreatedAt       time.Time
}
