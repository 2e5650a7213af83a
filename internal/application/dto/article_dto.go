package dto

import "time"

// CreateArticleRequest alta de artículo con SKU asignado por el generador.
type CreateArticleRequest struct {
	GenerateSKURequest
	Name string `json:"nombre,omitempty"`
}

// ArticleResponse artículo persistido.
type ArticleResponse struct {
	ID              string    `json:"id"`
	SKU             string    `json:"sku"`
	ProductMasterID string    `json:"producto_master_id,omitempty"`
	ColorID         string    `json:"color_id,omitempty"`
	Name            string    `json:"nombre"`
	Active          bool      `json:"activo"`
	CreatedAt       time.Time `json:"created_at"`
	ClaimAttempts   int       `json:"intentos_reserva,omitempty"`
}
