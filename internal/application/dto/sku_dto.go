package dto

// GenerateSKURequest acepta prefijos directos o producto_master_id + color_id.
type GenerateSKURequest struct {
	CategoryPrefix  string `json:"categoria_prefijo,omitempty"`
	BrandPrefix     string `json:"marca_prefijo,omitempty"`
	SizeCode        string `json:"talla_codigo,omitempty"`
	ColorPrefix     string `json:"color_prefijo,omitempty"`
	ProductMasterID string `json:"producto_master_id,omitempty"`
	ColorID         string `json:"color_id,omitempty"`
	CustomSuffix    string `json:"custom_suffix,omitempty"`
}

// GenerateSKUResponse propuesta de SKU. is_unique refleja el último sondeo, no una reserva.
type GenerateSKUResponse struct {
	SKU      string `json:"sku"`
	FullName string `json:"nombre_completo,omitempty"`
	IsUnique bool   `json:"is_unique"`
	Attempts int    `json:"intentos"`
}
