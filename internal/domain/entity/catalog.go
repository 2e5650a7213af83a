package entity

// SKUParts agrupa los prefijos de catálogo con los que se compone un SKU,
// resueltos desde productos_master (marca, categoría, talla) y colores.
type SKUParts struct {
	CategoryPrefix string
	BrandPrefix    string
	SizeCode       string
	ColorPrefix    string
	ProductName    string
	ColorName      string
}
