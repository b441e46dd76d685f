package models

// CartItem : ligne de panier avec les champs d'affichage dénormalisés,
// capturés au moment de l'ajout (le prix n'est jamais re-résolu ensuite)
type CartItem struct {
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Image        string  `json:"image"`
	Color        string  `json:"color"`
	ColorName    string  `json:"colorName"`
	Size         string  `json:"size"`
	Quantity     int     `json:"quantity"`
	VariantID    string  `json:"variantId"`
	Category     string  `json:"category"`
	CategorySlug string  `json:"categorySlug"`
	CategoryName string  `json:"categoryName"`
}
