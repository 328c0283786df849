package domain

// Product is immutable from the storefront's perspective; only the remote
// service mutates products. Prices are whole rupiah.
type Product struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Price     int64  `json:"price"`
	Stock     int    `json:"stock"`
	StockType string `json:"stockType,omitempty"`
	Available bool   `json:"available"`
	Image     string `json:"image,omitempty"`
}

type Category struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}
