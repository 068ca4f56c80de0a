package models

import "time"

// Product represents a catalog product row.
type Product struct {
	ProductID     string    `gorm:"column:product_id;primaryKey" json:"product_id"`
	Name          string    `gorm:"column:name" json:"name"`
	Category      string    `gorm:"column:category" json:"category"`
	Subcategory   string    `gorm:"column:subcategory" json:"subcategory"`
	Price         float64   `gorm:"column:price" json:"price"`
	Cost          float64   `gorm:"column:cost" json:"cost"`
	StockQuantity int       `gorm:"column:stock_quantity" json:"stock_quantity"`
	Supplier      string    `gorm:"column:supplier" json:"supplier"`
	CreatedDate   time.Time `gorm:"column:created_date" json:"created_date"`
	IsActive      bool      `gorm:"column:is_active" json:"is_active"`
	WeightKG      float64   `gorm:"column:weight_kg" json:"weight_kg"`
	Dimensions    string    `gorm:"column:dimensions" json:"dimensions"`
}

// TableName overrides GORM's pluralization.
func (Product) TableName() string { return "products" }
