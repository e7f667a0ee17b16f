package model

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultReorderLevel = 10

type Product struct {
	BaseModel
	Name         string          `gorm:"type:varchar(255);not null"`
	CategoryID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category     *Category       `gorm:"foreignKey:CategoryID"`
	SupplierID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Supplier     *Supplier       `gorm:"foreignKey:SupplierID"`
	Quantity     int             `gorm:"not null;default:0"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ReorderLevel int             `gorm:"not null"`
	Description  string          `gorm:"type:varchar(1000)"`
}

// LowStock is derived on read and never stored.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.ReorderLevel
}

// StockValue is unit price times quantity at 2-digit scale.
func (p *Product) StockValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity))).Round(2)
}

// ProductResponse projects a product with its category and supplier names.
type ProductResponse struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	CategoryID   uuid.UUID   `json:"category_id"`
	CategoryName string      `json:"category_name"`
	SupplierID   uuid.UUID   `json:"supplier_id"`
	SupplierName string      `json:"supplier_name"`
	Quantity     int         `json:"quantity"`
	UnitPrice    json.Number `json:"unit_price"`
	ReorderLevel int         `json:"reorder_level"`
	Description  string      `json:"description"`
	LowStock     bool        `json:"low_stock"`
}

func (p *Product) ToResponse() ProductResponse {
	res := ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		CategoryID:   p.CategoryID,
		SupplierID:   p.SupplierID,
		Quantity:     p.Quantity,
		UnitPrice:    json.Number(p.UnitPrice.StringFixed(2)),
		ReorderLevel: p.ReorderLevel,
		Description:  p.Description,
		LowStock:     p.LowStock(),
	}
	if p.Category != nil {
		res.CategoryName = p.Category.Name
	}
	if p.Supplier != nil {
		res.SupplierName = p.Supplier.Name
	}
	return res
}
