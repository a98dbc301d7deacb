package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StockStatusOK  = "ok"
	StockStatusLow = "low"
	StockStatusOut = "out"
)

type InventoryItem struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	WorkshopID uint `gorm:"index" json:"workshop_id"`

	Name        string `gorm:"size:120;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Category    string `gorm:"size:50" json:"category"`
	Brand       string `gorm:"size:60" json:"brand"`
	PartNumber  string `gorm:"size:60" json:"part_number"`

	CurrentStock int             `gorm:"not null;default:0" json:"current_stock"`
	MinStock     int             `gorm:"not null;default:0" json:"min_stock"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"unit_price"`

	Supplier string `gorm:"size:120" json:"supplier"`
	Location string `gorm:"size:60" json:"location"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StockStatus classifica o nível de estoque do item.
func (i InventoryItem) StockStatus() string {
	switch {
	case i.CurrentStock <= 0:
		return StockStatusOut
	case i.CurrentStock <= i.MinStock:
		return StockStatusLow
	default:
		return StockStatusOK
	}
}
