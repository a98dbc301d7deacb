package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServiceOrder struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	WorkshopID uint `gorm:"index" json:"workshop_id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	Title       string `gorm:"size:120;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"size:20;default:'pending'" json:"status"`
	Priority    string `gorm:"size:10;default:'medium'" json:"priority"`
	VehicleInfo string `gorm:"size:255" json:"vehicle_info"`

	LaborCost decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"labor_cost"`
	PartsCost decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"parts_cost"`
	TotalCost decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"total_cost"`

	EstimatedCompletion *time.Time `json:"estimated_completion"`
	ActualCompletion    *time.Time `json:"actual_completion"`
	Notes               string     `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecalculateTotal mantém total = mão de obra + peças.
func (o *ServiceOrder) RecalculateTotal() {
	o.TotalCost = o.LaborCost.Add(o.PartsCost)
}
