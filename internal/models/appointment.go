package models

import "time"

// Appointment guarda data e hora como texto civil (YYYY-MM-DD / HH:MM),
// sem fuso: comparações de agenda são feitas por data de calendário.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WorkshopID uint `gorm:"index:idx_appointments_owner_date" json:"workshop_id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	Title       string `gorm:"size:120;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	Date            string `gorm:"column:scheduled_date;size:10;not null;index:idx_appointments_owner_date" json:"date"`
	Time            string `gorm:"column:scheduled_time;size:5;not null" json:"time"`
	DurationMinutes int    `gorm:"not null;default:60" json:"duration_minutes"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`
	Type   string `gorm:"size:20;default:'other'" json:"type"`

	VehicleInfo  string `gorm:"size:255" json:"vehicle_info"`
	Notes        string `gorm:"type:text" json:"notes"`
	ReminderSent bool   `gorm:"default:false" json:"reminder_sent"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
