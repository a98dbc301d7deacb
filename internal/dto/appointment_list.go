package dto

import (
	domain "github.com/BruksfildServices01/office-master/internal/domain/appointment"
	"github.com/BruksfildServices01/office-master/internal/models"
)

type AppointmentListDTO struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
	Type            string `json:"type"`
	VehicleInfo     string `json:"vehicle_info"`
	ClientID        uint   `json:"client_id"`
	ClientName      string `json:"client_name"`
	ClientPhone     string `json:"client_phone"`
}

func NewAppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		item := AppointmentListDTO{
			ID:              ap.ID,
			Title:           ap.Title,
			Date:            ap.Date,
			Time:            ap.Time,
			DurationMinutes: ap.DurationMinutes,
			Status:          ap.Status,
			Type:            ap.Type,
			VehicleInfo:     ap.VehicleInfo,
			ClientID:        ap.ClientID,
			ClientName:      ap.Client.Name,
			ClientPhone:     ap.Client.Phone,
		}
		if iv, err := domain.NewInterval(ap.Time, ap.DurationMinutes); err == nil {
			item.EndTime = domain.FormatMinutes(iv.End)
		}
		out = append(out, item)
	}
	return out
}
