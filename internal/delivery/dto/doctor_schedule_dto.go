package dto

import "clinic-admin/internal/domain/entity"

// Request DTOs

type TimeRangeRequest struct {
	StartTime string `json:"start_time" validate:"required,clock"` // Format: HH:MM
	EndTime   string `json:"end_time" validate:"required,clock"`   // Format: HH:MM
}

type WorkDayRequest struct {
	DayOfWeek  int                `json:"day_of_week" validate:"gte=0,lte=6"`
	IsActive   *bool              `json:"is_active"`
	TimeRanges []TimeRangeRequest `json:"time_ranges" validate:"dive"`
}

type CreateScheduleRequest struct {
	DoctorID            int              `json:"doctor_id" validate:"required,gt=0"`
	Name                string           `json:"name" validate:"omitempty,max=100"`
	AppointmentDuration int              `json:"appointment_duration" validate:"required,gte=5,lte=240"`
	IsActive            *bool            `json:"is_active"`
	WorkDays            []WorkDayRequest `json:"work_days" validate:"required,min=1,dive"`
}

type UpdateScheduleRequest struct {
	Name                *string           `json:"name" validate:"omitempty,max=100"`
	AppointmentDuration *int              `json:"appointment_duration" validate:"omitempty,gte=5,lte=240"`
	IsActive            *bool             `json:"is_active"`
	WorkDays            *[]WorkDayRequest `json:"work_days" validate:"omitempty,dive"`
}

// Response DTOs

type TimeRangeResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WorkDayResponse struct {
	DayOfWeek  int                 `json:"day_of_week"`
	DayName    string              `json:"day_name"`
	IsActive   bool                `json:"is_active"`
	TimeRanges []TimeRangeResponse `json:"time_ranges"`
}

type ScheduleResponse struct {
	ID                  int               `json:"id"`
	DoctorID            int               `json:"doctor_id"`
	Doctor              *DoctorSummary    `json:"doctor,omitempty"`
	Name                string            `json:"name,omitempty"`
	AppointmentDuration int               `json:"appointment_duration"`
	IsActive            bool              `json:"is_active"`
	WorkDays            []WorkDayResponse `json:"work_days"`
	AuditInfo
}

type SlotsResponse struct {
	DoctorID int               `json:"doctor_id"`
	From     string            `json:"from"`
	To       string            `json:"to"`
	Duration int               `json:"appointment_duration"`
	Days     []entity.DaySlots `json:"days"`
}
