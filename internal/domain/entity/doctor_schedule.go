package entity

import "time"

// DoctorSchedule is a doctor's weekly working pattern. A doctor has at most
// one live, active schedule.
type DoctorSchedule struct {
	ID                  int    `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID            int    `gorm:"not null;index" json:"doctor_id"`
	Name                string `gorm:"type:varchar(100)" json:"name,omitempty"`
	AppointmentDuration int    `gorm:"not null" json:"appointment_duration"` // minutes
	IsActive            bool   `gorm:"not null;default:true" json:"is_active"`
	AuditFields

	// Relationships
	Doctor   *Doctor         `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	WorkDays []DoctorWorkDay `gorm:"foreignKey:ScheduleID" json:"work_days,omitempty"`
}

func (DoctorSchedule) TableName() string {
	return "doctor_schedules"
}

// SlotDuration returns the appointment length.
func (s *DoctorSchedule) SlotDuration() time.Duration {
	return time.Duration(s.AppointmentDuration) * time.Minute
}

// DoctorWorkDay is one weekday of a schedule. DayOfWeek follows time.Weekday.
type DoctorWorkDay struct {
	ID         int               `gorm:"primaryKey;autoIncrement" json:"id"`
	ScheduleID int               `gorm:"not null;index" json:"schedule_id"`
	DayOfWeek  int               `gorm:"not null" json:"day_of_week"`
	IsActive   bool              `gorm:"not null;default:true" json:"is_active"`
	TimeRanges []DoctorTimeRange `gorm:"foreignKey:WorkDayID" json:"time_ranges,omitempty"`
}

func (DoctorWorkDay) TableName() string {
	return "doctor_work_days"
}

// DoctorTimeRange is a working interval inside a work day, "HH:MM" local clock.
type DoctorTimeRange struct {
	ID        int    `gorm:"primaryKey;autoIncrement" json:"id"`
	WorkDayID int    `gorm:"not null;index" json:"work_day_id"`
	StartTime string `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string `gorm:"type:varchar(5);not null" json:"end_time"`
}

func (DoctorTimeRange) TableName() string {
	return "doctor_time_ranges"
}

// TimeSlot is one generated appointment slot.
type TimeSlot struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Booked bool      `json:"booked"`
	Past   bool      `json:"past"`
}

// DaySlots groups the slots of one calendar day.
type DaySlots struct {
	Date      string     `json:"date"`
	DayOfWeek int        `json:"day_of_week"`
	Slots     []TimeSlot `json:"slots"`
}
