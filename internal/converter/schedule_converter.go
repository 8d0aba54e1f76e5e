package converter

import (
	"time"

	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/domain/entity"
)

// ScheduleToResponse converts a DoctorSchedule entity to ScheduleResponse DTO
func ScheduleToResponse(schedule *entity.DoctorSchedule) *dto.ScheduleResponse {
	if schedule == nil {
		return nil
	}

	response := &dto.ScheduleResponse{
		ID:                  schedule.ID,
		DoctorID:            schedule.DoctorID,
		Name:                schedule.Name,
		AppointmentDuration: schedule.AppointmentDuration,
		IsActive:            schedule.IsActive,
		WorkDays:            make([]dto.WorkDayResponse, len(schedule.WorkDays)),
		AuditInfo:           auditInfo(schedule.AuditFields),
	}

	for i, day := range schedule.WorkDays {
		ranges := make([]dto.TimeRangeResponse, len(day.TimeRanges))
		for j, tr := range day.TimeRanges {
			ranges[j] = dto.TimeRangeResponse{StartTime: tr.StartTime, EndTime: tr.EndTime}
		}
		response.WorkDays[i] = dto.WorkDayResponse{
			DayOfWeek:  day.DayOfWeek,
			DayName:    time.Weekday(day.DayOfWeek).String(),
			IsActive:   day.IsActive,
			TimeRanges: ranges,
		}
	}

	// Include doctor info if available
	if schedule.Doctor != nil {
		response.Doctor = DoctorToSummary(schedule.Doctor)
	}

	return response
}

// SchedulesToResponses converts a slice of DoctorSchedule entities to slice of ScheduleResponse DTOs
func SchedulesToResponses(schedules []entity.DoctorSchedule) []dto.ScheduleResponse {
	responses := make([]dto.ScheduleResponse, len(schedules))
	for i := range schedules {
		responses[i] = *ScheduleToResponse(&schedules[i])
	}
	return responses
}

// WorkDaysFromRequest converts requested work days to entities. A nil
// IsActive counts as active.
func WorkDaysFromRequest(days []dto.WorkDayRequest) []entity.DoctorWorkDay {
	workDays := make([]entity.DoctorWorkDay, len(days))
	for i, day := range days {
		ranges := make([]entity.DoctorTimeRange, len(day.TimeRanges))
		for j, tr := range day.TimeRanges {
			ranges[j] = entity.DoctorTimeRange{StartTime: tr.StartTime, EndTime: tr.EndTime}
		}
		workDays[i] = entity.DoctorWorkDay{
			DayOfWeek:  day.DayOfWeek,
			IsActive:   day.IsActive == nil || *day.IsActive,
			TimeRanges: ranges,
		}
	}
	return workDays
}
