package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes   = 30
	DefaultMaxConcurrent         = 1
	DefaultCancellationLeadHours = 24
)

// Business validation limits
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinConcurrent          = 1
	MaxConcurrent          = 100
	MinDayIndex            = 0 // Sunday, same as time.Sunday
	MaxDayIndex            = 6 // Saturday, same as time.Saturday
	MaxTemplateNameLength  = 255
	MinRepeatTimes         = 1
	MaxRepeatTimes         = 104 // two years of weekly repeats
	MinRepeatIntervalWeeks = 1
	MaxRepeatIntervalWeeks = 52
	MaxNotesLength         = 500
)

// Time formats
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses are the statuses that hold a spot in a slot
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}
