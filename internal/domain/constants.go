package domain

// Default configuration values
const (
	DefaultOpenTime  = "07:30"
	DefaultCloseTime = "18:00"
	DefaultTimezone  = "Europe/Berlin"

	DefaultSlotStepMinutes = 30
)

// Business validation constants
const (
	MaxCustomerNameLength  = 200
	MaxCustomerPhoneLength = 50
	MaxCustomerEmailLength = 254
)

// Time format constants
const (
	TimeFormat          = "15:04"               // HH:MM
	DateFormat          = "2006-01-02"          // YYYY-MM-DD
	LocalDateTimeFormat = "2006-01-02T15:04:05" // ISO-8601 без часового пояса
	LocalDateTimeShort  = "2006-01-02T15:04"
	DisplayDateFormat   = "02.01.2006"
)
