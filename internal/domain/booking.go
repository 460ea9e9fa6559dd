package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCanceled  BookingStatus = "canceled"
)

// IsValid returns true for known statuses
func (s BookingStatus) IsValid() bool {
	return s == StatusConfirmed || s == StatusCanceled
}

// CanTransitionTo returns true if the lifecycle allows moving from s to next.
// The only transition is confirmed -> canceled; canceled is terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == StatusConfirmed && next == StatusCanceled
}

// Booking represents a car-wash slot reservation
type Booking struct {
	ID            int64
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	ServiceID     string
	StartTime     time.Time
	EndTime       time.Time // StartTime + длительность услуги
	Status        BookingStatus
	CancelToken   string // выдаётся один раз при создании, единственный способ самоотмены

	CanceledAt *time.Time
	CreatedAt  time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been canceled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCanceled
}

// CanBeCancelled returns true if the booking can still be canceled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCanceled)
}

// Interval returns the half-open slot [StartTime, EndTime)
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// CancellationOutcome результат отмены бронирования
type CancellationOutcome string

const (
	OutcomeCanceled        CancellationOutcome = "canceled"
	OutcomeAlreadyCanceled CancellationOutcome = "already_canceled"
	OutcomeNotFound        CancellationOutcome = "not_found"
)

// BookingDraft данные нового бронирования до сохранения (без ID)
type BookingDraft struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	ServiceID     string
	StartTime     time.Time
	EndTime       time.Time
	CancelToken   string
}
