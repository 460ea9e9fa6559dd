package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
)

// generateTimeSlots строит сетку кандидатов на день: от открытия с шагом step,
// пока услуга длительностью duration успевает закончиться до закрытия
func generateTimeSlots(hours domain.BusinessHours, day time.Time, step, duration time.Duration) []domain.Interval {
	local := day.In(hours.Location)
	openAt := hours.Open.On(local)
	closeAt := hours.Close.On(local)

	slots := make([]domain.Interval, 0)
	for start := openAt; !start.Add(duration).After(closeAt); start = start.Add(step) {
		slots = append(slots, domain.Interval{Start: start, End: start.Add(duration)})
	}

	return slots
}

// markAvailability помечает свободные слоты. Слот занят, если он начинается раньше now
// или пересекается хотя бы с одним бронированием; граничащие интервалы не пересекаются:
// - слот 11:30-12:00, бронирование 11:00-11:30 → свободен
// - слот 11:30-12:00, бронирование 11:20-11:40 → занят
func markAvailability(candidates []domain.Interval, bookings []*domain.Booking, now time.Time) []Slot {
	result := make([]Slot, len(candidates))

	for i, candidate := range candidates {
		available := !candidate.Start.Before(now)
		for _, b := range bookings {
			if !available {
				break
			}
			if b.IsActive() && candidate.Overlaps(b.Interval()) {
				available = false
			}
		}

		result[i] = Slot{
			StartTime: candidate.Start,
			EndTime:   candidate.End,
			Available: available,
		}
	}

	return result
}
