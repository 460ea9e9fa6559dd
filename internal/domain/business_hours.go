package domain

import (
	"time"

	"github.com/m04kA/SMC-CarWashBooking/pkg/types"
)

// BusinessHours рабочие часы мойки (одинаковые для всех дней)
type BusinessHours struct {
	Open     types.TimeString
	Close    types.TimeString
	Location *time.Location
}

// Contains returns true if [start, end) fits between opening and closing
// on the calendar day of start. A slot that ends after closing (or on the
// next day) is rejected even if it starts within hours.
func (h BusinessHours) Contains(start, end time.Time) bool {
	local := start.In(h.Location)
	openAt := h.Open.On(local)
	closeAt := h.Close.On(local)

	return !start.Before(openAt) && !end.After(closeAt)
}
