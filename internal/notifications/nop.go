package notifications

import "github.com/m04kA/SMC-CarWashBooking/internal/domain"

// Nop используется, когда уведомления выключены
type Nop struct{}

func (Nop) NotifyBookingCreated(*domain.Booking, domain.ServiceDefinition) {}

func (Nop) NotifyBookingCanceled(*domain.Booking, domain.ServiceDefinition, string) {}
