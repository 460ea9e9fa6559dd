package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
)

var validate = validator.New()

// normalizeRequest обрезает пробелы в текстовых полях
func normalizeRequest(req *Request) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	req.ServiceID = strings.TrimSpace(req.ServiceID)
}

// validateRequest валидирует данные клиента
func validateRequest(req *Request) error {
	if req.CustomerName == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	if req.CustomerPhone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if len(req.CustomerPhone) > domain.MaxCustomerPhoneLength {
		return fmt.Errorf("%w: phone is too long", ErrInvalidInput)
	}

	if err := validate.Var(req.CustomerEmail, fmt.Sprintf("required,email,max=%d", domain.MaxCustomerEmailLength)); err != nil {
		return fmt.Errorf("%w: invalid email: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateNotInPast проверяет, что слот начинается не раньше текущего момента
func validateNotInPast(start, now time.Time) error {
	if start.Before(now) {
		return ErrPastTime
	}
	return nil
}

// validateBusinessHours проверяет, что слот целиком помещается в рабочее время своего дня
func validateBusinessHours(hours domain.BusinessHours, start, end time.Time) error {
	if !hours.Contains(start, end) {
		return fmt.Errorf("%w: %s-%s, open %s-%s", ErrOutsideBusinessHours,
			start.In(hours.Location).Format(domain.TimeFormat), end.In(hours.Location).Format(domain.TimeFormat),
			hours.Open, hours.Close)
	}
	return nil
}
