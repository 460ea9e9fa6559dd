package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
)

const maxBodyBytes = 1 << 20

var (
	ErrInvalidDateTime = errors.New("handlers: invalid local date-time")
	ErrInvalidDate     = errors.New("handlers: invalid date")
)

var validate = validator.New()

func init() {
	// В сообщениях об ошибках используем имена полей из JSON
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// DecodeJSON читает тело запроса (не более 1 MiB) в v
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// Validate проверяет структуру по тегам validate
func Validate(v interface{}) error {
	return validate.Struct(v)
}

// ValidationMessage формирует текст для клиента по ошибке Validate
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Ungültige Eingabe"
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return "Ungültige Eingabe: " + strings.Join(fields, ", ")
}

// ParseLocalDateTime разбирает "2006-01-02T15:04:05" или "2006-01-02T15:04" в часовом поясе loc
func ParseLocalDateTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{domain.LocalDateTimeFormat, domain.LocalDateTimeShort} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, value)
}

// ParseLocalDate разбирает "2006-01-02" как полночь в часовом поясе loc
func ParseLocalDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}
