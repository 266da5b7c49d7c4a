package calculations

import (
	"errors"
	"fmt"
)

// ErrInvalidInput - общий признак ошибок входных данных
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError описывает некорректный параметр расчёта
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is позволяет проверять ошибку через errors.Is(err, ErrInvalidInput)
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field, format string, args ...interface{}) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
