package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateString возвращается при некорректном формате даты
var ErrInvalidDateString = errors.New("invalid date string format, expected YYYY-MM-DD")

// DateString календарная дата в формате "YYYY-MM-DD"
// Формат совпадает с тем, что отдает и принимает ResPage API
type DateString string

// NewDateString создает DateString из time.Time (отбрасывает время)
func NewDateString(t time.Time) DateString {
	return DateString(t.Format("2006-01-02"))
}

// NewDateStringFromString валидирует строку "YYYY-MM-DD" и создает DateString
func NewDateStringFromString(s string) (DateString, error) {
	ds := DateString(s)
	if err := ds.Validate(); err != nil {
		return "", err
	}
	return ds, nil
}

// String возвращает строковое представление "YYYY-MM-DD"
func (d DateString) String() string {
	return string(d)
}

// IsZero проверяет, что значение не задано
func (d DateString) IsZero() bool {
	return d == ""
}

// Validate проверяет формат "YYYY-MM-DD"
func (d DateString) Validate() error {
	if _, err := time.Parse("2006-01-02", string(d)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateString, string(d))
	}
	return nil
}

// Time парсит дату в time.Time (полночь UTC)
func (d DateString) Time() (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateString, string(d))
	}
	return parsed, nil
}
