package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DayOfWeek день недели 0-6 (воскресенье-суббота)
// Принимает при декодировании как число (1), так и строку ("1"):
// клиенты исторически присылают оба варианта
type DayOfWeek int

// UnmarshalJSON нормализует числовую и строковую формы на границе API
func (d *DayOfWeek) UnmarshalJSON(data []byte) error {
	token := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if token == "" || token == "null" {
		return fmt.Errorf("invalid day of week: %s", string(data))
	}

	value, err := strconv.Atoi(token)
	if err != nil {
		return fmt.Errorf("invalid day of week %s: %w", string(data), err)
	}
	if value < 0 || value > 6 {
		return fmt.Errorf("day of week out of range: %d", value)
	}

	*d = DayOfWeek(value)
	return nil
}

// MarshalJSON сериализует день недели как число
func (d DayOfWeek) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(d))
}

// DaysToInts конвертирует слайс DayOfWeek в []int
func DaysToInts(days []DayOfWeek) []int {
	if days == nil {
		return nil
	}
	result := make([]int, len(days))
	for i, d := range days {
		result[i] = int(d)
	}
	return result
}

// IntsToDays конвертирует []int в слайс DayOfWeek
func IntsToDays(days []int) []DayOfWeek {
	if days == nil {
		return nil
	}
	result := make([]DayOfWeek, len(days))
	for i, d := range days {
		result[i] = DayOfWeek(d)
	}
	return result
}
