package recurrence

import (
	"time"

	"github.com/m04kA/SMC-BookingAgent/internal/domain"
)

// NextCandidateDates возвращает даты-кандидаты для следующей попытки бронирования,
// по возрастанию, в зависимости от частоты повторения:
//   - ALWAYS: ближайшие 7 дней
//   - DAILY: только завтра
//   - WEEKLY: все подходящие дни в ближайшие 4 недели — вызывающий может
//     перебрать несколько кандидатов за один проход, а не только ближайший
//   - MONTHLY: ровно одна дата через календарный месяц
//
// Все даты фильтруются по разрешенным дням недели.
// Лимиты самого аменити (per-day/per-week, disabled-даты) здесь сознательно
// не учитываются: их отсеивает живая проверка доступности.
func NextCandidateDates(job *domain.BookingJob, now time.Time) []time.Time {
	dates := make([]time.Time, 0)

	switch job.RecurrenceFrequency {
	case domain.FrequencyAlways:
		for i := 1; i <= domain.AlwaysHorizonDays; i++ {
			date := now.AddDate(0, 0, i)
			if IsDayAllowed(date, job.PreferredDaysOfWeek) {
				dates = append(dates, date)
			}
		}

	case domain.FrequencyDaily:
		tomorrow := now.AddDate(0, 0, 1)
		if IsDayAllowed(tomorrow, job.PreferredDaysOfWeek) {
			dates = append(dates, tomorrow)
		}

	case domain.FrequencyWeekly:
		for i := 1; i <= domain.WeeklyHorizonDays; i++ {
			date := now.AddDate(0, 0, i)
			if IsDayAllowed(date, job.PreferredDaysOfWeek) {
				dates = append(dates, date)
			}
		}

	case domain.FrequencyMonthly:
		nextMonth := now.AddDate(0, 1, 0)
		if IsDayAllowed(nextMonth, job.PreferredDaysOfWeek) {
			dates = append(dates, nextMonth)
		}
	}

	return dates
}

// IsDayAllowed проверяет, разрешен ли день недели даты
// Пустой список означает "разрешены все дни"
func IsDayAllowed(date time.Time, allowedDays []int) bool {
	if len(allowedDays) == 0 {
		return true
	}

	weekday := int(date.Weekday())
	for _, day := range allowedDays {
		if day == weekday {
			return true
		}
	}

	return false
}
