package bookingjob

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingAgent/internal/domain"
	"github.com/m04kA/SMC-BookingAgent/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingAgent/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BookingAgent/pkg/types"
)

// jobColumns колонки таблицы booking_jobs в порядке сканирования
var jobColumns = []string{
	"id",
	"user_email",
	"user_last_name",
	"user_unit_number",
	"amenity_id",
	"amenity_name",
	"booking_type",
	"status",
	"target_date",
	"target_time",
	"recurrence_frequency",
	"preferred_time",
	"preferred_days_of_week",
	"end_date",
	"party_size",
	"successful_bookings",
	"failed_attempts",
	"last_attempt",
	"last_successful_booking",
	"error_message",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий заданий на бронирование и их слотов
type Repository struct {
	db DB
}

// NewRepository создает новый экземпляр репозитория заданий
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// Create создает новое задание
func (r *Repository) Create(ctx context.Context, job *domain.BookingJob) (*domain.BookingJob, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("booking_jobs").
		Columns(
			"id",
			"user_email",
			"user_last_name",
			"user_unit_number",
			"amenity_id",
			"amenity_name",
			"booking_type",
			"status",
			"target_date",
			"target_time",
			"recurrence_frequency",
			"preferred_time",
			"preferred_days_of_week",
			"end_date",
			"party_size",
			"is_active",
		).
		Values(
			job.ID,
			job.UserEmail,
			job.UserLastName,
			job.UserUnitNumber,
			job.AmenityID,
			job.AmenityName,
			job.BookingType,
			job.Status,
			job.TargetDate,
			nullTimeString(job.TargetTime),
			nullString(string(job.RecurrenceFrequency)),
			nullTimeString(job.PreferredTime),
			nullString(joinDaysOfWeek(job.PreferredDaysOfWeek)),
			job.EndDate,
			job.PartySize,
			job.IsActive,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	job.CreatedAt = createdAt.Time
	job.UpdatedAt = updatedAt.Time
	job.BookedSlots = make([]domain.BookedSlot, 0)

	return job, nil
}

// GetByID получает задание по ID вместе с его слотами
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.BookingJob, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(jobColumns...).
		From("booking_jobs").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	jobs, err := r.scanJobs(rows)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, ErrJobNotFound
	}

	if err := r.attachSlots(ctx, executor, jobs); err != nil {
		return nil, err
	}

	return jobs[0], nil
}

// GetByUserEmail получает задания пользователя (новые первыми) вместе со слотами
func (r *Repository) GetByUserEmail(ctx context.Context, email string) ([]*domain.BookingJob, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(jobColumns...).
		From("booking_jobs").
		Where(squirrel.Eq{"user_email": email}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserEmail - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserEmail - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	jobs, err := r.scanJobs(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachSlots(ctx, executor, jobs); err != nil {
		return nil, err
	}

	return jobs, nil
}

// ListActiveEligible получает все задания, подлежащие обработке планировщиком
// (status = active И is_active), вместе со слотами
func (r *Repository) ListActiveEligible(ctx context.Context) ([]*domain.BookingJob, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(jobColumns...).
		From("booking_jobs").
		Where(squirrel.Eq{
			"status":    domain.StatusActive,
			"is_active": true,
		}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveEligible - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveEligible - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	jobs, err := r.scanJobs(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachSlots(ctx, executor, jobs); err != nil {
		return nil, err
	}

	return jobs, nil
}

// Save сохраняет полное состояние задания после обработки
// Обновляет изменяемые поля и вставляет новые слоты (с пустым ID) в одной транзакции
func (r *Repository) Save(ctx context.Context, job *domain.BookingJob) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: Save - begin tx: %v", ErrTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck

	query, args, err := psqlbuilder.Update("booking_jobs").
		Set("status", job.Status).
		Set("successful_bookings", job.SuccessfulBookings).
		Set("failed_attempts", job.FailedAttempts).
		Set("last_attempt", job.LastAttempt).
		Set("last_successful_booking", job.LastSuccessfulBooking).
		Set("error_message", job.ErrorMessage).
		Set("is_active", job.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": job.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Save - build update query: %v", ErrBuildQuery, err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Save - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Save - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrJobNotFound
	}

	// Вставляем только новые слоты: у уже сохраненных ID заполнен
	for i := range job.BookedSlots {
		slot := &job.BookedSlots[i]
		if slot.ID != "" {
			continue
		}

		slot.ID = uuid.NewString()
		slot.JobID = job.ID

		insertQuery, insertArgs, err := psqlbuilder.Insert("booked_slots").
			Columns("id", "job_id", "reservation_id", "access_code", "booked_date", "booked_time").
			Values(slot.ID, slot.JobID, slot.ReservationID, slot.AccessCode, slot.BookedDate, slot.BookedTime).
			Suffix("RETURNING created_at").
			ToSql()

		if err != nil {
			return fmt.Errorf("%w: Save - build slot insert: %v", ErrBuildQuery, err)
		}

		var createdAt sql.NullTime
		if err := tx.QueryRowContext(ctx, insertQuery, insertArgs...).Scan(&createdAt); err != nil {
			return fmt.Errorf("%w: Save - insert slot: %v", ErrExecQuery, err)
		}
		slot.CreatedAt = createdAt.Time
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: Save - commit: %v", ErrTransaction, err)
	}

	return nil
}

// UpdateFields частичное обновление задания (CRUD операции внешнего API)
type UpdateFields struct {
	Status              *domain.JobStatus
	TargetDate          *time.Time
	TargetTime          *types.TimeString
	RecurrenceFrequency *domain.RecurrenceFrequency
	PreferredTime       *types.TimeString
	PreferredDaysOfWeek *[]int
	EndDate             *time.Time
	PartySize           *int
	IsActive            *bool
}

// Update применяет частичное обновление и возвращает обновленное задание
func (r *Repository) Update(ctx context.Context, id string, fields UpdateFields) (*domain.BookingJob, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("booking_jobs").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if fields.Status != nil {
		updateBuilder = updateBuilder.Set("status", *fields.Status)
	}
	if fields.TargetDate != nil {
		updateBuilder = updateBuilder.Set("target_date", *fields.TargetDate)
	}
	if fields.TargetTime != nil {
		updateBuilder = updateBuilder.Set("target_time", fields.TargetTime.String())
	}
	if fields.RecurrenceFrequency != nil {
		updateBuilder = updateBuilder.Set("recurrence_frequency", *fields.RecurrenceFrequency)
	}
	if fields.PreferredTime != nil {
		updateBuilder = updateBuilder.Set("preferred_time", fields.PreferredTime.String())
	}
	if fields.PreferredDaysOfWeek != nil {
		updateBuilder = updateBuilder.Set("preferred_days_of_week", joinDaysOfWeek(*fields.PreferredDaysOfWeek))
	}
	if fields.EndDate != nil {
		updateBuilder = updateBuilder.Set("end_date", *fields.EndDate)
	}
	if fields.PartySize != nil {
		updateBuilder = updateBuilder.Set("party_size", *fields.PartySize)
	}
	if fields.IsActive != nil {
		updateBuilder = updateBuilder.Set("is_active", *fields.IsActive)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return nil, ErrJobNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete удаляет задание; слоты удаляются каскадно (FK ON DELETE CASCADE)
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_jobs").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrJobNotFound
	}

	return nil
}

// DeleteSlot удаляет отдельный забронированный слот
func (r *Repository) DeleteSlot(ctx context.Context, slotID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booked_slots").
		Where(squirrel.Eq{"id": slotID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// scanJobs сканирует результаты запроса в слайс заданий (без слотов)
func (r *Repository) scanJobs(rows *sql.Rows) ([]*domain.BookingJob, error) {
	jobs := make([]*domain.BookingJob, 0)

	for rows.Next() {
		var job domain.BookingJob
		var (
			targetDate          sql.NullTime
			targetTime          sql.NullString
			recurrenceFrequency sql.NullString
			preferredTime       sql.NullString
			preferredDays       sql.NullString
			endDate             sql.NullTime
			lastAttempt         sql.NullTime
			lastSuccessful      sql.NullTime
			errorMessage        sql.NullString
			createdAt           sql.NullTime
			updatedAt           sql.NullTime
		)

		err := rows.Scan(
			&job.ID,
			&job.UserEmail,
			&job.UserLastName,
			&job.UserUnitNumber,
			&job.AmenityID,
			&job.AmenityName,
			&job.BookingType,
			&job.Status,
			&targetDate,
			&targetTime,
			&recurrenceFrequency,
			&preferredTime,
			&preferredDays,
			&endDate,
			&job.PartySize,
			&job.SuccessfulBookings,
			&job.FailedAttempts,
			&lastAttempt,
			&lastSuccessful,
			&errorMessage,
			&job.IsActive,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanJobs - scan row: %v", ErrScanRow, err)
		}

		if targetDate.Valid {
			job.TargetDate = &targetDate.Time
		}
		if targetTime.Valid {
			job.TargetTime = types.TimeString(targetTime.String)
		}
		if recurrenceFrequency.Valid {
			job.RecurrenceFrequency = domain.RecurrenceFrequency(recurrenceFrequency.String)
		}
		if preferredTime.Valid {
			job.PreferredTime = types.TimeString(preferredTime.String)
		}
		if preferredDays.Valid {
			job.PreferredDaysOfWeek = parseDaysOfWeek(preferredDays.String)
		}
		if endDate.Valid {
			job.EndDate = &endDate.Time
		}
		if lastAttempt.Valid {
			job.LastAttempt = &lastAttempt.Time
		}
		if lastSuccessful.Valid {
			job.LastSuccessfulBooking = &lastSuccessful.Time
		}
		if errorMessage.Valid {
			job.ErrorMessage = &errorMessage.String
		}

		job.CreatedAt = createdAt.Time
		job.UpdatedAt = updatedAt.Time
		job.BookedSlots = make([]domain.BookedSlot, 0)

		jobs = append(jobs, &job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanJobs - rows error: %v", ErrScanRow, err)
	}

	return jobs, nil
}

// attachSlots подгружает слоты для набора заданий одним запросом
func (r *Repository) attachSlots(ctx context.Context, executor DBExecutor, jobs []*domain.BookingJob) error {
	if len(jobs) == 0 {
		return nil
	}

	ids := make([]string, len(jobs))
	byID := make(map[string]*domain.BookingJob, len(jobs))
	for i, job := range jobs {
		ids[i] = job.ID
		byID[job.ID] = job
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"job_id",
		"reservation_id",
		"access_code",
		"booked_date",
		"booked_time",
		"created_at",
	).
		From("booked_slots").
		Where(squirrel.Eq{"job_id": ids}).
		OrderBy("booked_date ASC, booked_time ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var slot domain.BookedSlot
		var createdAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.JobID,
			&slot.ReservationID,
			&slot.AccessCode,
			&slot.BookedDate,
			&slot.BookedTime,
			&createdAt,
		)
		if err != nil {
			return fmt.Errorf("%w: attachSlots - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time

		if job, ok := byID[slot.JobID]; ok {
			job.BookedSlots = append(job.BookedSlots, slot)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachSlots - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// joinDaysOfWeek сериализует дни недели в строку "1,4"
func joinDaysOfWeek(days []int) string {
	if len(days) == 0 {
		return ""
	}

	parts := make([]string, len(days))
	for i, day := range days {
		parts[i] = strconv.Itoa(day)
	}
	return strings.Join(parts, ",")
}

// parseDaysOfWeek нормализует дни недели на границе хранилища
// Исторические записи могли сохранить дни как строки ("1","4") или с пробелами;
// парсим один раз здесь, чтобы остальной код работал только с числами
func parseDaysOfWeek(raw string) []int {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	days := make([]int, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(strings.Trim(strings.TrimSpace(part), `"'`))
		if token == "" {
			continue
		}
		if day, err := strconv.Atoi(token); err == nil {
			days = append(days, day)
		}
	}

	return days
}

// nullString возвращает NULL для пустой строки
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullTimeString возвращает NULL для незаданного времени
func nullTimeString(t types.TimeString) sql.NullString {
	return sql.NullString{String: t.String(), Valid: !t.IsZero()}
}
