package bookingjob

import (
	"context"
	"database/sql"

	"github.com/m04kA/SMC-BookingAgent/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// DB интерфейс базы данных для репозитория
// Поддерживается *dbmetrics.DB (как с метриками, так и через WrapPlain)
type DB interface {
	DBExecutor
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
