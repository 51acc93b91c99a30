package bookingjob

import "errors"

var (
	// ErrJobNotFound возвращается, когда задание не найдено
	ErrJobNotFound = errors.New("bookingjob.repository: job not found")

	// ErrSlotNotFound возвращается, когда забронированный слот не найден
	ErrSlotNotFound = errors.New("bookingjob.repository: booked slot not found")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("bookingjob.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("bookingjob.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("bookingjob.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("bookingjob.repository: failed to scan row")
)
