package deposit

import "errors"

var (
	// ErrDepositNotFound возвращается, когда депозит не найден
	ErrDepositNotFound = errors.New("deposit.repository: deposit not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("deposit.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("deposit.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("deposit.repository: failed to scan row")
)
