package catalog

import "errors"

// Ошибки "не найдено" раздельные по сущностям: оркестратор должен
// вернуть клиенту, какая именно ссылка не разрешилась.
var (
	ErrUserNotFound      = errors.New("catalog.repository: user not found")
	ErrVenueNotFound     = errors.New("catalog.repository: venue not found")
	ErrSpaceNotFound     = errors.New("catalog.repository: space not found")
	ErrStageNotFound     = errors.New("catalog.repository: stage not found")
	ErrDecorNotFound     = errors.New("catalog.repository: decor package not found")
	ErrMenuNotFound      = errors.New("catalog.repository: menu package not found")
	ErrFurnitureNotFound = errors.New("catalog.repository: furniture not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
