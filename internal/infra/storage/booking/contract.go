package booking

import (
	"github.com/m04kA/VH-BookingService/pkg/dbmetrics"
)

// Переиспользуем интерфейс выполнения запросов из dbmetrics,
// репозиторию всё равно, идут запросы через *sql.DB, обёртку с метриками
// или активную транзакцию из контекста
type DBExecutor = dbmetrics.DBExecutor
