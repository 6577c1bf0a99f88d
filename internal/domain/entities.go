package domain

import "time"

// Справочные сущности, на которые ссылается бронирование.
// Для этого сервиса они read-only: управляются внешними админ-флоу.

// User пользователь, оформляющий бронирование
type User struct {
	ID           int64
	Username     string
	Email        string
	Phone        string
	Avatar       *string
	MembershipID *int64
	Role         string
}

// Venue зал (площадка) проведения мероприятий
type Venue struct {
	ID     int64
	Name   string
	Slug   string
	Detail *VenueDetail
}

// VenueDetail дополнительная информация о зале
type VenueDetail struct {
	ID          int64
	VenueID     int64
	Address     string
	Description string
	MaxGuests   int
}

// Space пространство внутри зала
type Space struct {
	ID      int64
	VenueID int64
	Name    string
}

// Stage сцена; её вместимость ограничивает количество столов
type Stage struct {
	ID       int64
	VenueID  int64
	Name     string
	Capacity int
}

// DecorPackage пакет декора с фиксированной ценой
type DecorPackage struct {
	ID    int64
	Name  string
	Price float64
}

// MenuPackage пакет меню с фиксированной ценой
type MenuPackage struct {
	ID    int64
	Name  string
	Price float64
}

// Furniture позиция каталога мебели (стол или стул)
type Furniture struct {
	ID               int64
	Name             string
	Price            float64
	Description      string
	ShortDescription string
	Images           []string
	Type             FurnitureType
}

// Deposit депозит бронирования.
// Контактные данные плательщика копируются из пользователя на момент
// создания; депозит никогда не переиспользуется между бронированиями.
type Deposit struct {
	ID int64

	// TransactionID уникальная ссылка на транзакцию (верхний регистр, без дефисов)
	TransactionID string

	Name   string
	Phone  string
	Email  string
	Amount float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
