package models

// CreateRequest данные нового бронирования. Слот уже проверен вызывающим кодом.
type CreateRequest struct {
	SlotID    int64
	FirstName string
	LastName  string
	Phone     string
	Quantity  int
	Comment   *string
}

// ListSummary список бронирований с суммарным количеством
type ListSummary struct {
	TotalQuantity int
	Count         int
}
