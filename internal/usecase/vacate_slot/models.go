package vacate_slot

// Request модель запроса на снятие клиента с места
type Request struct {
	CustomerID int64 // ID клиента
}

// Response модель ответа
type Response struct {
	CustomerID int64 // ID клиента

	// Vacated true, если назначение было удалено этим вызовом
	// false означает, что клиент уже не был размещен (идемпотентный no-op)
	Vacated bool

	// FreedLocationCode код освобожденного места, nil при no-op
	FreedLocationCode *string
}
