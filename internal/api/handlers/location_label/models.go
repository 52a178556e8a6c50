package location_label

// LabelPayload содержимое QR-кода этикетки места хранения.
// Печатается на полке, при сканировании открывает карточку места.
type LabelPayload struct {
	Hotel   int    `json:"hotel"`
	Section string `json:"section"`
	Shelf   int    `json:"shelf"`
}

// LabelResponse ответ в JSON-формате (format=json)
type LabelResponse struct {
	LocationCode string       `json:"locationCode"`
	Payload      LabelPayload `json:"payload"`
}
