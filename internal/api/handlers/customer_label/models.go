package customer_label

// LabelPayload содержимое QR-кода этикетки клиента.
// Кодируется в JSON и зашивается в QR-код, печатаемый на комплект шин.
type LabelPayload struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	LicensePlate   string  `json:"licensePlate"`
	SummerTireSize *string `json:"summerTireSize,omitempty"`
	WinterTireSize *string `json:"winterTireSize,omitempty"`
	LocationCode   *string `json:"locationCode,omitempty"`
}

// LabelResponse ответ в JSON-формате (format=json)
type LabelResponse struct {
	Payload LabelPayload `json:"payload"`
}
