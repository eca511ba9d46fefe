package response

// SuccessResponse представляет успешный ответ API
type SuccessResponse struct {
	Message string `json:"message" example:"Операция успешно выполнена"`
}

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: VALIDATION_ERROR
	Code string `json:"code"`

	// Человекочитаемое сообщение об ошибке
	// example: Ошибка валидации данных
	Message string `json:"message"`

	// Дополнительные детали об ошибке (опционально)
	// example: поле start_time должно быть в формате RFC3339
	Details string `json:"details,omitempty"`
}

// TruncationInfo описывает урезание доклада под остаток секции.
// Возвращается вместе с requires_confirmation, чтобы клиент мог повторить
// назначение с подтверждённой длительностью.
type TruncationInfo struct {
	// Исходная длительность доклада в минутах
	// example: 40
	OriginalDuration int `json:"original_duration"`

	// Длительность, которая поместится в секцию
	// example: 30
	AvailableDuration int `json:"available_duration"`

	// Остаток свободного времени секции в минутах
	// example: 30
	AvailableMinutes int `json:"available_minutes"`
}

// ConfirmationRequiredResponse — ответ 409 при нехватке места под полную длительность
type ConfirmationRequiredResponse struct {
	RequiresConfirmation bool           `json:"requires_confirmation" example:"true"`
	TruncationInfo       TruncationInfo `json:"truncation_info"`
}
