package domain

// Конверт ошибки в HTTP-ответе; успешные ответы уходят как есть.
type APIError struct {
	Code int    `json:"code,omitempty"`
	Text string `json:"text,omitempty"`
}

type APIEnvelope struct {
	Error *APIError `json:"error,omitempty"`
}

func Fail(code int, text string) APIEnvelope {
	return APIEnvelope{Error: &APIError{Code: code, Text: text}}
}
