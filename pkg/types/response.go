package types

// SuccessEnvelope is the JSON shape of every successful API response.
type SuccessEnvelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Success   bool     `json:"success"`
	Error     APIError `json:"error"`
	Timestamp string   `json:"timestamp"`
}
