package dto

// ErrorEnvelope is the body written for every rejected request
type ErrorEnvelope struct {
	Success   bool   `json:"success"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// HealthResponse is returned by the health check endpoint
type HealthResponse struct {
	Status string `json:"status"`
}
