package objects

// Error is the wire shape of an API error.
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ErrorResponse wraps an Error for JSON responses.
type ErrorResponse struct {
	Error Error `json:"error"`
}
