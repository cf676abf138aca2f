package response

// Response is the envelope every API endpoint answers with, except the
// backup downloads, which serve their payload bare so exported files
// re-import unchanged.
type Response struct {
	Status     string `json:"status"`      // "success" or "error"
	StatusCode int    `json:"status_code"` // HTTP status code
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Success wraps data in a success envelope.
func Success(statusCode int, data any) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error wraps a message in an error envelope. The message is what the
// panel surfaces to the operator, so service errors keep their dialog
// wording (confirmation warnings included).
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}
