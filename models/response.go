package models

// Response is the envelope every facade endpoint replies with. Success is 1
// for successful lookups and 0 otherwise; ErrorCode is a stable machine
// readable identifier and ErrorDetails a human readable elaboration.
type Response struct {
	Success      int    `json:"success"`
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorDetails string `json:"error_details,omitempty"`
	Data         any    `json:"data,omitempty"`
}
