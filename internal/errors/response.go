package errors

// Body is the JSON envelope every response uses, success or failure.
// On success error_code and error_message are null; on failure data is null.
type Body struct {
	Message      string  `json:"message"`
	Data         any     `json:"data"`
	ErrorCode    *string `json:"error_code"`
	ErrorMessage *string `json:"error_message"`
}

// SuccessBody builds the envelope for a successful response.
func SuccessBody(message string, data any) Body {
	return Body{Message: message, Data: data}
}

// ToBody converts an AppError to the response envelope.
func (e *AppError) ToBody() Body {
	code := string(e.Code)
	msg := e.Message
	return Body{
		Message:      e.Message,
		ErrorCode:    &code,
		ErrorMessage: &msg,
	}
}
