package response

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Resp is the envelope every endpoint speaks: {status, message, data?}.
// Login 响应例外，见 handler。
type Resp struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(message string, data interface{}) Resp {
	return Resp{Status: StatusSuccess, Message: message, Data: data}
}

func Fail(message string) Resp {
	return Resp{Status: StatusError, Message: message}
}
