package models

// APIResponse is the error envelope returned by the catalog API and the
// service-token middleware. Successful calls return the resource itself.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ErrorResponse 에러 응답 생성. A nil err leaves Error empty.
func ErrorResponse(message string, err error) APIResponse {
	resp := APIResponse{Status: "error", Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}
