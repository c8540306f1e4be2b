package dto

// ErrorResponse corpo de erro dos endpoints de CRUD.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
