package common

// SuccessResponse is the envelope every data-carrying endpoint returns.
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

func NewSuccessResponse(data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Data: data,
	}
}
