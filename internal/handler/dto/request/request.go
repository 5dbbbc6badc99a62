package request

type SendRequest struct {
	Receiver string `json:"receiver" binding:"required,max=255"`
}

// UpdateRequestStatus carries the target status of an accept call.
// Enum membership is checked by the usecase so that every bad value maps to the same error kind.
type UpdateRequestStatus struct {
	Status string `json:"status" binding:"required"`
}
