package response

import (
	"request-hub/internal/domain/request"
	"request-hub/internal/usecase/queries"
)

type RequestResponse struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

type RequestListResponse struct {
	Requests []*RequestResponse `json:"requests"`
}

func FromRequest(r *request.Request) *RequestResponse {
	return &RequestResponse{
		ID:        r.ID().String(),
		Sender:    r.Sender(),
		Receiver:  r.Receiver(),
		Status:    r.Status().String(),
		CreatedAt: r.CreatedAt().Unix(),
		UpdatedAt: r.UpdatedAt().Unix(),
	}
}

func FromRequestView(v *queries.RequestView) *RequestResponse {
	return &RequestResponse{
		ID:        v.ID.String(),
		Sender:    v.Sender,
		Receiver:  v.Receiver,
		Status:    v.Status,
		CreatedAt: v.CreatedAt.Unix(),
		UpdatedAt: v.UpdatedAt.Unix(),
	}
}

// FromRequestList always yields a non-nil slice so an empty inbox encodes as [].
func FromRequestList(items []*queries.RequestView) *RequestListResponse {
	res := make([]*RequestResponse, len(items))
	for i, it := range items {
		res[i] = FromRequestView(it)
	}
	return &RequestListResponse{Requests: res}
}
