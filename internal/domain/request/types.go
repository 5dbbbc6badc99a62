package request

import "request-hub/internal/pkg/errs"

var (
	ErrInvalidStatus       = errs.Mark(errs.New("status must be one of pending, accepted, rejected"), errs.ErrInvalidArgument)
	ErrInvalidTargetStatus = errs.Mark(errs.New("status can only be set to accepted or rejected"), errs.ErrInvalidArgument)
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ParseTargetStatus parses a status a pending request may move to.
func ParseTargetStatus(s string) (Status, error) {
	status, err := ParseStatus(s)
	if err != nil {
		return "", err
	}
	if status == StatusPending {
		return "", ErrInvalidTargetStatus
	}
	return status, nil
}
