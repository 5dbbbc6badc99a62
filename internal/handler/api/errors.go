package api

import (
	"log/slog"
	"net/http"

	"request-hub/internal/handler/httperr"
	"request-hub/internal/handler/middleware"
	"request-hub/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const (
	KindUnauthenticated         = middleware.KindUnauthenticated
	KindInvalidArgument         = "INVALID_ARGUMENT"
	KindDuplicatePendingRequest = "DUPLICATE_PENDING_REQUEST"
	KindRequestNotFound         = "REQUEST_NOT_FOUND"
	KindRequestAlreadyResolved  = "REQUEST_ALREADY_RESOLVED"
	KindInternal                = "INTERNAL"
)

type errorMapping struct {
	target error
	status int
	kind   string
	msg    string
}

var errorMappings = []errorMapping{
	{errs.ErrUnauthenticated, http.StatusUnauthorized, KindUnauthenticated, "Invalid or expired token"},
	{errs.ErrInvalidArgument, http.StatusBadRequest, KindInvalidArgument, "Invalid request"},
	{errs.ErrDuplicatePendingRequest, http.StatusConflict, KindDuplicatePendingRequest, "Request already exists and is pending"},
	{errs.ErrRequestNotFound, http.StatusNotFound, KindRequestNotFound, "Request not found"},
	{errs.ErrRequestAlreadyResolved, http.StatusConflict, KindRequestAlreadyResolved, "Request is no longer pending"},
}

// abortWithUsecaseError maps a usecase error to its status and kind. Unknown errors become 500.
func abortWithUsecaseError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			msg := m.msg
			if m.status == http.StatusBadRequest {
				msg = m.msg + ": " + err.Error()
			}
			httperr.AbortWithError(c, m.status, err, msg, gin.H{"kind": m.kind})
			return
		}
	}

	slog.Error("request failed with internal error",
		"request_id", middleware.GetRequestID(c),
		"path", c.Request.URL.Path,
		"error", err.Error(),
		"stack", errs.ExtractStackLines(err, 12))
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", gin.H{"kind": KindInternal})
}

func abortInvalid(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", gin.H{"kind": KindInvalidArgument})
}
