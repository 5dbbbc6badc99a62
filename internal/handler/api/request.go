package api

import (
	"net/http"

	reqdto "request-hub/internal/handler/dto/request"
	resdto "request-hub/internal/handler/dto/response"
	"request-hub/internal/handler/middleware"
	"request-hub/internal/usecase/commands"
	"request-hub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	cmds commands.RequestCommands
	q    queries.RequestQueries
}

func NewRequestHandler(cmds commands.RequestCommands, q queries.RequestQueries) *RequestHandler {
	return &RequestHandler{cmds: cmds, q: q}
}

// @Summary Send request
// @Description Send a connection request from the caller to the receiver
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SendRequest true "Send request"
// @Success 201 {object} resdto.RequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /requests [post]
func (h *RequestHandler) Send(c *gin.Context) {
	var req reqdto.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalid(c, err)
		return
	}
	created, err := h.cmds.SendRequest(c.Request.Context(), credential(c), commands.SendRequestInput{Receiver: req.Receiver})
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Header("Location", "/api/requests/"+created.ID().String())
	c.JSON(http.StatusCreated, resdto.FromRequest(created))
}

// @Summary List my requests
// @Description List pending requests addressed to the caller, newest first
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.RequestListResponse
// @Failure 401 {object} httperr.Response
// @Router /requests/me [get]
func (h *RequestHandler) ListMine(c *gin.Context) {
	views, err := h.q.GetMyRequests(c.Request.Context(), credential(c))
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestList(views))
}

// @Summary Update request status
// @Description Resolve a pending request. Only "accepted" starts a conversation
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.UpdateRequestStatus true "Target status"
// @Success 200 {object} resdto.RequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /requests/{id} [patch]
func (h *RequestHandler) Accept(c *gin.Context) {
	var req reqdto.UpdateRequestStatus
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalid(c, err)
		return
	}
	updated, err := h.cmds.AcceptRequest(c.Request.Context(), commands.AcceptRequestInput{
		RequestID: c.Param("id"),
		Status:    req.Status,
	})
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequest(updated))
}

// @Summary Reject request
// @Description Reject a pending request, record an audit entry and delete it
// @Tags requests
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /requests/{id}/reject [post]
func (h *RequestHandler) Reject(c *gin.Context) {
	if err := h.cmds.RejectRequest(c.Request.Context(), c.Param("id")); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// credential prefers the value captured by the auth middleware and falls back to the request itself.
func credential(c *gin.Context) string {
	if v := middleware.GetCredential(c); v != "" {
		return v
	}
	return middleware.ExtractCredential(c)
}
