package payrollhandler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"paie/internal/requestctx"
	"paie/internal/transport/http/api"
	"paie/internal/transport/http/middleware"
)

const (
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = livePongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// handleLive recomputes the payroll for every compute request received on the
// socket, so a form can show results as the user types.
func (h *Handler) handleLive(w http.ResponseWriter, r *http.Request) {
	logger := requestctx.Logger(r.Context(), h.Logger)
	requestID := middleware.GetRequestID(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("live upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	if h.Sessions != nil {
		closed := h.Sessions.LiveSessionOpened()
		defer closed()
	}
	if h.MaxMessageBytes > 0 {
		conn.SetReadLimit(h.MaxMessageBytes)
	}
	_ = conn.SetReadDeadline(time.Now().Add(livePongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(livePongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(livePingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(liveWriteWait)); err != nil {
					return
				}
			}
		}
	}()

	logger.Debug("live session opened")
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("live session read failed", "err", err)
			}
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(livePongWait))

		_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
		if err := conn.WriteJSON(h.liveReply(data, requestID)); err != nil {
			logger.Warn("live session write failed", "err", err)
			break
		}
	}
	logger.Debug("live session closed")
}

func (h *Handler) liveReply(data []byte, requestID string) api.Envelope {
	var req computeRequest
	if err := decodeJSON(bytes.NewReader(data), &req); err != nil {
		return api.Envelope{Error: &api.Error{Code: "invalid_payload", Message: "invalid request payload"}, RequestID: requestID}
	}
	if v := h.validate(req); v.HasIssues() {
		return api.Envelope{
			Error: &api.Error{
				Code:    "validation_error",
				Message: "payload validation failed",
				Details: map[string]any{"fields": v.Issues()},
			},
			RequestID: requestID,
		}
	}
	summary, err := h.Service.Compute(*req.Inputs, req.EmployeeOverrides, req.EmployerOverrides)
	if err != nil {
		return api.Envelope{Error: &api.Error{Code: computeErrorCode(err), Message: err.Error()}, RequestID: requestID}
	}
	return api.Envelope{Success: true, Data: newComputeResponse(summary), RequestID: requestID}
}
