package handlers

import (
	"net/http"

	"intersify/internal/domain/user"
	"intersify/internal/http/middleware"
	"intersify/internal/http/response"
	"intersify/internal/notify"
	"intersify/internal/realtime"
)

type WSHandler struct {
	hub *realtime.Hub
}

func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Attach subscribes the authenticated caller to its own notification
// channels: students get their private channel, companies their broadcast
// channel. Channel names are derived from the token, never from the request.
func (h *WSHandler) Attach(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())

	var channels []string
	switch role {
	case user.RoleStudent:
		channels = []string{notify.StudentChannel(userID)}
	case user.RoleCompany:
		channels = []string{notify.CompanyChannel(userID)}
	default:
		response.Error(w, errUnauthorized())
		return
	}
	_ = h.hub.Attach(w, r, channels)
}
