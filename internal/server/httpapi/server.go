// Package httpapi is the HTTP/JSON transport for studiokeeper. It is a thin
// adapter: handlers decode requests, delegate to the services layer, and map
// the shared error taxonomy onto status codes. No business rules live here.
package httpapi

import (
	"github.com/ronin-designs/studiokeeper/internal/logging"
	"github.com/ronin-designs/studiokeeper/internal/server/services"
)

// Server bundles the service dependencies the handlers need.
type Server struct {
	auth     *services.AuthService
	members  *services.MemberService
	messages *services.MessageService
	projects *services.ProjectService
	logger   logging.Logger
}

func NewServer(auth *services.AuthService, members *services.MemberService,
	messages *services.MessageService, projects *services.ProjectService,
	logger logging.Logger) *Server {
	return &Server{
		auth:     auth,
		members:  members,
		messages: messages,
		projects: projects,
		logger:   logger,
	}
}
