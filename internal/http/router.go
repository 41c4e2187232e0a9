package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"intersify/internal/domain/user"
	"intersify/internal/http/handlers"
	httpmw "intersify/internal/http/middleware"
)

type RouterDependencies struct {
	ApplicationHandler *handlers.ApplicationHandler
	CertificateHandler *handlers.CertificateHandler
	WSHandler          *handlers.WSHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Logger             zerolog.Logger
	RequestTimeout     time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// The websocket upgrade hijacks the connection; the timeout and logging
	// wrappers would get in the way, so only authentication applies here.
	if req.Method == http.MethodGet && req.URL.Path == "/ws" {
		r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(r.deps.WSHandler.Attach)).ServeHTTP(w, req)
		return
	}

	handler := httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(r.deps.Logger),
		httpmw.BodyLimit(maxBodyBytes),
		httpmw.Recover(r.deps.Logger),
		httpmw.Timeout(r.deps.RequestTimeout),
	)
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		if req.Method == http.MethodGet && path == "/health" {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		if strings.HasPrefix(path, "/applications") || strings.HasPrefix(path, "/students") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(r.handleProtected))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodPost && path == "/applications":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ApplicationHandler.Submit)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/status"):
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.ApplicationHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/tracking"):
		r.deps.ApplicationHandler.Tracking(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/stages"):
		r.deps.ApplicationHandler.Stages(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/certificate"):
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.CertificateHandler.Issue)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/students/certificates":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.CertificateHandler.ListByStudent)).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}
