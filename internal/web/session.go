package web

import (
	"context"
	"encoding/gob"
	"net/http"

	"github.com/JonMunkholm/datasweeper/internal/core"
	"github.com/JonMunkholm/datasweeper/internal/logging"
	"github.com/JonMunkholm/datasweeper/internal/web/templates"
	"github.com/gorilla/sessions"
)

// sessionWorkspaceKey holds the workspace ID in the session cookie.
const sessionWorkspaceKey = "workspace"

type workspaceKey struct{}

func init() {
	gob.Register(templates.Alert{})
}

// withWorkspace resolves the session cookie to a workspace and stores it in
// the request context. A missing, expired or undecodable session starts a
// new workspace and rewrites the cookie.
func (s *Server) withWorkspace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.session(r)
		if err != nil {
			logging.FromContext(r.Context()).Debug("session cookie rejected", "error", err)
		}

		id, _ := sess.Values[sessionWorkspaceKey].(string)
		ws, created := s.service.OpenWorkspace(id)
		if created {
			sess.Values[sessionWorkspaceKey] = ws.ID
			if err := sess.Save(r, w); err != nil {
				s.respondError(w, r, err, http.StatusInternalServerError)
				return
			}
			logging.FromContext(r.Context()).Debug("workspace created", "workspace", ws.ID)
		}

		ctx := context.WithValue(r.Context(), workspaceKey{}, ws)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// workspaceFrom returns the workspace stored by withWorkspace.
func workspaceFrom(ctx context.Context) *core.Workspace {
	ws, _ := ctx.Value(workspaceKey{}).(*core.Workspace)
	return ws
}

// session returns the request's session. On a decode error the returned
// session is a fresh one.
func (s *Server) session(r *http.Request) (*sessions.Session, error) {
	return s.sessions.Get(r, s.cfg.Session.CookieName)
}

// addFlash queues an alert for the next dashboard render.
func (s *Server) addFlash(w http.ResponseWriter, r *http.Request, a templates.Alert) {
	sess, _ := s.session(r)
	if ws := workspaceFrom(r.Context()); ws != nil {
		sess.Values[sessionWorkspaceKey] = ws.ID
	}
	sess.AddFlash(a)
	if err := sess.Save(r, w); err != nil {
		logging.FromContext(r.Context()).Warn("save flash", "error", err)
	}
}

// takeFlashes returns and clears queued alerts. It must run before the
// response body is written.
func (s *Server) takeFlashes(w http.ResponseWriter, r *http.Request) []templates.Alert {
	sess, _ := s.session(r)
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if ws := workspaceFrom(r.Context()); ws != nil {
		sess.Values[sessionWorkspaceKey] = ws.ID
	}
	if err := sess.Save(r, w); err != nil {
		logging.FromContext(r.Context()).Warn("clear flashes", "error", err)
	}

	alerts := make([]templates.Alert, 0, len(flashes))
	for _, f := range flashes {
		if a, ok := f.(templates.Alert); ok {
			alerts = append(alerts, a)
		}
	}
	return alerts
}
