// components/auth/auth.go
//
// Authentication component – login landing page and logout.
//
// Credentials are exchanged with the game API by the login front end, which
// stores the session cookies itself.  This component only decides whether a
// visitor still needs that page and lets them end a session.
//
//------------------------------------------------------------------------------

package auth

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/stellar-dominion/internal/component"
	"github.com/yanizio/stellar-dominion/internal/cookies"
	"github.com/yanizio/stellar-dominion/internal/logger"
	"github.com/yanizio/stellar-dominion/internal/view"
)

// Compile-time assertion: *Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

var loginPage = template.Must(template.New("login").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Stellar Dominion – Login</title></head>
<body>
  <h1>Stellar Dominion</h1>
  <p>Your session has ended.  Sign in again to return to your planets.</p>
  {{if .Player}}<p>Last signed in as <strong>{{.Player}}</strong>.</p>{{end}}
</body>
</html>`))

// Component serves the login landing page.
type Component struct {
	jars *cookies.Binder
}

/*────────────────── component.Component methods ───────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return "auth" }

// Init keeps the cookie binder; auth never calls the game API.
func (c *Component) Init(d component.Deps) error {
	if err := d.Validate(); err != nil {
		return err
	}
	c.jars = d.Cookies
	return nil
}

// Routes adds /login and /logout.
func (c *Component) Routes(r chi.Router) {
	r.Get(view.LoginPath, c.handleLoginGET)
	r.Post("/logout", c.handleLogoutPOST)
}

// Register component at program start.
func init() { component.Register(&Component{}) }

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) handleLoginGET(w http.ResponseWriter, r *http.Request) {
	// Always rendered: a stale but decodable session must still be able to
	// reach this page.
	player, _ := c.jars.Bind(w, r).Get(cookies.KeyPlayerName)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := loginPage.Execute(w, map[string]any{"Player": player}); err != nil {
		logger.FromContext(r.Context()).Errorw("login page render failed", "err", err)
	}
}

func (c *Component) handleLogoutPOST(w http.ResponseWriter, r *http.Request) {
	cookies.Reset(c.jars.Bind(w, r))
	view.ToLogin(w, r, view.ReasonLoggedOut)
}
