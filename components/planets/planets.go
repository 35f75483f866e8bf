// components/planets/planets.go
//
// Planet buildings page component.
//
// Routes
// ------
//
//	GET  /planets/{planet}/buildings                       page load
//	POST /planets/{planet}/buildings/createBuildingAction  queue an upgrade
//	POST /planets/{planet}/buildings/deleteBuildingAction  cancel an upgrade
//	POST /planets/{planet}/buildings/logout                end the session
//
// Handlers are thin: they bind a cookie jar to the request, call the
// matching operation in page.go or actions.go, and translate its outcome
// into a response.
//
//------------------------------------------------------------------------------

package planets

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/stellar-dominion/internal/component"
	"github.com/yanizio/stellar-dominion/internal/cookies"
	"github.com/yanizio/stellar-dominion/internal/game"
	"github.com/yanizio/stellar-dominion/internal/logger"
	"github.com/yanizio/stellar-dominion/internal/view"
)

// Compile-time assertion: *Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// DependsHeader names the data tags a page depends on.  Clients re-fetch
// the page when one of the tags is invalidated by a form action.
const DependsHeader = "X-Depends"

// Component serves the buildings page of one planet.
type Component struct {
	api  game.API
	jars *cookies.Binder
}

/*────────────────── component.Component methods ───────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return "planets" }

// Init stores the shared dependencies.
func (c *Component) Init(d component.Deps) error {
	if err := d.Validate(); err != nil {
		return err
	}
	c.api = d.API
	c.jars = d.Cookies
	return nil
}

// Routes adds the page and its form actions to r.
func (c *Component) Routes(r chi.Router) {
	r.Route("/planets/{planet}/buildings", func(r chi.Router) {
		r.Get("/", c.handleLoad)
		r.Post("/createBuildingAction", c.handleCreateBuildingAction)
		r.Post("/deleteBuildingAction", c.handleDeleteBuildingAction)
		r.Post("/logout", c.handleLogout)
	})
}

// Register component at program start.
func init() { component.Register(&Component{}) }

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) handleLoad(w http.ResponseWriter, r *http.Request) {
	jar := c.jars.Bind(w, r)
	depends := func(tag string) { w.Header().Add(DependsHeader, tag) }

	data, err := c.load(r.Context(), jar, chi.URLParam(r, "planet"), depends)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	view.JSON(w, r, http.StatusOK, data)
}

func (c *Component) handleCreateBuildingAction(w http.ResponseWriter, r *http.Request) {
	c.handleAction(w, r, c.createBuildingAction)
}

func (c *Component) handleDeleteBuildingAction(w http.ResponseWriter, r *http.Request) {
	c.handleAction(w, r, c.deleteBuildingAction)
}

func (c *Component) handleLogout(w http.ResponseWriter, r *http.Request) {
	cookies.Reset(c.jars.Bind(w, r))
	view.ToLogin(w, r, view.ReasonLoggedOut)
}

// actionFunc is the shape shared by the form actions.
type actionFunc func(req actionRequest) (*ActionResult, error)

func (c *Component) handleAction(w http.ResponseWriter, r *http.Request, fn actionFunc) {
	jar := c.jars.Bind(w, r)
	apiKey, ok := credential(jar)
	if !ok {
		c.fail(w, r, toLogin(view.ReasonNoCredential))
		return
	}

	if err := r.ParseForm(); err != nil {
		view.Message(w, r, http.StatusBadRequest, "Malformed form submission")
		return
	}

	res, err := fn(actionRequest{
		ctx:    r.Context(),
		apiKey: apiKey,
		planet: chi.URLParam(r, "planet"),
		form:   r.PostForm,
	})
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if res == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	view.JSON(w, r, http.StatusOK, res)
}

// fail maps the outcome errors of page.go and actions.go to responses.
func (c *Component) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		re *redirectError
		se *statusError
	)
	switch {
	case errors.As(err, &re):
		view.SeeOther(w, r, re.location, re.reason)
	case errors.As(err, &se):
		logger.FromContext(r.Context()).Infow("planet page failed",
			"status", se.status, "message", se.message, "err", se.cause)
		view.Message(w, r, se.status, se.message)
	default:
		logger.FromContext(r.Context()).Errorw("planet page error", "err", err)
		view.Message(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
