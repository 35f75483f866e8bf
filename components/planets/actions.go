// components/planets/actions.go
//
// Form actions of the buildings page.
//
// handleAction checks the credential cookies (through the cookies package
// constants) before the body is parsed.  Each action then validates its one
// form field and makes one API call.  A nil
// *ActionResult means success; the client refreshes "data:planet" on its
// own.

package planets

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/yanizio/stellar-dominion/internal/cookies"
	"github.com/yanizio/stellar-dominion/internal/game"
	"github.com/yanizio/stellar-dominion/internal/metrics"
)

// Form fields and the keys they are echoed under.
const (
	fieldBuilding = "building"
	fieldAction   = "action"

	echoBuilding = "buildingId"
	echoAction   = "actionId"

	msgSelectBuilding = "Please select a building"
	msgSelectAction   = "Please select an action"
)

// Metric label values for building_actions_total.
const (
	labelCreate = "create"
	labelDelete = "delete"
)

// ActionResult is returned to the form when an action did not go through.
type ActionResult struct {
	Success bool
	Missing bool
	Message string

	// EchoKey names the echoed form field; empty omits it.  Echo is nil
	// when the field was absent, which encodes as null.
	EchoKey string
	Echo    *string
}

// MarshalJSON writes {success, missing?, message, <EchoKey>?}.
func (a ActionResult) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"success": a.Success,
		"message": a.Message,
	}
	if a.Missing {
		m["missing"] = true
	}
	if a.EchoKey != "" {
		m[a.EchoKey] = a.Echo
	}
	return json.Marshal(m)
}

type actionRequest struct {
	ctx    context.Context
	apiKey string
	planet string
	form   url.Values
}

func (c *Component) createBuildingAction(req actionRequest) (*ActionResult, error) {
	building, present := formValue(req.form, fieldBuilding)
	if building == "" {
		metrics.BuildingActionsTotal.WithLabelValues(labelCreate, metrics.OutcomeMissing).Inc()
		return missing(msgSelectBuilding, echoBuilding, building, present), nil
	}

	if _, err := c.api.CreateBuildingAction(req.ctx, req.apiKey, req.planet, building); err != nil {
		metrics.BuildingActionsTotal.WithLabelValues(labelCreate, metrics.OutcomeFailure).Inc()
		return &ActionResult{Message: game.MessageOf(err)}, nil
	}
	metrics.BuildingActionsTotal.WithLabelValues(labelCreate, metrics.OutcomeSuccess).Inc()
	return nil, nil
}

func (c *Component) deleteBuildingAction(req actionRequest) (*ActionResult, error) {
	action, present := formValue(req.form, fieldAction)
	if action == "" {
		metrics.BuildingActionsTotal.WithLabelValues(labelDelete, metrics.OutcomeMissing).Inc()
		return missing(msgSelectAction, echoAction, action, present), nil
	}

	if err := c.api.DeleteBuildingAction(req.ctx, req.apiKey, action); err != nil {
		metrics.BuildingActionsTotal.WithLabelValues(labelDelete, metrics.OutcomeFailure).Inc()
		return &ActionResult{Message: game.MessageOf(err)}, nil
	}
	metrics.BuildingActionsTotal.WithLabelValues(labelDelete, metrics.OutcomeSuccess).Inc()
	return nil, nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// credential returns the API key when both api-key and api-user hold a
// non-empty value.
func credential(jar cookies.Jar) (string, bool) {
	key, ok := jar.Get(cookies.KeyAPIKey)
	if !ok || key == "" {
		return "", false
	}
	user, ok := jar.Get(cookies.KeyAPIUser)
	if !ok || user == "" {
		return "", false
	}
	return key, true
}

// formValue returns the first value of name and whether the field was sent.
func formValue(form url.Values, name string) (string, bool) {
	vs, ok := form[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func missing(msg, echoKey, value string, present bool) *ActionResult {
	res := &ActionResult{Missing: true, Message: msg, EchoKey: echoKey}
	if present {
		res.Echo = &value
	}
	return res
}
