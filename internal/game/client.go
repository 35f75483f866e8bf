// internal/game/client.go
//
// HTTP client for the remote game API.
//
// Context
// -------
// Page handlers depend on the API interface, never on *Client, so they can
// be tested without a network.  Client is the production implementation:
//
//   - One pooled transport (hashicorp/go-cleanhttp) shared by all requests.
//   - The player's key travels in the X-Api-Key header.
//   - Every answer is an envelope {requestId, status, details}.  A status
//     other than SUCCESS carries {Code, Message} in details, which we turn
//     into a *Failure.
//   - No retries.  A failed call is reported to the caller at once.
//
// Instrumentation
// ---------------
//   - game_api_requests_total{endpoint,outcome} and
//     game_api_request_duration_seconds{endpoint}.
//   - DEBUG span per call with endpoint, HTTP status, request id, and
//     duration.
//
// Notes
// -----
//   - Identifiers are parsed as UUIDs before any request is built; a malformed
//     id fails with ReasonNotFound and no traffic.
//   - Oxford commas, two spaces after periods.

package game

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"go.uber.org/zap"

	"github.com/yanizio/stellar-dominion/internal/metrics"
)

// API is the capability the page controllers need from the game backend.
type API interface {
	GetPlanet(ctx context.Context, apiKey, planetID string) (Planet, error)
	GetUniverse(ctx context.Context, universeID string) (Universe, error)
	CreateBuildingAction(ctx context.Context, apiKey, planetID, buildingID string) (BuildingAction, error)
	DeleteBuildingAction(ctx context.Context, apiKey, actionID string) error
}

// Endpoint labels used for metrics and logs.
const (
	EndpointGetPlanet            = "get_planet"
	EndpointGetUniverse          = "get_universe"
	EndpointCreateBuildingAction = "create_building_action"
	EndpointDeleteBuildingAction = "delete_building_action"
)

const (
	apiKeyHeader    = "X-Api-Key"
	statusSuccess   = "SUCCESS"
	maxResponseSize = 4 << 20 // 4 MiB
	defaultTimeout  = 10 * time.Second
)

// Client talks to the game API over HTTP.  Safe for concurrent use.
type Client struct {
	base *url.URL
	http *http.Client
}

var _ API = (*Client)(nil)

// NewClient returns a Client rooted at baseURL.  timeout <= 0 selects a
// ten-second default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("game api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("game api base url %q: scheme must be http or https", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = timeout
	return &Client{base: u, http: hc}, nil
}

/*──────────────────────────── API methods ─────────────────────────────────*/

// GetPlanet fetches the full planet document.
func (c *Client) GetPlanet(ctx context.Context, apiKey, planetID string) (Planet, error) {
	id, err := parseID("planet", planetID)
	if err != nil {
		return Planet{}, err
	}

	var out Planet
	if err := c.do(ctx, EndpointGetPlanet, http.MethodGet, "v1/planets/"+id.String(), apiKey, nil, &out); err != nil {
		return Planet{}, err
	}
	out.normalize()
	return out, nil
}

// GetUniverse fetches the universe with its resources and buildings.  The
// endpoint is public and takes no key.
func (c *Client) GetUniverse(ctx context.Context, universeID string) (Universe, error) {
	id, err := parseID("universe", universeID)
	if err != nil {
		return Universe{}, err
	}

	var out Universe
	if err := c.do(ctx, EndpointGetUniverse, http.MethodGet, "v1/universes/"+id.String(), "", nil, &out); err != nil {
		return Universe{}, err
	}
	out.normalize()
	return out, nil
}

// CreateBuildingAction queues an upgrade of buildingID on planetID.
func (c *Client) CreateBuildingAction(ctx context.Context, apiKey, planetID, buildingID string) (BuildingAction, error) {
	planet, err := parseID("planet", planetID)
	if err != nil {
		return BuildingAction{}, err
	}
	building, err := parseID("building", buildingID)
	if err != nil {
		return BuildingAction{}, err
	}

	body := buildingActionRequest{Planet: planet, Building: building}
	var out BuildingAction
	path := "v1/planets/" + planet.String() + "/actions"
	if err := c.do(ctx, EndpointCreateBuildingAction, http.MethodPost, path, apiKey, body, &out); err != nil {
		return BuildingAction{}, err
	}
	return out, nil
}

// DeleteBuildingAction cancels an upgrade in progress.
func (c *Client) DeleteBuildingAction(ctx context.Context, apiKey, actionID string) error {
	id, err := parseID("action", actionID)
	if err != nil {
		return err
	}
	return c.do(ctx, EndpointDeleteBuildingAction, http.MethodDelete, "v1/actions/"+id.String(), apiKey, nil, nil)
}

/*──────────────────────────── transport ───────────────────────────────────*/

type envelope struct {
	RequestID uuid.UUID       `json:"requestId"`
	Status    string          `json:"status"`
	Details   json.RawMessage `json:"details,omitempty"`
}

type errorDetails struct {
	Code    int    `json:"Code"`
	Message string `json:"Message"`
}

// do performs one call, records metrics, and decodes the envelope into out
// (which may be nil).
func (c *Client) do(ctx context.Context, endpoint, method, path, apiKey string, body, out any) (err error) {
	start := time.Now()
	status := 0
	var reqID uuid.UUID

	defer func() {
		elapsed := time.Since(start)
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeFailure
		}
		metrics.APIRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
		metrics.APIRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
		zap.S().Debugw("game api call",
			"endpoint", endpoint,
			"status", status,
			"request_id", reqID.String(),
			"duration", elapsed,
			"err", err,
		)
	}()

	req, err := c.newRequest(ctx, method, path, apiKey, body)
	if err != nil {
		return &Failure{Reason: ReasonUnknown, Message: "Unable to build request", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Failure{Reason: ReasonUnavailable, Message: "The game server is unreachable", Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &Failure{Reason: ReasonUnavailable, Message: "The game server is unreachable", Err: err}
	}

	if len(bytes.TrimSpace(raw)) == 0 && resp.StatusCode/100 == 2 {
		return nil // 204 and friends
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return statusFailure(resp.StatusCode, err)
	}
	reqID = env.RequestID

	if env.Status != statusSuccess {
		return envelopeFailure(resp.StatusCode, env)
	}
	if out == nil || len(env.Details) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Details, out); err != nil {
		return &Failure{Reason: ReasonUnknown, Message: "Unexpected answer from the game server", RequestID: env.RequestID, Err: err}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path, apiKey string, body any) (*http.Request, error) {
	target := c.base.JoinPath(strings.Split(path, "/")...)

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set(apiKeyHeader, apiKey)
	}
	return req, nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// envelopeFailure converts an ERROR envelope into a *Failure.
func envelopeFailure(httpStatus int, env envelope) *Failure {
	var d errorDetails
	if len(env.Details) > 0 {
		_ = json.Unmarshal(env.Details, &d)
	}

	reason := reasonForCode(d.Code)
	if reason == ReasonUnknown && httpStatus == http.StatusNotFound {
		reason = ReasonNotFound
	}

	msg := d.Message
	if msg == "" {
		msg = http.StatusText(httpStatus)
	}
	return &Failure{Reason: reason, Message: msg, RequestID: env.RequestID}
}

// statusFailure handles answers that are not an envelope at all.
func statusFailure(httpStatus int, cause error) *Failure {
	if httpStatus == http.StatusNotFound {
		return &Failure{Reason: ReasonNotFound, Message: http.StatusText(httpStatus), Err: cause}
	}
	return &Failure{Reason: ReasonUnknown, Message: "Unexpected answer from the game server", Err: cause}
}

var errMalformedID = errors.New("malformed identifier")

func parseID(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &Failure{
			Reason:  ReasonNotFound,
			Message: fmt.Sprintf("No such %s", kind),
			Err:     fmt.Errorf("%w: %q", errMalformedID, raw),
		}
	}
	return id, nil
}
