package planets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yanizio/stellar-dominion/internal/component"
	"github.com/yanizio/stellar-dominion/internal/cookies"
	"github.com/yanizio/stellar-dominion/internal/game"
	"github.com/yanizio/stellar-dominion/internal/view"
)

const (
	testPlanet   = "5b0efd85-8817-4454-b8f3-7af5d93253a1"
	testUniverse = "06fedf46-80ed-4188-b94c-ed0a494ec7bd"
	testBuilding = "461ba465-86e6-4234-94b8-fc8fab03fa74"
	testAction   = "38a739bd-79db-453e-ab03-44f9f300c3c8"
)

/*──────────────────────────── fake API ────────────────────────────────────*/

type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	planet      game.Planet
	universe    game.Universe
	planetErr   error
	universeErr error
	actionErr   error
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeAPI) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) GetPlanet(_ context.Context, apiKey, planetID string) (game.Planet, error) {
	f.record("GetPlanet " + apiKey + " " + planetID)
	return f.planet, f.planetErr
}

func (f *fakeAPI) GetUniverse(_ context.Context, universeID string) (game.Universe, error) {
	f.record("GetUniverse " + universeID)
	return f.universe, f.universeErr
}

func (f *fakeAPI) CreateBuildingAction(_ context.Context, apiKey, planetID, buildingID string) (game.BuildingAction, error) {
	f.record("CreateBuildingAction " + apiKey + " " + planetID + " " + buildingID)
	return game.BuildingAction{}, f.actionErr
}

func (f *fakeAPI) DeleteBuildingAction(_ context.Context, apiKey, actionID string) error {
	f.record("DeleteBuildingAction " + apiKey + " " + actionID)
	return f.actionErr
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func newRouter(t *testing.T, api game.API) http.Handler {
	t.Helper()
	b, err := cookies.NewBinder(cookies.Options{})
	if err != nil {
		t.Fatalf("NewBinder: %v", err)
	}
	c := &Component{}
	if err := c.Init(component.Deps{API: api, Cookies: b}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	r := chi.NewRouter()
	c.Routes(r)
	return r
}

// fullSession is a logged-in visitor.
var fullSession = map[string]string{
	cookies.KeyAPIUser:    "user-1",
	cookies.KeyAPIKey:     "key-1",
	cookies.KeyPlayerID:   "player-1",
	cookies.KeyPlayerName: "Zaphod",
	cookies.KeyUniverseID: testUniverse,
}

func withCookies(req *http.Request, values map[string]string) *http.Request {
	for k, v := range values {
		req.AddCookie(&http.Cookie{Name: k, Value: url.QueryEscape(v)})
	}
	return req
}

func get(h http.Handler, path string, jar map[string]string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, withCookies(httptest.NewRequest(http.MethodGet, path, nil), jar))
	return rec
}

func post(h http.Handler, path string, form url.Values, jar map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, withCookies(req, jar))
	return rec
}

func assertLoginRedirect(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != view.LoginPath {
		t.Fatalf("Location = %q, want %q", loc, view.LoginPath)
	}
}

// assertSessionCleared checks that every session cookie was expired.
func assertSessionCleared(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	expired := map[string]bool{}
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			expired[c.Name] = true
		}
	}
	for _, k := range cookies.Keys {
		if !expired[k] {
			t.Fatalf("cookie %q not cleared; got %v", k, rec.Header()["Set-Cookie"])
		}
	}
}

func postRaw(h http.Handler, path, body string, jar map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, withCookies(req, jar))
	return rec
}

const pagePath = "/planets/" + testPlanet + "/buildings"

/*──────────────────────────── page load ───────────────────────────────────*/

func TestLoadWithoutSessionRedirects(t *testing.T) {
	api := &fakeAPI{}
	rec := get(newRouter(t, api), pagePath, map[string]string{cookies.KeyPlayerName: "Zaphod"})

	assertLoginRedirect(t, rec)
	if n := len(api.seen()); n != 0 {
		t.Fatalf("expected no API calls, got %v", api.seen())
	}
	if rec.Header().Get(DependsHeader) != "" {
		t.Fatalf("dependency registered before the session check")
	}
}

func TestLoadExpiredKeyRedirects(t *testing.T) {
	api := &fakeAPI{planetErr: &game.Failure{Reason: game.ReasonAPIKeyExpired, Message: "expired"}}
	rec := get(newRouter(t, api), pagePath, fullSession)

	assertLoginRedirect(t, rec)
	if calls := api.seen(); len(calls) != 1 {
		t.Fatalf("universe should not be fetched, calls = %v", calls)
	}
	assertSessionCleared(t, rec)
}

func TestLoadPlanetFailureIsNotFound(t *testing.T) {
	api := &fakeAPI{planetErr: &game.Failure{Reason: game.ReasonNotFound, Message: "No such planet"}}
	rec := get(newRouter(t, api), pagePath, fullSession)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body struct{ Message string }
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil || body.Message != "No such planet" {
		t.Fatalf("body = %v (%v)", body, err)
	}
}

func TestLoadUniverseFailureIsNotFound(t *testing.T) {
	api := &fakeAPI{universeErr: errors.New("universe gone")}
	rec := get(newRouter(t, api), pagePath, fullSession)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "universe gone") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestLoadAssemblesPage(t *testing.T) {
	uid := uuid.MustParse(testUniverse)
	api := &fakeAPI{
		planet: game.Planet{ID: uuid.MustParse(testPlanet), Name: "my-planet"},
		universe: game.Universe{
			ID:        uid,
			Name:      "my-universe",
			Resources: []game.Resource{{ID: uuid.New(), Name: "metal"}},
			Buildings: nil,
		},
	}
	rec := get(newRouter(t, api), pagePath, fullSession)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(DependsHeader); got != PlanetDependency {
		t.Fatalf("%s = %q, want %q", DependsHeader, got, PlanetDependency)
	}

	wantCalls := []string{
		"GetPlanet key-1 " + testPlanet,
		"GetUniverse " + testUniverse,
	}
	if calls := api.seen(); strings.Join(calls, "|") != strings.Join(wantCalls, "|") {
		t.Fatalf("calls = %v, want %v", calls, wantCalls)
	}

	var page map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, k := range []string{"universe", "playerName", "resources", "buildings", "planet"} {
		if _, ok := page[k]; !ok {
			t.Fatalf("missing key %q in %s", k, rec.Body.String())
		}
	}
	if string(page["playerName"]) != `"Zaphod"` {
		t.Fatalf("playerName = %s", page["playerName"])
	}
	if string(page["universe"]) != `{"id":"`+testUniverse+`","name":"my-universe"}` {
		t.Fatalf("universe = %s", page["universe"])
	}
	if string(page["buildings"]) != `[]` {
		t.Fatalf("buildings = %s, want []", page["buildings"])
	}
}

/*──────────────────────────── actions ─────────────────────────────────────*/

func TestCreateWithoutBuildingIsMissing(t *testing.T) {
	api := &fakeAPI{}
	rec := post(newRouter(t, api), pagePath+"/createBuildingAction", url.Values{}, fullSession)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := `{"buildingId":null,"message":"Please select a building","missing":true,"success":false}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Fatalf("body = %s, want %s", got, want)
	}
	if n := len(api.seen()); n != 0 {
		t.Fatalf("expected no API calls, got %v", api.seen())
	}
}

func TestCreateWithEmptyBuildingEchoes(t *testing.T) {
	api := &fakeAPI{}
	rec := post(newRouter(t, api), pagePath+"/createBuildingAction", url.Values{"building": {""}}, fullSession)

	if !strings.Contains(rec.Body.String(), `"buildingId":""`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
	if n := len(api.seen()); n != 0 {
		t.Fatalf("expected no API calls, got %v", api.seen())
	}
}

func TestCreateSuccess(t *testing.T) {
	api := &fakeAPI{}
	rec := post(newRouter(t, api), pagePath+"/createBuildingAction", url.Values{"building": {testBuilding}}, fullSession)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	want := "CreateBuildingAction key-1 " + testPlanet + " " + testBuilding
	if calls := api.seen(); len(calls) != 1 || calls[0] != want {
		t.Fatalf("calls = %v, want [%s]", calls, want)
	}
}

func TestCreateFailureReportsMessage(t *testing.T) {
	api := &fakeAPI{actionErr: &game.Failure{Reason: game.ReasonUnknown, Message: "Not enough resources"}}
	rec := post(newRouter(t, api), pagePath+"/createBuildingAction", url.Values{"building": {testBuilding}}, fullSession)

	want := `{"message":"Not enough resources","success":false}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Fatalf("body = %s, want %s", got, want)
	}
}

func TestActionsRequireCredential(t *testing.T) {
	cases := map[string]map[string]string{
		"no cookies": {},
		"no key":     {cookies.KeyAPIUser: "user-1", cookies.KeyPlayerID: "player-1"},
		"no user":    {cookies.KeyAPIKey: "key-1", cookies.KeyUniverseID: testUniverse},
	}
	for name, jar := range cases {
		t.Run(name, func(t *testing.T) {
			api := &fakeAPI{}
			h := newRouter(t, api)
			for _, action := range []string{"/createBuildingAction", "/deleteBuildingAction"} {
				rec := post(h, pagePath+action, url.Values{"building": {testBuilding}, "action": {testAction}}, jar)
				assertLoginRedirect(t, rec)
			}
			if n := len(api.seen()); n != 0 {
				t.Fatalf("expected no API calls, got %v", api.seen())
			}
		})
	}
}

func TestDeleteWithoutActionIsMissing(t *testing.T) {
	api := &fakeAPI{}
	rec := post(newRouter(t, api), pagePath+"/deleteBuildingAction", url.Values{}, fullSession)

	want := `{"actionId":null,"message":"Please select an action","missing":true,"success":false}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Fatalf("body = %s, want %s", got, want)
	}
	if n := len(api.seen()); n != 0 {
		t.Fatalf("expected no API calls, got %v", api.seen())
	}
}

func TestDeleteSuccessAndFailure(t *testing.T) {
	api := &fakeAPI{}
	h := newRouter(t, api)

	rec := post(h, pagePath+"/deleteBuildingAction", url.Values{"action": {testAction}}, fullSession)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if calls := api.seen(); len(calls) != 1 || calls[0] != "DeleteBuildingAction key-1 "+testAction {
		t.Fatalf("calls = %v", calls)
	}

	api.actionErr = &game.Failure{Reason: game.ReasonNotFound, Message: "No such action"}
	rec = post(h, pagePath+"/deleteBuildingAction", url.Values{"action": {testAction}}, fullSession)
	if got := strings.TrimSpace(rec.Body.String()); got != `{"message":"No such action","success":false}` {
		t.Fatalf("body = %s", got)
	}
}

func TestLogoutResetsSession(t *testing.T) {
	rec := post(newRouter(t, &fakeAPI{}), pagePath+"/logout", url.Values{}, fullSession)

	assertLoginRedirect(t, rec)
	assertSessionCleared(t, rec)
}

func TestMalformedBodyChecksCredentialFirst(t *testing.T) {
	api := &fakeAPI{}
	h := newRouter(t, api)

	rec := postRaw(h, pagePath+"/createBuildingAction", "building=%zz", map[string]string{})
	assertLoginRedirect(t, rec)

	rec = postRaw(h, pagePath+"/deleteBuildingAction", "action=%zz", fullSession)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if n := len(api.seen()); n != 0 {
		t.Fatalf("expected no API calls, got %v", api.seen())
	}
}

func TestActionResultJSON(t *testing.T) {
	echo := "abc"
	cases := []struct {
		in   ActionResult
		want string
	}{
		{ActionResult{Message: "boom"}, `{"message":"boom","success":false}`},
		{ActionResult{Missing: true, Message: "m", EchoKey: "buildingId"}, `{"buildingId":null,"message":"m","missing":true,"success":false}`},
		{ActionResult{Missing: true, Message: "m", EchoKey: "actionId", Echo: &echo}, `{"actionId":"abc","message":"m","missing":true,"success":false}`},
	}
	for _, tc := range cases {
		out, err := json.Marshal(tc.in)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(out) != tc.want {
			t.Fatalf("got %s, want %s", out, tc.want)
		}
	}
}
