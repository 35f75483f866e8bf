// components/planets/page.go
//
// Page load for the planet buildings view.
//
// Flow
// ----
//  1. Decode the session; no session → 303 /login, nothing else happens.
//  2. Declare the "data:planet" dependency so form actions can refresh us.
//  3. Fetch the planet with the player's key.  An expired key → 303 /login;
//     any other failure → 404 with the API's message.  On expiry the
//     session cookies are reset first, so /login sees a clean jar.
//  4. Fetch the universe named by the session.  Failure → 404.
//  5. Assemble PageData.

package planets

import (
	"context"

	"github.com/yanizio/stellar-dominion/internal/cookies"
	"github.com/yanizio/stellar-dominion/internal/game"
	"github.com/yanizio/stellar-dominion/internal/view"
)

// PlanetDependency is the data tag the page registers.
const PlanetDependency = "data:planet"

// PageData is the view model of the buildings page.
type PageData struct {
	Universe   game.UniverseSummary `json:"universe"`
	PlayerName string               `json:"playerName"`
	Resources  []game.Resource      `json:"resources"`
	Buildings  []game.Building      `json:"buildings"`
	Planet     game.Planet          `json:"planet"`
}

func (c *Component) load(ctx context.Context, jar cookies.Jar, planetID string, depends func(string)) (PageData, error) {
	valid, s := cookies.Load(jar)
	if !valid {
		return PageData{}, toLogin(view.ReasonNoSession)
	}

	depends(PlanetDependency)

	planet, err := c.api.GetPlanet(ctx, s.APIKey, planetID)
	if err != nil {
		if game.ReasonOf(err) == game.ReasonAPIKeyExpired {
			cookies.Reset(jar)
			return PageData{}, toLogin(view.ReasonKeyExpired)
		}
		return PageData{}, notFound(game.MessageOf(err), err)
	}

	universe, err := c.api.GetUniverse(ctx, s.UniverseID)
	if err != nil {
		return PageData{}, notFound(game.MessageOf(err), err)
	}

	return PageData{
		Universe:   universe.Summary(),
		PlayerName: s.PlayerName,
		Resources:  nonNil(universe.Resources),
		Buildings:  nonNil(universe.Buildings),
		Planet:     planet,
	}, nil
}

// nonNil keeps empty lists encoding as [] for fakes that skip normalization.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
