// internal/cookies/keys.go
//
// Cookie names shared by the session codec and every handler that needs a
// raw credential.  Handlers must never spell these strings out themselves.

package cookies

// Cookie keys, all scoped to DefaultPath.
const (
	KeyAPIUser    = "api-user"
	KeyAPIKey     = "api-key"
	KeyPlayerID   = "player-id"
	KeyPlayerName = "player-name"
	KeyUniverseID = "universe-id"
)

// DefaultPath is the path attribute written on every session cookie.
const DefaultPath = "/"

// Keys lists the session cookies in the order Reset and Store write them.
var Keys = [...]string{
	KeyAPIUser,
	KeyAPIKey,
	KeyPlayerID,
	KeyPlayerName,
	KeyUniverseID,
}
