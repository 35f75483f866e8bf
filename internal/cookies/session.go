// internal/cookies/session.go
//
// Session codec.
//
// Context
// -------
// A logged-in player is described by five cookies (see keys.go).  The codec
// maps them to and from a Session value through any Jar.  Nothing here can
// fail: a missing cookie is the normal "no session" state, not an error.
//
// Presence rule
// -------------
// Load reports a session as present when ANY of api-user, api-key,
// player-id, or universe-id is defined.  player-name does not take part in
// the check; a jar holding only player-name decodes as "no session".
//
// Notes
// -----
//   • Store and Reset are idempotent; both overwrite whatever the jar held.
//   • Values pass through verbatim.  No trimming, no validation.

package cookies

// Credential is the API access pair issued at login.
type Credential struct {
	User string
	Key  string
}

// Player identifies the character the visitor plays as.
type Player struct {
	ID       string
	Name     string
	Universe string
}

// Session is the decoded cookie state.  Undefined cookies decode to "".
type Session struct {
	APIUser    string
	APIKey     string
	PlayerID   string
	PlayerName string
	UniverseID string
}

// Reset blanks every session cookie.
func Reset(jar Jar) {
	for _, k := range Keys {
		jar.Set(k, "")
	}
}

// Store writes the credential and player into the jar.
func Store(jar Jar, cred Credential, player Player) {
	jar.Set(KeyAPIUser, cred.User)
	jar.Set(KeyAPIKey, cred.Key)
	jar.Set(KeyPlayerID, player.ID)
	jar.Set(KeyPlayerName, player.Name)
	jar.Set(KeyUniverseID, player.Universe)
}

// Load decodes the jar.  valid is false when none of the identity-bearing
// cookies is defined.
func Load(jar Jar) (valid bool, s Session) {
	var okUser, okKey, okPlayer, okUniverse bool

	s.APIUser, okUser = get(jar, KeyAPIUser)
	s.APIKey, okKey = get(jar, KeyAPIKey)
	s.PlayerID, okPlayer = get(jar, KeyPlayerID)
	s.PlayerName, _ = get(jar, KeyPlayerName)
	s.UniverseID, okUniverse = get(jar, KeyUniverseID)

	return okUser || okKey || okPlayer || okUniverse, s
}

// get returns the raw value when defined, "" otherwise.
func get(jar Jar, key string) (string, bool) {
	v, ok := jar.Get(key)
	if !ok {
		return "", false
	}
	return v, true
}

// Credential returns the API pair held by s.
func (s Session) Credential() Credential {
	return Credential{User: s.APIUser, Key: s.APIKey}
}
