// internal/cookies/jar.go
//
// Cookie jar abstraction and its net/http implementation.
//
// Context
// -------
// The session codec only needs two operations from the transport: read a
// named value and write one.  Jar captures that contract so the codec can be
// exercised against a map in tests and against real requests in handlers.
//
// HTTPJar
// -------
//   • Get reads the incoming request, but writes issued earlier in the same
//     request win, so Store followed by Load sees the new values.
//   • Set with an empty value expires the cookie (MaxAge -1) and the key
//     reads as undefined for the rest of the request.
//   • When a Binder is built with a hash key, values are signed (and,
//     with a block key, encrypted) by gorilla/securecookie.  A value that
//     fails verification reads as undefined.
//
// Notes
// -----
//   • Unsigned values are query-escaped so player names with spaces or
//     non-ASCII letters survive the Cookie header intact.
//   • Oxford commas, two spaces after periods.

package cookies

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

// Jar is a request-scoped key/value cookie store.
//
// Get reports ok == false when the key is not defined.  A defined key may
// still hold the empty string.
type Jar interface {
	Get(name string) (value string, ok bool)
	Set(name, value string)
}

// Options control the attributes written on every cookie.
type Options struct {
	Path     string
	Secure   bool
	HTTPOnly bool
	SameSite http.SameSite
	MaxAge   int // seconds; 0 means session cookie

	HashKey  []byte // optional; enables signing
	BlockKey []byte // optional; enables encryption (needs HashKey)
}

// Binder builds HTTPJars that share one set of Options.  Safe for concurrent
// use.
type Binder struct {
	opts  Options
	codec *securecookie.SecureCookie
}

// ErrBlockKeyWithoutHash is returned when encryption is requested without a
// signing key.
var ErrBlockKeyWithoutHash = errors.New("cookies: block key requires a hash key")

// NewBinder validates opts and returns a Binder.  An empty Path falls back to
// DefaultPath.
func NewBinder(opts Options) (*Binder, error) {
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.SameSite == 0 {
		opts.SameSite = http.SameSiteLaxMode
	}

	b := &Binder{opts: opts}
	if len(opts.HashKey) == 0 {
		if len(opts.BlockKey) > 0 {
			return nil, ErrBlockKeyWithoutHash
		}
		return b, nil
	}

	sc := securecookie.New(opts.HashKey, opts.BlockKey)
	if opts.MaxAge > 0 {
		sc.MaxAge(opts.MaxAge)
	}
	// securecookie defers key errors until first use; surface them at boot.
	if _, err := sc.Encode(KeyAPIKey, "probe"); err != nil {
		return nil, err
	}
	b.codec = sc
	return b, nil
}

// Bind returns a jar over one request/response pair.
func (b *Binder) Bind(w http.ResponseWriter, r *http.Request) *HTTPJar {
	return &HTTPJar{
		w:       w,
		r:       r,
		binder:  b,
		written: make(map[string]string, len(Keys)),
	}
}

// Signed reports whether jars from b sign their values.
func (b *Binder) Signed() bool { return b.codec != nil }

// HTTPJar implements Jar over net/http.  Not safe for concurrent use, like
// the request it wraps.
type HTTPJar struct {
	w      http.ResponseWriter
	r      *http.Request
	binder *Binder

	written map[string]string // values set during this request; "" = cleared
}

var _ Jar = (*HTTPJar)(nil)

// Get implements Jar.
func (j *HTTPJar) Get(name string) (string, bool) {
	if v, ok := j.written[name]; ok {
		if v == "" {
			return "", false
		}
		return v, true
	}

	c, err := j.r.Cookie(name)
	if err != nil {
		return "", false
	}
	if j.binder.codec == nil {
		v, err := url.QueryUnescape(c.Value)
		if err != nil {
			return c.Value, true
		}
		return v, true
	}

	var v string
	if err := j.binder.codec.Decode(name, c.Value, &v); err != nil {
		zap.S().Debugw("session cookie rejected", "cookie", name, "err", err)
		return "", false
	}
	return v, true
}

// Set implements Jar.
func (j *HTTPJar) Set(name, value string) {
	opts := j.binder.opts
	c := &http.Cookie{
		Name:     name,
		Path:     opts.Path,
		Secure:   opts.Secure,
		HttpOnly: opts.HTTPOnly,
		SameSite: opts.SameSite,
		MaxAge:   opts.MaxAge,
	}

	if value == "" {
		c.MaxAge = -1
	} else if j.binder.codec != nil {
		enc, err := j.binder.codec.Encode(name, value)
		if err != nil {
			zap.S().Warnw("session cookie encode failed", "cookie", name, "err", err)
			return
		}
		c.Value = enc
	} else {
		c.Value = url.QueryEscape(value)
	}

	j.written[name] = value
	http.SetCookie(j.w, c)
}
