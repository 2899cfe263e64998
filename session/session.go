// Package session keeps the per-client product selection in a signed,
// encrypted cookie.
package session

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"marketing-template/catalog"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/hkdf"
)

const (
	CookieName = "marketing_session"
	// ErrorContextKey holds the cookie decode error, if any, on the gin context.
	ErrorContextKey   = "session_error"
	sessionMaxAgeDays = 7

	keySelectedProduct = "selected_product"
)

type Store struct {
	cookies *sessions.CookieStore
}

// NewStore derives the cookie signing and encryption keys from secret.
// An empty secret yields random keys that only live as long as the process.
func NewStore(secret string, secure bool) (*Store, error) {
	master := []byte(secret)
	if len(master) == 0 {
		master = securecookie.GenerateRandomKey(32)
		if master == nil {
			return nil, fmt.Errorf("generate session secret: no entropy available")
		}
	}

	authKey, err := deriveKey(master, "marketing-session-auth")
	if err != nil {
		return nil, err
	}
	encKey, err := deriveKey(master, "marketing-session-enc")
	if err != nil {
		return nil, err
	}

	cookies := sessions.NewCookieStore(authKey, encKey)
	// Selections carry whole catalog records, which can exceed the 4096-byte default.
	for _, codec := range cookies.Codecs {
		if sc, ok := codec.(*securecookie.SecureCookie); ok {
			sc.MaxLength(0)
		}
	}
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * sessionMaxAgeDays,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Store{cookies: cookies}, nil
}

func deriveKey(master []byte, info string) ([]byte, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, master, nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", info, err)
	}
	return key, nil
}

// Selection returns the selection handle for the requesting client. A missing
// or undecodable cookie starts a fresh, empty session.
func (s *Store) Selection(c *gin.Context) *Selection {
	sess, err := s.cookies.Get(c.Request, CookieName)
	if err != nil {
		c.Set(ErrorContextKey, err.Error())
	}
	return &Selection{session: sess, req: c.Request, w: c.Writer}
}

// Selection is the single product a client has chosen. It is only ever
// overwritten, never cleared.
type Selection struct {
	session *sessions.Session
	req     *http.Request
	w       http.ResponseWriter
}

func (s *Selection) Get() (catalog.Product, bool) {
	raw, ok := s.session.Values[keySelectedProduct].(string)
	if !ok {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var p catalog.Product
	if err := dec.Decode(&p); err != nil || p == nil {
		return nil, false
	}
	return p, true
}

func (s *Selection) Set(p catalog.Product) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	s.session.Values[keySelectedProduct] = string(raw)
	return nil
}

// Save writes the session cookie. It must run before the response body.
func (s *Selection) Save() error {
	if err := s.session.Save(s.req, s.w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
