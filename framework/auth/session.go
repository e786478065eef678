package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const (
	SessionCookie = "cc_session"
	StateCookie   = "cc_signin"

	sessionTTL = 8 * time.Hour
	stateTTL   = 10 * time.Minute
)

// User is the signed in user.
type User struct {
	Name  string
	Email string
}

// SessionClaims are carried by the session cookie.
type SessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	CSRF  string `json:"csrf"`
	jwt.RegisteredClaims
}

// StateClaims protect a pending sign in against forgery and replay.
type StateClaims struct {
	State     string `json:"state"`
	Nonce     string `json:"nonce"`
	ReturnURL string `json:"returnUrl"`
	jwt.RegisteredClaims
}

// SessionManager issues and reads HS256 signed cookies.
type SessionManager struct {
	key    []byte
	secure bool
	now    func() time.Time
}

func NewSessionManager(key string, secure bool) *SessionManager {
	return &SessionManager{
		key:    []byte(key),
		secure: secure,
		now:    time.Now,
	}
}

// Issue starts a session for the user.
func (m *SessionManager) Issue(ctx *gin.Context, user User) (*SessionClaims, error) {
	csrf, err := RandomString()
	if err != nil {
		return nil, err
	}

	now := m.now()

	claims := &SessionClaims{
		Email: user.Email,
		Name:  user.Name,
		CSRF:  csrf,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}

	if err := m.setCookie(ctx, SessionCookie, claims, sessionTTL); err != nil {
		return nil, err
	}

	return claims, nil
}

// Read returns the session of the request.
func (m *SessionManager) Read(r *http.Request) (*SessionClaims, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, ErrNoSession
	}

	var claims SessionClaims
	if err := m.parse(cookie.Value, &claims); err != nil {
		return nil, ErrInvalidSession
	}

	if claims.Email == "" {
		return nil, ErrInvalidSession
	}

	return &claims, nil
}

// Clear ends the session.
func (m *SessionManager) Clear(ctx *gin.Context) {
	m.clearCookie(ctx, SessionCookie)
}

// IssueState stores the state, nonce and return url of a sign in attempt.
func (m *SessionManager) IssueState(ctx *gin.Context, returnURL string) (*StateClaims, error) {
	state, err := RandomString()
	if err != nil {
		return nil, err
	}

	nonce, err := RandomString()
	if err != nil {
		return nil, err
	}

	now := m.now()

	claims := &StateClaims{
		State:     state,
		Nonce:     nonce,
		ReturnURL: returnURL,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
		},
	}

	if err := m.setCookie(ctx, StateCookie, claims, stateTTL); err != nil {
		return nil, err
	}

	return claims, nil
}

// ConsumeState reads and clears the pending sign in, checking it matches the returned state.
func (m *SessionManager) ConsumeState(ctx *gin.Context, state string) (*StateClaims, error) {
	cookie, err := ctx.Request.Cookie(StateCookie)
	if err != nil {
		return nil, ErrInvalidState
	}

	m.clearCookie(ctx, StateCookie)

	var claims StateClaims
	if err := m.parse(cookie.Value, &claims); err != nil {
		return nil, ErrInvalidState
	}

	if state == "" || claims.State != state {
		return nil, ErrInvalidState
	}

	return &claims, nil
}

func (m *SessionManager) setCookie(ctx *gin.Context, name string, claims jwt.Claims, ttl time.Duration) error {
	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return err
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(name, value, int(ttl.Seconds()), "/", "", m.secure, true)

	return nil
}

func (m *SessionManager) clearCookie(ctx *gin.Context, name string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(name, "", -1, "/", "", m.secure, true)
}

func (m *SessionManager) parse(value string, claims jwt.Claims) error {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(value, claims, func(*jwt.Token) (interface{}, error) {
		return m.key, nil
	})
	if err != nil {
		return err
	}

	if !token.Valid {
		return errors.New("token is not valid")
	}

	return nil
}

// RandomString returns 32 random bytes, base64url encoded.
func RandomString() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
