// Package session keeps per-browser console state in a signed, encrypted cookie.
package session

import (
	"crypto/sha256"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/hkdf"

	"productconsole/logger"
	"productconsole/notify"
)

const (
	cookieName     = "productconsole_session"
	noticeFlashKey = "notices"
	draftKeyPrefix = "draft:"
	maxAgeSeconds  = 60 * 60 * 12
)

func init() {
	gob.Register(notify.Notice{})
}

// Manager reads and writes the console session.
type Manager struct {
	store sessions.Store
}

// NewManager builds a cookie-backed Manager. Signing and encryption keys are derived from secret.
func NewManager(secret string, secure bool) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}
	hashKey, err := deriveKey(secret, "session-hash", 64)
	if err != nil {
		return nil, err
	}
	blockKey, err := deriveKey(secret, "session-block", 32)
	if err != nil {
		return nil, err
	}

	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAgeSeconds,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}, nil
}

// NewManagerWithStore wraps an existing store.
func NewManagerWithStore(store sessions.Store) *Manager {
	return &Manager{store: store}
}

func deriveKey(secret, info string, size int) ([]byte, error) {
	key := make([]byte, size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", info, err)
	}
	return key, nil
}

// get returns the request's session. A cookie that fails to decode yields a fresh session.
func (m *Manager) get(r *http.Request) *sessions.Session {
	sess, err := m.store.Get(r, cookieName)
	if err != nil {
		logger.Debug("Discarding unreadable session cookie: %v", err)
	}
	return sess
}

// AddNotice queues n for the next page the browser renders.
func (m *Manager) AddNotice(w http.ResponseWriter, r *http.Request, n notify.Notice) error {
	sess := m.get(r)
	sess.AddFlash(n, noticeFlashKey)
	return sess.Save(r, w)
}

// ReplaceNotices drops every queued notice and queues notices instead.
func (m *Manager) ReplaceNotices(w http.ResponseWriter, r *http.Request, notices ...notify.Notice) error {
	sess := m.get(r)
	sess.Flashes(noticeFlashKey)
	for _, n := range notices {
		sess.AddFlash(n, noticeFlashKey)
	}
	return sess.Save(r, w)
}

// TakeNotices returns and clears the queued notices.
func (m *Manager) TakeNotices(w http.ResponseWriter, r *http.Request) []notify.Notice {
	sess := m.get(r)
	flashes := sess.Flashes(noticeFlashKey)
	if len(flashes) == 0 {
		return nil
	}

	var q notify.Queue
	for _, flash := range flashes {
		if n, ok := flash.(notify.Notice); ok {
			q.Push(n)
		}
	}
	// A loading indicator that outlived its request has nothing left to wait for.
	q.Dismiss()

	if err := sess.Save(r, w); err != nil {
		logger.Warn("Failed to save session after reading notices: %v", err)
	}
	return q.Notices()
}

// DraftID returns the draft bound to slot ("new" or a product id), or "".
func (m *Manager) DraftID(r *http.Request, slot string) string {
	id, _ := m.get(r).Values[draftKeyPrefix+slot].(string)
	return id
}

// SetDraftID binds draftID to slot.
func (m *Manager) SetDraftID(w http.ResponseWriter, r *http.Request, slot, draftID string) error {
	sess := m.get(r)
	sess.Values[draftKeyPrefix+slot] = draftID
	return sess.Save(r, w)
}

// ClearDraftID unbinds slot.
func (m *Manager) ClearDraftID(w http.ResponseWriter, r *http.Request, slot string) error {
	sess := m.get(r)
	delete(sess.Values, draftKeyPrefix+slot)
	return sess.Save(r, w)
}
