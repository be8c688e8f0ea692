// Package session keeps analysis state between uploads and queries. State
// is in-memory only: a restart clears every session, and nothing written
// here survives the process.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/rpp-analyzer/internal/ingest"
)

// ErrIncomplete means an operation needs both reports uploaded first.
var ErrIncomplete = errors.New("session is missing an upload")

// Role identifies which report an upload fills.
type Role string

const (
	RoleRPP     Role = "rpp"
	RoleProduct Role = "product"
)

// ParseRole validates a client-supplied role string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleRPP:
		return RoleRPP, true
	case RoleProduct:
		return RoleProduct, true
	}
	return "", false
}

// Upload is one normalized report attached to a session.
type Upload struct {
	Filename   string
	Encoding   string
	Warnings   []string
	FromCache  bool
	Table      *ingest.Table
	ReceivedAt time.Time
}

// Session is one analysis workspace: up to two uploads, their joined view,
// and the shop name read off the RPP filename. All access goes through the
// methods; the lock serializes the handlers sharing it.
type Session struct {
	id        string
	createdAt time.Time

	mu      sync.RWMutex
	rpp     *Upload
	product *Upload
	joined  *ingest.Table
	shop    string
	shopOK  bool
}

func (s *Session) ID() string { return s.id }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

// SetUpload attaches or replaces a report. Replacing either side drops the
// joined view until Derive runs again.
func (s *Session) SetUpload(role Role, up *Upload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch role {
	case RoleRPP:
		s.rpp = up
	case RoleProduct:
		s.product = up
	}
	s.joined = nil
}

// Upload returns the report attached for the role, if any.
func (s *Session) Upload(role Role) (*Upload, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch role {
	case RoleRPP:
		return s.rpp, s.rpp != nil
	case RoleProduct:
		return s.product, s.product != nil
	}
	return nil, false
}

// Derive joins the product report onto the RPP report and stores the
// result. It holds the write lock across the join, so the upload tables it
// rewrites key cells in are never read mid-coercion.
func (s *Session) Derive(key, leftSuffix, rightSuffix string) (*ingest.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rpp == nil || s.product == nil {
		return nil, ErrIncomplete
	}
	joined, err := ingest.Join(s.rpp.Table, s.product.Table, key, leftSuffix, rightSuffix)
	if err != nil {
		return nil, err
	}
	s.joined = joined
	return joined, nil
}

// Joined returns the derived table. Callers treat it as read-only.
func (s *Session) Joined() (*ingest.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.joined, s.joined != nil
}

// SetShop records the shop name parsed from the RPP filename and whether
// the filename actually matched the RMS convention.
func (s *Session) SetShop(name string, found bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shop = name
	s.shopOK = found
}

func (s *Session) Shop() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shop, s.shopOK
}

// Store is the in-memory session registry.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create opens a session under a fresh random id.
func (st *Store) Create() *Session {
	s := &Session{
		id:        uuid.New().String(),
		createdAt: time.Now(),
	}
	st.mu.Lock()
	st.sessions[s.id] = s
	st.mu.Unlock()
	return s
}

// Get looks a session up by id.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete drops a session and reports whether it existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// Count reports how many sessions are live.
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
