package auth

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ldurand/paydash/backend/internal/domain"
)

// ErrInvalidCredentials is returned when no roster entry matches the login
// email. It is the only explicit failure in the authentication flow.
var ErrInvalidCredentials = errors.New("invalid credentials")

// StateStore persists the session identity and token between runs. The file
// implementation keeps them under the fixed keys "currentUser" and "token".
type StateStore interface {
	Load() (*domain.User, string, error)
	Save(user domain.User, token string) error
	Clear() error
}

// Observer receives the identity after every transition; nil signals logout.
type Observer func(*domain.User)

// Session holds the current identity explicitly. It is constructed once in
// main from the persisted state and injected wherever identity is needed;
// there is no ambient global.
//
// State machine: Unauthenticated -> Authenticated -> Unauthenticated.
type Session struct {
	mu        sync.Mutex
	roster    []domain.User
	user      *domain.User
	token     string
	store     StateStore
	observers []Observer
}

// NewSession builds a session over the given roster, restoring any previously
// persisted identity from the store. A nil store disables persistence.
func NewSession(roster []domain.User, store StateStore) (*Session, error) {
	s := &Session{
		roster: roster,
		store:  store,
	}
	if store != nil {
		user, token, err := store.Load()
		if err != nil {
			return nil, fmt.Errorf("restore session: %w", err)
		}
		s.user = user
		s.token = token
	}
	return s, nil
}

// Login resolves the email against the roster and transitions to
// Authenticated. The password is accepted unconditionally; this is mock
// authentication and not production-ready. Unknown emails fail with
// ErrInvalidCredentials.
func (s *Session) Login(creds domain.Credentials) (domain.AuthResponse, error) {
	s.mu.Lock()

	var match *domain.User
	for i := range s.roster {
		if s.roster[i].Email == creds.Email {
			match = &s.roster[i]
			break
		}
	}
	if match == nil {
		s.mu.Unlock()
		return domain.AuthResponse{}, ErrInvalidCredentials
	}

	user := *match
	token := "mock-token-" + uuid.NewString()

	if s.store != nil {
		if err := s.store.Save(user, token); err != nil {
			s.mu.Unlock()
			return domain.AuthResponse{}, fmt.Errorf("persist session: %w", err)
		}
	}

	s.user = &user
	s.token = token
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	notify(observers, &user)
	return domain.AuthResponse{User: user, Token: token}, nil
}

// Logout clears the persisted state and transitions to Unauthenticated.
func (s *Session) Logout() error {
	s.mu.Lock()

	if s.store != nil {
		if err := s.store.Clear(); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("clear session state: %w", err)
		}
	}

	s.user = nil
	s.token = ""
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	notify(observers, nil)
	return nil
}

// CurrentUser returns a copy of the authenticated identity, or nil.
func (s *Session) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Token returns the opaque session token, empty when unauthenticated.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated reports whether an identity is present.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// HasRole reports whether the current identity carries the given role.
func (s *Session) HasRole(role domain.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.user.Role == role
}

// Subscribe registers an observer. It is invoked immediately with the current
// identity and again after every login or logout.
func (s *Session) Subscribe(fn Observer) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	var current *domain.User
	if s.user != nil {
		user := *s.user
		current = &user
	}
	s.mu.Unlock()

	fn(current)
}

func notify(observers []Observer, user *domain.User) {
	for _, fn := range observers {
		if user == nil {
			fn(nil)
			continue
		}
		copied := *user
		fn(&copied)
	}
}
