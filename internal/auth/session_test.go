package auth

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ldurand/paydash/backend/internal/domain"
)

func TestSession_LoginKnownEmail(t *testing.T) {
	session, err := NewSession(DefaultRoster(), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	resp, err := session.Login(domain.Credentials{
		Email:    "admin@dashboard.com",
		Password: "anything-at-all",
	})
	if err != nil {
		t.Fatalf("expected login to succeed with any password, got %v", err)
	}
	if resp.User.Role != domain.RoleAdmin {
		t.Errorf("expected ADMIN role, got %s", resp.User.Role)
	}
	if !strings.HasPrefix(resp.Token, "mock-token-") {
		t.Errorf("expected mock token prefix, got %s", resp.Token)
	}
	if !session.IsAuthenticated() {
		t.Errorf("expected authenticated state after login")
	}
	if session.Token() != resp.Token {
		t.Errorf("expected session token to match response")
	}
}

func TestSession_LoginUnknownEmail(t *testing.T) {
	session, err := NewSession(DefaultRoster(), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = session.Login(domain.Credentials{Email: "nobody@dashboard.com", Password: "x"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if session.IsAuthenticated() {
		t.Errorf("expected unauthenticated state after failed login")
	}
}

func TestSession_LoginRequiresExactEmail(t *testing.T) {
	session, _ := NewSession(DefaultRoster(), nil)

	_, err := session.Login(domain.Credentials{Email: "ADMIN@dashboard.com", Password: "x"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected exact-match comparison to reject different casing, got %v", err)
	}
}

func TestSession_LogoutClearsState(t *testing.T) {
	session, _ := NewSession(DefaultRoster(), nil)
	if _, err := session.Login(domain.Credentials{Email: "user@dashboard.com"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := session.Logout(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.IsAuthenticated() {
		t.Errorf("expected unauthenticated state after logout")
	}
	if session.Token() != "" {
		t.Errorf("expected empty token after logout, got %q", session.Token())
	}
	if session.CurrentUser() != nil {
		t.Errorf("expected nil current user after logout")
	}
}

func TestSession_HasRole(t *testing.T) {
	session, _ := NewSession(DefaultRoster(), nil)

	if session.HasRole(domain.RoleUser) {
		t.Errorf("expected no role while unauthenticated")
	}

	if _, err := session.Login(domain.Credentials{Email: "user@dashboard.com"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !session.HasRole(domain.RoleUser) {
		t.Errorf("expected USER role")
	}
	if session.HasRole(domain.RoleAdmin) {
		t.Errorf("did not expect ADMIN role for the standard user")
	}
}

func TestSession_CurrentUserReturnsCopy(t *testing.T) {
	session, _ := NewSession(DefaultRoster(), nil)
	if _, err := session.Login(domain.Credentials{Email: "admin@dashboard.com"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	first := session.CurrentUser()
	first.Name = "mutated"
	second := session.CurrentUser()
	if second.Name == "mutated" {
		t.Fatalf("expected CurrentUser to return an independent copy")
	}
}

func TestSession_SubscribeObservesTransitions(t *testing.T) {
	session, _ := NewSession(DefaultRoster(), nil)

	var seen []*domain.User
	session.Subscribe(func(user *domain.User) {
		seen = append(seen, user)
	})

	if len(seen) != 1 || seen[0] != nil {
		t.Fatalf("expected immediate nil notification, got %v", seen)
	}

	if _, err := session.Login(domain.Credentials{Email: "admin@dashboard.com"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if len(seen) != 2 || seen[1] == nil || seen[1].Email != "admin@dashboard.com" {
		t.Fatalf("expected login notification with identity, got %v", seen)
	}

	if err := session.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if len(seen) != 3 || seen[2] != nil {
		t.Fatalf("expected nil notification after logout, got %v", seen)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	user, token, err := store.Load()
	if err != nil {
		t.Fatalf("expected missing file to load as empty session, got %v", err)
	}
	if user != nil || token != "" {
		t.Fatalf("expected empty session, got user=%v token=%q", user, token)
	}

	saved := domain.User{ID: "1", Email: "admin@dashboard.com", Name: "Administrateur", Role: domain.RoleAdmin}
	if err := store.Save(saved, "mock-token-abc"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	user, token, err = store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if user == nil || user.Email != saved.Email || token != "mock-token-abc" {
		t.Fatalf("expected persisted state back, got user=%v token=%q", user, token)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("expected file removed, got %v", statErr)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("expected clearing an absent file to be a no-op, got %v", err)
	}
}

func TestFileStore_UsesFixedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	saved := domain.User{ID: "2", Email: "user@dashboard.com", Name: "Utilisateur Simple", Role: domain.RoleUser}
	if err := store.Save(saved, "mock-token-xyz"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, ok := raw["currentUser"]; !ok {
		t.Errorf("expected currentUser key in %s", data)
	}
	if _, ok := raw["token"]; !ok {
		t.Errorf("expected token key in %s", data)
	}
}

func TestSession_RestoresFromStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	first, err := NewSession(DefaultRoster(), store)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	resp, err := first.Login(domain.Credentials{Email: "admin@dashboard.com"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	second, err := NewSession(DefaultRoster(), store)
	if err != nil {
		t.Fatalf("expected restored session, got %v", err)
	}
	if !second.IsAuthenticated() {
		t.Fatalf("expected restored session to be authenticated")
	}
	if second.Token() != resp.Token {
		t.Errorf("expected restored token %q, got %q", resp.Token, second.Token())
	}
	user := second.CurrentUser()
	if user == nil || user.Email != "admin@dashboard.com" {
		t.Errorf("expected restored identity, got %v", user)
	}
}
