// Package session models the interactive session as an explicit state
// machine. A session is always on exactly one screen (login,
// create_account or main) and the machine maintains the invariant that
// being authenticated, having a username and being on the main screen
// are all the same condition. Operations that require the main screen
// must call RequireAuthenticated first; the check is a hard
// precondition, not a soft hint for rendering.
package session

import "errors"

// Screen identifies which screen of the interactive surface the
// session is currently on.
type Screen string

const (
	ScreenLogin         Screen = "login"
	ScreenCreateAccount Screen = "create_account"
	ScreenMain          Screen = "main"
)

// Sentinel errors for invalid transitions and guard failures.
var (
	// ErrNotAuthenticated is returned when an operation requiring the
	// main screen is attempted by an unauthenticated session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInvalidTransition is returned when an event is not legal from
	// the session's current screen, e.g. logging in from the main screen.
	ErrInvalidTransition = errors.New("invalid session transition")
)

// Session tracks one user's interactive state. The zero value is not
// valid; use New, which starts on the login screen.
type Session struct {
	screen        Screen
	authenticated bool
	username      string
}

// New returns a session in the initial state: login screen, not
// authenticated, no username.
func New() *Session {
	return &Session{screen: ScreenLogin}
}

func (s *Session) Screen() Screen      { return s.screen }
func (s *Session) Authenticated() bool { return s.authenticated }
func (s *Session) Username() string    { return s.username }

// RequireAuthenticated is the guard for operations that need the main
// screen (submission, history display). It never mutates state.
func (s *Session) RequireAuthenticated() error {
	if !s.authenticated {
		return ErrNotAuthenticated
	}
	return nil
}

// GoToCreateAccount handles the "sign up" event on the login screen.
func (s *Session) GoToCreateAccount() error {
	if s.screen != ScreenLogin {
		return ErrInvalidTransition
	}
	s.screen = ScreenCreateAccount
	return nil
}

// GoToLogin handles the "sign in" event on the create-account screen.
func (s *Session) GoToLogin() error {
	if s.screen != ScreenCreateAccount {
		return ErrInvalidTransition
	}
	s.screen = ScreenLogin
	return nil
}

// LoginSucceeded transitions login -> main and records the username.
// The username must be non-empty or the invariant
// authenticated <=> username set <=> screen main would break.
func (s *Session) LoginSucceeded(username string) error {
	if s.screen != ScreenLogin {
		return ErrInvalidTransition
	}
	if username == "" {
		return ErrInvalidTransition
	}
	s.screen = ScreenMain
	s.authenticated = true
	s.username = username
	return nil
}

// LoginFailed records an invalid credential submission. The session
// stays on the login screen; nothing else changes.
func (s *Session) LoginFailed() error {
	if s.screen != ScreenLogin {
		return ErrInvalidTransition
	}
	return nil
}

// AccountCreated handles a valid new-account submission: the account is
// already persisted by the caller and the session returns to the login
// screen so the user can sign in.
func (s *Session) AccountCreated() error {
	if s.screen != ScreenCreateAccount {
		return ErrInvalidTransition
	}
	s.screen = ScreenLogin
	return nil
}

// AccountRejected records a duplicate or invalid account submission.
// The session stays on the create-account screen.
func (s *Session) AccountRejected() error {
	if s.screen != ScreenCreateAccount {
		return ErrInvalidTransition
	}
	return nil
}

// Logout resets the session to its initial state from the main screen.
func (s *Session) Logout() error {
	if s.screen != ScreenMain {
		return ErrInvalidTransition
	}
	s.screen = ScreenLogin
	s.authenticated = false
	s.username = ""
	return nil
}
