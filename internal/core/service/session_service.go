package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stoqkeep/inventory-console/internal/api/metrics"
	"github.com/stoqkeep/inventory-console/internal/core/domain"
	"github.com/stoqkeep/inventory-console/internal/core/ports"
)

const logoutNotifyTimeout = 5 * time.Second

// sessionService is the single source of truth for authentication state.
//
// All mutations serialize on mu, and the persisted token slot is written in
// the same critical section as the in-memory status, so the two can never
// disagree. Two login/register calls racing at the transport layer are not
// queued or cancelled: whichever completes last determines the final state
// (last-write-wins on completion order).
type sessionService struct {
	identity ports.IdentityClient
	tokens   ports.TokenStore
	log      zerolog.Logger

	mu    sync.Mutex
	state domain.Session

	resolveOnce sync.Once
}

// NewSessionService builds the session store and performs the boot-time read
// of the durable token slot: a persisted token yields an initial "loading"
// status, otherwise the session starts "anonymous" and no network call is
// ever made for it. Callers with a loading session must invoke Resolve once.
func NewSessionService(identity ports.IdentityClient, tokens ports.TokenStore, log zerolog.Logger) ports.SessionService {
	s := &sessionService{
		identity: identity,
		tokens:   tokens,
		log:      log,
	}

	token, err := tokens.Load()
	if err != nil {
		log.Warn().Err(err).Msg("token store unreadable, starting anonymous")
		token = ""
	}

	if token != "" {
		s.state = domain.Session{Status: domain.StatusLoading, Token: token}
	} else {
		s.state = domain.Session{Status: domain.StatusAnonymous}
	}
	return s
}

// Snapshot returns a copy of the current session state.
func (s *sessionService) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Resolve exchanges the persisted token for a live user. Runs at most once per
// process lifetime; any failure lands the session in "anonymous" with the
// stale token removed, and is never surfaced as a user-facing error.
func (s *sessionService) Resolve(ctx context.Context) {
	s.resolveOnce.Do(func() {
		s.mu.Lock()
		if s.state.Status != domain.StatusLoading {
			s.mu.Unlock()
			return
		}
		token := s.state.Token
		s.mu.Unlock()

		user, err := s.identity.CurrentUser(ctx, token)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state.Status != domain.StatusLoading {
			// A concurrent login/register completed first; its outcome wins.
			return
		}
		if err != nil {
			metrics.AuthAttemptsTotal.WithLabelValues("resolve", "failure").Inc()
			s.log.Info().Err(err).Msg("persisted token rejected, starting anonymous")
			s.shift(domain.Session{Status: domain.StatusAnonymous})
			s.clearPersistedToken()
			return
		}

		metrics.AuthAttemptsTotal.WithLabelValues("resolve", "success").Inc()
		s.log.Info().Str("username", user.Username).Msg("session resolved from persisted token")
		// The slot already holds this token; no write needed.
		s.shift(domain.Session{Status: domain.StatusAuthenticated, User: user, Token: token})
	})
}

// Login authenticates against the backend. On failure the session lands in
// "error" with a human-readable message, any stored token is cleared, and the
// error is also returned so forms can keep the operator's input.
func (s *sessionService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	s.begin()
	creds, err := s.identity.Login(ctx, email, password)
	return s.complete("login", creds, err)
}

// Register creates an account and signs in. Uniqueness and field validation
// are the backend's responsibility; its error message is passed through.
func (s *sessionService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	s.begin()
	creds, err := s.identity.Register(ctx, username, email, password)
	return s.complete("register", creds, err)
}

// Logout clears the session synchronously. The backend notification is
// fire-and-forget: its failure never blocks or alters the local transition.
func (s *sessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	if s.state.Status == domain.StatusAnonymous {
		s.mu.Unlock()
		return
	}
	token := s.state.Token
	s.shift(domain.Session{Status: domain.StatusAnonymous})
	s.clearPersistedToken()
	s.mu.Unlock()

	if token == "" {
		return
	}
	go func() {
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logoutNotifyTimeout)
		defer cancel()
		if err := s.identity.Logout(notifyCtx, token); err != nil {
			s.log.Debug().Err(err).Msg("logout notification failed")
		}
	}()
}

// ClearError drops the stored error message. Status is left untouched, and
// calling it outside the "error" status is a no-op.
func (s *sessionService) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Status != domain.StatusError {
		return
	}
	s.state.LastError = ""
}

// begin moves the session into "loading" for an in-flight login/register.
func (s *sessionService) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shift(domain.Session{Status: domain.StatusLoading})
}

// complete applies the outcome of a login/register call.
func (s *sessionService) complete(op string, creds *ports.Credentials, err error) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues(op, "failure").Inc()
		s.shift(domain.Session{Status: domain.StatusError, LastError: domain.ErrorMessage(err)})
		s.clearPersistedToken()
		return nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues(op, "success").Inc()
	s.log.Info().Str("operation", op).Str("username", creds.User.Username).Msg("authenticated")
	s.shift(domain.Session{Status: domain.StatusAuthenticated, User: creds.User, Token: creds.Token})
	if perr := s.tokens.Save(creds.Token); perr != nil {
		s.log.Warn().Err(perr).Msg("failed to persist session token")
	}
	return creds.User, nil
}

// shift replaces the session state. Caller must hold mu.
func (s *sessionService) shift(next domain.Session) {
	from := s.state.Status
	if from != next.Status && !from.CanTransitionTo(next.Status) {
		s.log.Warn().
			Str("from", string(from)).
			Str("to", string(next.Status)).
			Msg("unexpected session transition")
	}
	metrics.SessionTransitionsTotal.WithLabelValues(string(from), string(next.Status)).Inc()
	s.state = next
}

// clearPersistedToken empties the durable slot. Caller must hold mu.
func (s *sessionService) clearPersistedToken() {
	if err := s.tokens.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted token")
	}
}
