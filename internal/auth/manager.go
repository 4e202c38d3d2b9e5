package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ticketly-gateway/internal/logger"
)

// Manager owns the current session and is the single subscription point
// for session-change observers. Components subscribe once and unsubscribe
// on teardown instead of each watching the provider themselves.
type Manager struct {
	provider IdentityAPI
	cache    TokenCache
	logger   *logger.Logger

	mu           sync.Mutex
	session      *Session
	accessToken  string
	refreshToken string
	expiresAt    time.Time

	observers  map[int]func(*Session)
	observerID int
}

func NewManager(provider IdentityAPI, cache TokenCache, log *logger.Logger) *Manager {
	if cache == nil {
		cache = NewMemoryTokenCache()
	}
	return &Manager{
		provider:  provider,
		cache:     cache,
		logger:    log,
		observers: make(map[int]func(*Session)),
	}
}

// Session returns the current session, nil when signed out.
func (m *Manager) Session() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// RefreshToken exposes the current refresh token so a CLI can persist
// the session between runs.
func (m *Manager) RefreshToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshToken
}

// Subscribe registers an observer and immediately invokes it with the
// current session. The returned function unsubscribes and is safe to call
// more than once.
func (m *Manager) Subscribe(fn func(*Session)) func() {
	m.mu.Lock()
	m.observerID++
	id := m.observerID
	m.observers[id] = fn
	current := m.session
	m.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.observers, id)
			m.mu.Unlock()
		})
	}
}

func (m *Manager) notify(session *Session) {
	m.mu.Lock()
	observers := make([]func(*Session), 0, len(m.observers))
	for _, fn := range m.observers {
		observers = append(observers, fn)
	}
	m.mu.Unlock()

	for _, fn := range observers {
		fn(session)
	}
}

func (m *Manager) applyTokens(ctx context.Context, tokens *TokenSet) (*Session, error) {
	session, err := SessionFromIDToken(tokens.IDToken)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.session = session
	m.accessToken = tokens.AccessToken
	m.refreshToken = tokens.RefreshToken
	m.expiresAt = time.Now().Add(time.Duration(tokens.ExpiresIn) * time.Second)
	m.mu.Unlock()

	if err := m.cache.Set(ctx, session.UID, tokens.AccessToken, time.Duration(tokens.ExpiresIn)*time.Second); err != nil {
		m.logger.Warn("AUTH", fmt.Sprintf("Failed to cache token: %v", err))
	}

	return session, nil
}

// SignIn exchanges credentials for a session and notifies observers.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*Session, error) {
	tokens, err := m.provider.PasswordGrant(ctx, email, password)
	if err != nil {
		return nil, err
	}

	session, err := m.applyTokens(ctx, tokens)
	if err != nil {
		return nil, err
	}

	m.logger.LogAuth("SIGN_IN", session.Email)
	m.notify(session)
	return session, nil
}

// Restore resumes a previous session from a saved refresh token, as when
// a CLI run starts with credentials persisted by an earlier sign-in.
func (m *Manager) Restore(ctx context.Context, refreshToken string) (*Session, error) {
	tokens, err := m.provider.RefreshGrant(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	session, err := m.applyTokens(ctx, tokens)
	if err != nil {
		return nil, err
	}

	m.notify(session)
	return session, nil
}

// Reload refreshes the session from the provider, picking up server-side
// changes such as the email-verified flag flipping.
func (m *Manager) Reload(ctx context.Context) (*Session, error) {
	m.mu.Lock()
	refreshToken := m.refreshToken
	m.mu.Unlock()

	if refreshToken == "" {
		return nil, ErrAuthRequired
	}

	tokens, err := m.provider.RefreshGrant(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	session, err := m.applyTokens(ctx, tokens)
	if err != nil {
		return nil, err
	}

	m.notify(session)
	return session, nil
}

// SignOut revokes the provider session and clears local state. Observers
// are notified with a nil session.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	session := m.session
	refreshToken := m.refreshToken
	m.session = nil
	m.accessToken = ""
	m.refreshToken = ""
	m.expiresAt = time.Time{}
	m.mu.Unlock()

	if session != nil {
		if err := m.cache.Delete(ctx, session.UID); err != nil {
			m.logger.Warn("AUTH", fmt.Sprintf("Failed to drop cached token: %v", err))
		}
		m.logger.LogAuth("SIGN_OUT", session.Email)
	}

	m.notify(nil)

	if refreshToken == "" {
		return nil
	}
	return m.provider.Revoke(ctx, refreshToken)
}

// Token returns a valid bearer token for the current session, refreshing
// through the provider when the cached one is stale.
func (m *Manager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	session := m.session
	accessToken := m.accessToken
	expiresAt := m.expiresAt
	m.mu.Unlock()

	if session == nil {
		return "", ErrAuthRequired
	}

	if accessToken != "" && time.Now().Add(TokenExpiryBuffer).Before(expiresAt) {
		return accessToken, nil
	}

	if cached, err := m.cache.Get(ctx, session.UID); err == nil && cached.IsValid() {
		return cached.Token, nil
	}

	if _, err := m.Reload(ctx); err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}

	m.mu.Lock()
	token := m.accessToken
	m.mu.Unlock()
	return token, nil
}

// WaitForVerification polls the provider on a fixed interval until the
// account's email is verified or the context is cancelled.
func (m *Manager) WaitForVerification(ctx context.Context, interval time.Duration) error {
	if session := m.Session(); session == nil {
		return ErrAuthRequired
	} else if session.EmailVerified {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			session, err := m.Reload(ctx)
			if err != nil {
				m.logger.Warn("AUTH", fmt.Sprintf("Verification poll failed: %v", err))
				continue
			}
			if session.EmailVerified {
				m.logger.LogAuth("EMAIL_VERIFIED", session.Email)
				return nil
			}
		}
	}
}
