package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/astropost/internal/domain"
	"github.com/bnema/astropost/internal/ports"
	"github.com/sirupsen/logrus"
)

// SessionManager owns the single platform channel: it establishes it,
// persists it via the credential store and restores it on startup.
type SessionManager struct {
	platform ports.Platform
	store    ports.CredentialStore
	logger   logrus.FieldLogger

	mu      sync.RWMutex
	channel ports.Channel
}

func NewSessionManager(platform ports.Platform, store ports.CredentialStore, logger logrus.FieldLogger) *SessionManager {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &SessionManager{
		platform: platform,
		store:    store,
		logger:   logger.WithField("component", "session"),
	}
}

// Restore resumes a previously exported session. Any failure leaves the
// manager unauthenticated and is only logged.
func (m *SessionManager) Restore(ctx context.Context) {
	blob, err := m.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			m.logger.Info("no saved session, login required")
		} else {
			m.logger.WithError(err).Warn("could not read saved session")
		}
		m.setChannel(nil)
		return
	}

	channel, err := m.platform.Resume(ctx, blob)
	if err != nil {
		m.logger.WithError(err).Warn("saved session was rejected, login required")
		m.setChannel(nil)
		return
	}

	m.setChannel(channel)
	m.logger.WithField("account", channel.Account()).Info("session restored")
}

func (m *SessionManager) Login(ctx context.Context, account, secret string) domain.LoginResult {
	account = strings.TrimSpace(account)
	if account == "" || secret == "" {
		return domain.LoginResult{Reason: "username and password are required"}
	}

	channel, err := m.platform.Login(ctx, account, secret)
	if err == nil {
		err = m.persist(ctx, channel)
	}
	if err != nil {
		m.setChannel(nil)
		if deleteErr := m.store.Delete(context.WithoutCancel(ctx)); deleteErr != nil {
			err = errors.Join(err, fmt.Errorf("delete saved session: %w", deleteErr))
		}
		m.logger.WithError(err).WithField("account", account).Warn("login failed")
		return domain.LoginResult{Account: account, Reason: err.Error()}
	}

	m.setChannel(channel)
	m.logger.WithField("account", channel.Account()).Info("logged in")
	return domain.LoginResult{Success: true, Account: channel.Account()}
}

func (m *SessionManager) persist(ctx context.Context, channel ports.Channel) error {
	blob, err := channel.Export()
	if err != nil {
		return fmt.Errorf("export session: %w", err)
	}
	if err := m.store.Save(ctx, blob); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Logout always clears local state, even when the remote call fails.
func (m *SessionManager) Logout(ctx context.Context) domain.LogoutResult {
	m.mu.Lock()
	channel := m.channel
	m.channel = nil
	m.mu.Unlock()

	var errs []error
	if channel != nil {
		if err := channel.Logout(ctx); err != nil {
			errs = append(errs, fmt.Errorf("remote logout: %w", err))
		}
	}
	if err := m.store.Delete(context.WithoutCancel(ctx)); err != nil {
		errs = append(errs, fmt.Errorf("delete saved session: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		m.logger.WithError(err).Warn("logout completed with errors")
		return domain.LogoutResult{Reason: err.Error()}
	}

	m.logger.Info("logged out")
	return domain.LogoutResult{Success: true}
}

func (m *SessionManager) Status() domain.SessionStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.channel == nil {
		return domain.SessionStatus{}
	}
	return domain.SessionStatus{Authenticated: true, Account: m.channel.Account()}
}

func (m *SessionManager) Channel() (ports.Channel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.channel == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return m.channel, nil
}

func (m *SessionManager) setChannel(channel ports.Channel) {
	m.mu.Lock()
	m.channel = channel
	m.mu.Unlock()
}
