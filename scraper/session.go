package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bankfeed/hapoalim/config"
	"github.com/bankfeed/hapoalim/models"
	"github.com/bankfeed/hapoalim/waiter"
)

const (
	loginPath = "/ng-portals/auth/he/?reqName=getLogonPage"

	userCodeSelector    = "#userCode"
	passwordSelector    = "#password"
	loginButtonSelector = ".login-btn"
)

// redirectIgnoreList holds URLs that do not count as the post-login
// redirect even though the page URL changed to them.
var redirectIgnoreList = map[string]struct{}{
	"about:blank": {},
}

// sessionState tracks where a Session is in the login flow.
type sessionState int

const (
	stateUnauthenticated sessionState = iota
	stateSubmitting
	stateAwaitingRedirect
	stateAuthenticated
	stateFailed
)

// Session drives login submission and redirect detection on one page.
// The site exposes no explicit "login succeeded" response, so the URL
// changing away from the login page is the sole authentication signal.
type Session struct {
	page  Page
	cfg   config.ScraperConfig
	state sessionState
}

// NewSession wraps a freshly opened page. The page must not have been
// navigated yet.
func NewSession(page Page, cfg config.ScraperConfig) *Session {
	return &Session{page: page, cfg: cfg, state: stateUnauthenticated}
}

// Authenticated reports whether the post-login redirect was observed.
func (s *Session) Authenticated() bool {
	return s.state == stateAuthenticated
}

// Login navigates to the login page, fills the credentials and submits the
// form. Nil credential fields are typed as empty strings. Any failure in
// this stage is reported as a GeneralError.
func (s *Session) Login(ctx context.Context, creds models.Credentials) error {
	s.state = stateSubmitting
	if err := s.submitLogin(ctx, creds); err != nil {
		s.state = stateFailed
		return models.NewScraperError(models.ErrTypeGeneral, "login failed", err)
	}
	s.state = stateAwaitingRedirect
	return nil
}

func (s *Session) submitLogin(ctx context.Context, creds models.Credentials) error {
	if err := s.page.Navigate(ctx, s.cfg.BaseURL+loginPath); err != nil {
		return err
	}

	err := waiter.WaitUntil(ctx, func(ctx context.Context) (bool, error) {
		return s.page.Has(ctx, userCodeSelector)
	}, "waiting for login form",
		waiter.WithTimeout(s.cfg.WaitTimeout),
		waiter.WithInterval(s.cfg.PollInterval),
	)
	if err != nil {
		return err
	}

	if err := s.page.Type(ctx, userCodeSelector, stringOrEmpty(creds.UserCode)); err != nil {
		return err
	}
	if err := s.page.Type(ctx, passwordSelector, stringOrEmpty(creds.Password)); err != nil {
		return err
	}
	return s.page.Click(ctx, loginButtonSelector)
}

// WaitForRedirect polls until the page URL differs from the one recorded
// at call time and is not on the ignore list. A timeout here means the
// login never completed and is classified as a NetworkError.
func (s *Session) WaitForRedirect(ctx context.Context) error {
	startURL, err := s.page.URL(ctx)
	if err != nil {
		s.state = stateFailed
		return models.NewScraperError(models.ErrTypeNetwork, "failed to read page url", err)
	}

	err = waiter.WaitUntil(ctx, func(ctx context.Context) (bool, error) {
		current, urlErr := s.page.URL(ctx)
		if urlErr != nil {
			return false, urlErr
		}
		if current == startURL {
			return false, nil
		}
		_, ignored := redirectIgnoreList[current]
		return !ignored, nil
	}, "waiting for redirect after login",
		waiter.WithTimeout(s.cfg.RedirectTimeout),
		waiter.WithInterval(s.cfg.PollInterval),
	)
	if err != nil {
		s.state = stateFailed
		return models.NewScraperError(models.ErrTypeNetwork, "no redirect detected after login", err)
	}

	s.state = stateAuthenticated
	slog.Debug("post-login redirect detected")
	return nil
}

// RestContext waits for the client-side application global to appear and
// reads the base path for authenticated API calls from it. The value is
// embedded with a leading separator that must be discarded.
func (s *Session) RestContext(ctx context.Context) (string, error) {
	err := waiter.WaitUntil(ctx, func(ctx context.Context) (bool, error) {
		v, evalErr := s.page.Eval(ctx, `() => !!window.bnhpApp`)
		if evalErr != nil {
			return false, evalErr
		}
		return v.Bool(), nil
	}, "waiting for app data load",
		waiter.WithTimeout(s.cfg.WaitTimeout),
		waiter.WithInterval(s.cfg.PollInterval),
	)
	if err != nil {
		return "", err
	}

	v, err := s.page.Eval(ctx, `() => window.bnhpApp.restContext`)
	if err != nil {
		return "", err
	}
	restContext := v.Str()
	if restContext == "" {
		return "", fmt.Errorf("rest context is empty")
	}
	return restContext[1:], nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
