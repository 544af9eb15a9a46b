package scraper

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ysmood/gson"

	"github.com/bankfeed/hapoalim/models"
	"github.com/bankfeed/hapoalim/waiter"
)

func strPtr(s string) *string { return &s }

func TestSessionLogin_SubmitsCredentials(t *testing.T) {
	page := newFakePage()
	page.selectors[userCodeSelector] = true

	session := NewSession(page, testScraperConfig())
	err := session.Login(context.Background(), models.Credentials{
		UserCode: strPtr("user-1"),
		Password: strPtr("secret"),
	})

	require.NoError(t, err)
	require.Len(t, page.navigated, 1)
	assert.Equal(t, "https://bank.example/ng-portals/auth/he/?reqName=getLogonPage", page.navigated[0])
	assert.Equal(t, "user-1", page.typed[userCodeSelector])
	assert.Equal(t, "secret", page.typed[passwordSelector])
	assert.Equal(t, []string{loginButtonSelector}, page.clicked)
	assert.False(t, session.Authenticated())
}

func TestSessionLogin_NilCredentialsTypeEmpty(t *testing.T) {
	page := newFakePage()
	page.selectors[userCodeSelector] = true

	session := NewSession(page, testScraperConfig())
	err := session.Login(context.Background(), models.Credentials{})

	require.NoError(t, err)
	assert.Equal(t, "", page.typed[userCodeSelector])
	assert.Equal(t, "", page.typed[passwordSelector])
}

func TestSessionLogin_MissingFormIsGeneralError(t *testing.T) {
	page := newFakePage() // login form never appears

	session := NewSession(page, testScraperConfig())
	err := session.Login(context.Background(), models.Credentials{})

	require.Error(t, err)
	var scraperErr *models.ScraperError
	require.ErrorAs(t, err, &scraperErr)
	assert.Equal(t, models.ErrTypeGeneral, scraperErr.Type)
	var timeoutErr *waiter.TimeoutError
	assert.ErrorAs(t, err, &timeoutErr)
	assert.Empty(t, page.clicked)
}

func TestWaitForRedirect_DetectsURLChange(t *testing.T) {
	page := newFakePage()
	page.urls = []string{
		"https://bank.example/ng-portals/auth/he/",
		"https://bank.example/portal/home",
	}

	session := NewSession(page, testScraperConfig())
	err := session.WaitForRedirect(context.Background())

	require.NoError(t, err)
	assert.True(t, session.Authenticated())
}

func TestWaitForRedirect_TimeoutIsNetworkError(t *testing.T) {
	page := newFakePage()
	page.urls = []string{"https://bank.example/ng-portals/auth/he/"} // never changes

	session := NewSession(page, testScraperConfig())
	err := session.WaitForRedirect(context.Background())

	require.Error(t, err)
	var scraperErr *models.ScraperError
	require.ErrorAs(t, err, &scraperErr)
	assert.Equal(t, models.ErrTypeNetwork, scraperErr.Type)
	assert.False(t, session.Authenticated())
}

func TestWaitForRedirect_IgnoredURLDoesNotCount(t *testing.T) {
	page := newFakePage()
	page.urls = []string{
		"https://bank.example/ng-portals/auth/he/",
		"about:blank", // repeats; never a real redirect
	}

	session := NewSession(page, testScraperConfig())
	err := session.WaitForRedirect(context.Background())

	require.Error(t, err)
	var scraperErr *models.ScraperError
	require.ErrorAs(t, err, &scraperErr)
	assert.Equal(t, models.ErrTypeNetwork, scraperErr.Type)
}

func TestRestContext_StripsLeadingSeparator(t *testing.T) {
	page := newFakePage()
	appReady := false
	page.evalFn = func(js string, args []interface{}) (gson.JSON, error) {
		if strings.Contains(js, "window.bnhpApp.restContext") {
			return gson.New("/api10"), nil
		}
		// The app global appears on the second poll.
		ready := appReady
		appReady = true
		return gson.New(ready), nil
	}

	session := NewSession(page, testScraperConfig())
	restContext, err := session.RestContext(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "api10", restContext)
}

func TestRestContext_AppNeverLoads(t *testing.T) {
	page := newFakePage()
	page.evalFn = func(js string, args []interface{}) (gson.JSON, error) {
		return gson.New(false), nil
	}

	session := NewSession(page, testScraperConfig())
	_, err := session.RestContext(context.Background())

	var timeoutErr *waiter.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "waiting for app data load", timeoutErr.Description)
}
