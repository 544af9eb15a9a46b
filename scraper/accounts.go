package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bankfeed/hapoalim/models"
	"github.com/bankfeed/hapoalim/waiter"
)

const (
	accountsPath = "/ServerServices/general/accounts"

	// transactionsPageID is the logical page identifier the backend uses
	// for request attribution on the transactions endpoint.
	transactionsPageID = "/current-account/transactions"

	balanceSelector = ".currentBalance"
)

// ScrapeOptions tunes a single scrape invocation.
type ScrapeOptions struct {
	// StartDate narrows the transaction window. Dates before the default
	// one-year floor are clamped to the floor. Zero means the default
	// window.
	StartDate time.Time
}

// GetAccountData runs one full scrape with the default options.
func (s *Scraper) GetAccountData(ctx context.Context, creds models.Credentials) models.ScrapingResult {
	return s.GetAccountDataWithOptions(ctx, creds, ScrapeOptions{})
}

// GetAccountDataWithOptions runs one full scrape: login, redirect wait,
// account discovery, per-account transaction fetches, and the balance
// read. It always returns a ScrapingResult — every internal failure is
// caught and converted into the error-shaped result.
func (s *Scraper) GetAccountDataWithOptions(ctx context.Context, creds models.Credentials, opts ScrapeOptions) models.ScrapingResult {
	result, err := s.scrape(ctx, creds, opts)
	if err != nil {
		slog.Error("scrape failed", "error", err)
		return models.FailureResult(err)
	}
	return *result
}

func (s *Scraper) scrape(ctx context.Context, creds models.Credentials, opts ScrapeOptions) (*models.ScrapingResult, error) {
	page, err := s.browser.NewPage()
	if err != nil {
		return nil, err
	}
	// The page is closed on every exit path, success or failure.
	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			slog.Warn("failed to close page", "error", closeErr)
		}
	}()

	// 1. Authenticate: submit the form, then wait for the redirect that
	//    is the only signal the login went through.
	session := NewSession(page, s.cfg)
	if err := session.Login(ctx, creds); err != nil {
		return nil, err
	}
	if err := session.WaitForRedirect(ctx); err != nil {
		return nil, err
	}

	// 2. Resolve the API base path from client-side application state.
	restContext, err := session.RestContext(ctx)
	if err != nil {
		return nil, models.NewScraperError(models.ErrTypeGeneral, "failed to resolve rest context", err)
	}
	apiSiteURL := s.cfg.BaseURL + "/" + restContext

	// 3. Discover accounts. A null or empty response means zero accounts,
	//    not an error.
	accountsInfo, err := FetchGetWithinPage[[]models.RawAccount](ctx, page, s.cfg.BaseURL+accountsPath)
	if err != nil {
		return nil, models.NewScraperError(models.ErrTypeGeneral, "account discovery failed", err)
	}
	var rawAccounts []models.RawAccount
	if accountsInfo != nil {
		rawAccounts = *accountsInfo
	}
	slog.Info("accounts discovered", "count", len(rawAccounts))

	start, end := queryWindow(time.Now(), opts.StartDate)

	// 4. Fetch transactions per account, strictly sequential in discovery
	//    order: all calls share one page context and concurrent in-page
	//    evaluation against the same page state is unsafe.
	accounts := make([]models.TransactionsAccount, 0, len(rawAccounts))
	for _, raw := range rawAccounts {
		key := raw.Key()
		url := transactionsURL(apiSiteURL, key, start, end)

		txnsResult, err := FetchTransactionsWithinPage(ctx, page, url, transactionsPageID)
		if err != nil {
			return nil, models.NewScraperError(models.ErrTypeGeneral,
				fmt.Sprintf("transactions fetch failed for account %s", key), err)
		}

		// A null result for one account must not abort the whole scrape.
		txns := []models.Transaction{}
		if txnsResult != nil {
			txns = ConvertTransactions(txnsResult.Transactions)
		}
		slog.Debug("account transactions fetched", "account", key, "count", len(txns))

		accounts = append(accounts, models.TransactionsAccount{
			AccountNumber: key,
			Txns:          txns,
		})
	}

	// 5. Best-effort balance read: absence degrades to an empty string
	//    rather than failing the scrape.
	balance := s.readBalance(ctx, page)

	return &models.ScrapingResult{
		Success:        true,
		CurrentBalance: balance,
		Accounts:       accounts,
	}, nil
}

func (s *Scraper) readBalance(ctx context.Context, page Page) string {
	err := waiter.WaitUntil(ctx, func(ctx context.Context) (bool, error) {
		return page.Has(ctx, balanceSelector)
	}, "waiting for balance element",
		waiter.WithTimeout(s.cfg.WaitTimeout),
		waiter.WithInterval(s.cfg.PollInterval),
	)
	if err != nil {
		slog.Warn("balance element not found, continuing without balance", "error", err)
		return ""
	}

	text, err := page.Text(ctx, balanceSelector)
	if err != nil {
		slog.Warn("balance read failed, continuing without balance", "error", err)
		return ""
	}
	return text
}
