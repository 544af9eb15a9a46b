// Package scraper drives a headless browser through the Bank Hapoalim
// login flow and pulls account and transaction data through authenticated
// in-page API calls.
package scraper

import (
	"github.com/bankfeed/hapoalim/config"
)

// Scraper owns the browser handle for its lifetime. It is an explicit
// context object rather than package-level state, so independent Scrapers
// (and tests with fake browsers) can coexist in one process.
//
// A Scraper is safe for concurrent use: each GetAccountData call runs on
// its own freshly opened page.
type Scraper struct {
	browser Browser
	cfg     config.ScraperConfig
}

// New launches a headless browser and returns a Scraper bound to it.
func New(cfg *config.Config) (*Scraper, error) {
	browser, err := launchBrowser(cfg.Browser, cfg.Scraper.BlockedResourceTypes)
	if err != nil {
		return nil, err
	}
	return &Scraper{browser: browser, cfg: cfg.Scraper}, nil
}

// Close kills the browser process. Scrape calls after Close are invalid.
func (s *Scraper) Close() {
	s.browser.Close()
}
