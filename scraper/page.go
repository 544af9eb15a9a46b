package scraper

import (
	"context"

	"github.com/ysmood/gson"
)

// Cookie is a name/value pair from the page's cookie jar.
type Cookie struct {
	Name  string
	Value string
}

// Page is the capability the scraper needs from one isolated browser tab:
// navigation, DOM probes, typing/clicking, and in-page script evaluation.
// The in-page Eval capability is what makes authenticated HTTP calls
// possible — requests issued from inside the page carry the session's
// cookies and pass the site's origin checks, which an out-of-process HTTP
// client cannot do.
//
// The production implementation wraps a rod page; tests substitute a fake.
type Page interface {
	Navigate(ctx context.Context, url string) error
	Has(ctx context.Context, selector string) (bool, error)
	Type(ctx context.Context, selector, text string) error
	Click(ctx context.Context, selector string) error
	Text(ctx context.Context, selector string) (string, error)
	Eval(ctx context.Context, js string, args ...interface{}) (gson.JSON, error)
	URL(ctx context.Context) (string, error)
	Cookies(ctx context.Context) ([]Cookie, error)
	Close() error
}

// Browser provisions isolated pages. Pages are the unit of isolation:
// concurrent scrapes each get their own page and share nothing else.
type Browser interface {
	NewPage() (Page, error)
	Close()
}
