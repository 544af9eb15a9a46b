package scraper

import (
	"context"
	"fmt"
	neturl "net/url"
	"strings"
	"time"

	"github.com/ysmood/gson"

	"github.com/bankfeed/hapoalim/config"
)

func testScraperConfig() config.ScraperConfig {
	return config.ScraperConfig{
		BaseURL:         "https://bank.example",
		WaitTimeout:     200 * time.Millisecond,
		RedirectTimeout: 200 * time.Millisecond,
		PollInterval:    10 * time.Millisecond,
	}
}

// fakePage is a scriptable Page implementation. Selector presence, URL
// history, cookies, element text and eval behavior are all injectable;
// typing, clicking and navigation are recorded for assertions.
type fakePage struct {
	selectors map[string]bool
	urls      []string // successive URL() results; the last one repeats
	urlCalls  int
	cookies   []Cookie
	texts     map[string]string
	evalFn    func(js string, args []interface{}) (gson.JSON, error)

	navigated []string
	typed     map[string]string
	clicked   []string
	closed    bool
}

func newFakePage() *fakePage {
	return &fakePage{
		selectors: map[string]bool{},
		texts:     map[string]string{},
		typed:     map[string]string{},
	}
}

func (p *fakePage) Navigate(_ context.Context, url string) error {
	p.navigated = append(p.navigated, url)
	return nil
}

func (p *fakePage) Has(_ context.Context, selector string) (bool, error) {
	return p.selectors[selector], nil
}

func (p *fakePage) Type(_ context.Context, selector, text string) error {
	p.typed[selector] = text
	return nil
}

func (p *fakePage) Click(_ context.Context, selector string) error {
	p.clicked = append(p.clicked, selector)
	return nil
}

func (p *fakePage) Text(_ context.Context, selector string) (string, error) {
	if text, ok := p.texts[selector]; ok {
		return text, nil
	}
	return "", fmt.Errorf("element %q not found", selector)
}

func (p *fakePage) Eval(_ context.Context, js string, args ...interface{}) (gson.JSON, error) {
	if p.evalFn == nil {
		return gson.New(nil), fmt.Errorf("unexpected eval: %s", js)
	}
	return p.evalFn(js, args)
}

func (p *fakePage) URL(_ context.Context) (string, error) {
	if len(p.urls) == 0 {
		return "", nil
	}
	i := p.urlCalls
	if i >= len(p.urls) {
		i = len(p.urls) - 1
	}
	p.urlCalls++
	return p.urls[i], nil
}

func (p *fakePage) Cookies(_ context.Context) ([]Cookie, error) {
	return p.cookies, nil
}

func (p *fakePage) Close() error {
	p.closed = true
	return nil
}

type fakeBrowser struct {
	page   *fakePage
	err    error
	closed bool
}

func (b *fakeBrowser) NewPage() (Page, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.page, nil
}

func (b *fakeBrowser) Close() {
	b.closed = true
}

// fakeBank answers the eval calls of a full scrape: the app-state probes
// and the in-page fetches against the accounts and transactions endpoints.
type fakeBank struct {
	restContext string
	accounts    interface{}            // accounts endpoint body; nil means a 204
	txns        map[string]interface{} // transactions body per composite account id
}

func (b *fakeBank) eval(js string, args []interface{}) (gson.JSON, error) {
	switch {
	case strings.Contains(js, "window.bnhpApp.restContext"):
		return gson.New(b.restContext), nil
	case strings.Contains(js, "!!window.bnhpApp"):
		return gson.New(true), nil
	}

	if len(args) > 0 {
		url, _ := args[0].(string)
		switch {
		case strings.Contains(url, accountsPath):
			return gson.New(b.accounts), nil
		case strings.Contains(url, "/current-account/transactions"):
			parsed, err := neturl.Parse(url)
			if err != nil {
				return gson.New(nil), err
			}
			return gson.New(b.txns[parsed.Query().Get("accountId")]), nil
		}
	}
	return gson.New(nil), fmt.Errorf("unexpected eval: %s", js)
}

func txnsBody(txns ...map[string]interface{}) map[string]interface{} {
	list := make([]interface{}, 0, len(txns))
	for _, t := range txns {
		list = append(list, t)
	}
	return map[string]interface{}{"transactions": list}
}
