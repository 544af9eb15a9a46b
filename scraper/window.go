package scraper

import (
	"fmt"
	"time"
)

// dateFormat is the YYYYMMDD layout the transactions endpoint expects.
const dateFormat = "20060102"

// queryWindow computes the retrieval window for the transactions endpoint.
// The window always ends today. It starts one year minus one day ago
// unless a later explicit start is supplied; an explicit start before
// that floor is clamped to the floor.
func queryWindow(now time.Time, explicitStart time.Time) (start, end string) {
	floor := now.AddDate(-1, 0, 1)
	from := floor
	if !explicitStart.IsZero() && explicitStart.After(floor) {
		from = explicitStart
	}
	return from.Format(dateFormat), now.Format(dateFormat)
}

// transactionsURL builds the per-account transactions query URL.
func transactionsURL(apiSiteURL, accountKey, start, end string) string {
	return fmt.Sprintf(
		"%s/current-account/transactions?accountId=%s&numItemsPerPage=150&retrievalEndDate=%s&retrievalStartDate=%s&sortCode=1",
		apiSiteURL, accountKey, end, start,
	)
}
