package scraper

import (
	"strings"
	"time"

	"github.com/bankfeed/hapoalim/models"
)

// outboundActivityTypeCode marks a debit in the raw transaction feed.
const outboundActivityTypeCode = 2

// ConvertTransactions maps raw scraped transactions onto the canonical
// transaction shape, preserving order. It is a pure function and never
// fails: unparsable input degrades field by field.
func ConvertTransactions(raw []models.RawTransaction) []models.Transaction {
	txns := make([]models.Transaction, 0, len(raw))
	for _, t := range raw {
		amount := t.EventAmount
		if t.EventActivityTypeCode == outboundActivityTypeCode {
			amount = amount.Neg()
		}

		txns = append(txns, models.Transaction{
			Type:             models.TypeNormal,
			Identifier:       t.ReferenceNumber,
			Date:             parseEventDate(t.EventDate),
			ProcessedDate:    parseEventDate(t.ValueDate),
			OriginalAmount:   amount,
			OriginalCurrency: models.CurrencyILS,
			ChargedAmount:    amount,
			Description:      t.ActivityDescription,
			Status:           transactionStatus(t.SerialNumber),
			Memo:             buildMemo(t.BeneficiaryDetailsData),
		})
	}
	return txns
}

// parseEventDate parses a YYYYMMDD string as a UTC instant. Missing or
// malformed input yields the zero time as a stable "invalid date"
// sentinel rather than an error.
func parseEventDate(s string) time.Time {
	t, err := time.ParseInLocation(dateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

// transactionStatus classifies a transaction: serial number zero means the
// bank has not settled it yet. An absent serial number counts as settled.
func transactionStatus(serialNumber *int) models.TransactionStatus {
	if serialNumber != nil && *serialNumber == 0 {
		return models.StatusPending
	}
	return models.StatusCompleted
}

// buildMemo joins the beneficiary free-text fields that are present, in
// fixed order, with the party name and message detail each terminated by
// a period.
func buildMemo(b *models.BeneficiaryDetails) string {
	if b == nil {
		return ""
	}
	var lines []string
	if b.PartyHeadline != "" {
		lines = append(lines, b.PartyHeadline)
	}
	if b.PartyName != "" {
		lines = append(lines, b.PartyName+".")
	}
	if b.MessageHeadline != "" {
		lines = append(lines, b.MessageHeadline)
	}
	if b.MessageDetail != "" {
		lines = append(lines, b.MessageDetail+".")
	}
	return strings.Join(lines, " ")
}
