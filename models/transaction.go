package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the settlement state of a canonical transaction.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
)

// TransactionType is the kind of a canonical transaction. Current-account
// activity is always TypeNormal.
type TransactionType string

const TypeNormal TransactionType = "normal"

// CurrencyILS is the only currency the current-account endpoint reports.
const CurrencyILS = "ILS"

// BeneficiaryDetails is the optional free-text block attached to transfer
// transactions, used to build the memo.
type BeneficiaryDetails struct {
	PartyHeadline   string `json:"partyHeadline,omitempty"`
	PartyName       string `json:"partyName,omitempty"`
	MessageHeadline string `json:"messageHeadline,omitempty"`
	MessageDetail   string `json:"messageDetail,omitempty"`
}

// RawTransaction is a transaction record exactly as the transactions
// endpoint returns it. Optional numeric fields are pointers so that
// absence is distinguishable from zero.
type RawTransaction struct {
	SerialNumber           *int                `json:"serialNumber,omitempty"`
	ActivityDescription    string              `json:"activityDescription,omitempty"`
	EventAmount            decimal.Decimal     `json:"eventAmount"`
	ValueDate              string              `json:"valueDate,omitempty"`
	EventDate              string              `json:"eventDate,omitempty"`
	ReferenceNumber        *int64              `json:"referenceNumber,omitempty"`
	EventActivityTypeCode  int                 `json:"eventActivityTypeCode"`
	BeneficiaryDetailsData *BeneficiaryDetails `json:"beneficiaryDetailsData,omitempty"`
}

// RawTransactionsResult is the body of the transactions endpoint response.
type RawTransactionsResult struct {
	Transactions []RawTransaction `json:"transactions"`
}

// Transaction is the canonical, currency-aware transaction shape returned
// to callers. Amounts are signed: outbound activity is negative.
type Transaction struct {
	Type             TransactionType   `json:"type"`
	Identifier       *int64            `json:"identifier,omitempty"`
	Date             time.Time         `json:"date"`
	ProcessedDate    time.Time         `json:"processedDate"`
	OriginalAmount   decimal.Decimal   `json:"originalAmount"`
	OriginalCurrency string            `json:"originalCurrency"`
	ChargedAmount    decimal.Decimal   `json:"chargedAmount"`
	Description      string            `json:"description"`
	Status           TransactionStatus `json:"status"`
	Memo             string            `json:"memo"`
}

// TransactionsAccount groups the normalized transactions of one account.
// It is constructed once per scrape and never mutated afterwards.
type TransactionsAccount struct {
	AccountNumber string        `json:"accountNumber"`
	Txns          []Transaction `json:"txns"`
}
