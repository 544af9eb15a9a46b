package models

import "fmt"

// Credentials are passed through to the bank's login form as-is.
// Nil fields are typed as empty strings.
type Credentials struct {
	UserCode *string `json:"userCode"`
	Password *string `json:"password"`
}

// RawAccount is one entry of the bank's account-listing endpoint.
type RawAccount struct {
	BankNumber    string `json:"bankNumber"`
	BranchNumber  string `json:"branchNumber"`
	AccountNumber string `json:"accountNumber"`
}

// Key returns the composite account identifier used as the external
// account key. It is unique per account within one scrape.
func (a RawAccount) Key() string {
	return fmt.Sprintf("%s-%s-%s", a.BankNumber, a.BranchNumber, a.AccountNumber)
}
