package domain

import "time"

// AccountType classifies an account. Liability types are subtracted when
// computing capital.
type AccountType string

const (
	AccountTypeCash        AccountType = "CASH"
	AccountTypeCurrent     AccountType = "CURRENT"
	AccountTypeCreditCard  AccountType = "CREDIT_CARD"
	AccountTypeSavings     AccountType = "SAVINGS"
	AccountTypeCredit      AccountType = "CREDIT"
	AccountTypeDebit       AccountType = "DEBIT"
	AccountTypeInvestments AccountType = "INVESTMENTS"
)

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeCash, AccountTypeCurrent, AccountTypeCreditCard, AccountTypeSavings,
		AccountTypeCredit, AccountTypeDebit, AccountTypeInvestments:
		return true
	}
	return false
}

// IsLiability reports whether balances of this type count against capital.
func (t AccountType) IsLiability() bool {
	return t == AccountTypeCreditCard || t == AccountTypeCredit
}

// RequiresBank reports whether accounts of this type must reference a bank.
func (t AccountType) RequiresBank() bool {
	return t != AccountTypeCash
}

// Currency is the ISO code an account is denominated in.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

// IsValid reports whether c is a supported currency.
func (c Currency) IsValid() bool {
	return c == CurrencyEUR || c == CurrencyUSD
}

// Account is a place where money is held. BalanceCents is the running
// balance and is only ever changed through transaction create, update or
// delete once the account exists.
type Account struct {
	AccountID    string      `json:"accountID"`
	Name         string      `json:"name"`
	AccountType  AccountType `json:"accountType"`
	BankID       *string     `json:"bankID,omitempty"` // nil only for cash-like accounts
	Currency     Currency    `json:"currency"`
	BalanceCents int64       `json:"balanceCents"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// CapitalContribution is the signed amount this account adds to capital.
func (a Account) CapitalContribution() int64 {
	if a.AccountType.IsLiability() {
		return -a.BalanceCents
	}
	return a.BalanceCents
}
