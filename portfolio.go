package valutatrade

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds the balance of one currency inside a portfolio.
type Wallet struct {
	Currency string          `json:"currency_code"`
	Balance  decimal.Decimal `json:"balance"`
}

// Portfolio is the set of wallets owned by one user.
type Portfolio struct {
	UserID  int                `json:"user_id"`
	Wallets map[string]*Wallet `json:"wallets"`
}

// NewPortfolio returns an empty portfolio holding one zero-balance wallet in
// the base currency.
func NewPortfolio(userID int, base string) *Portfolio {
	return &Portfolio{
		UserID:  userID,
		Wallets: map[string]*Wallet{base: {Currency: base}},
	}
}

// Wallet returns the wallet for code, if any.
func (p *Portfolio) Wallet(code string) (*Wallet, bool) {
	w, ok := p.Wallets[code]
	return w, ok
}

// Deposit credits amount to the wallet for code, creating the wallet on
// first use.
func (p *Portfolio) Deposit(code string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be a positive number")
	}
	if p.Wallets == nil {
		p.Wallets = make(map[string]*Wallet)
	}
	w, ok := p.Wallets[code]
	if !ok {
		w = &Wallet{Currency: code}
		p.Wallets[code] = w
	}
	w.Balance = w.Balance.Add(amount)
	return nil
}

// Withdraw debits amount from the wallet for code. It fails with
// InsufficientFundsError when the balance does not cover the amount, and
// when no wallet exists for code.
func (p *Portfolio) Withdraw(code string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be a positive number")
	}
	w, ok := p.Wallets[code]
	if !ok {
		return fmt.Errorf("no wallet for %s in portfolio", code)
	}
	if amount.GreaterThan(w.Balance) {
		return &InsufficientFundsError{
			Currency:  code,
			Available: w.Balance.String(),
			Required:  amount.String(),
		}
	}
	w.Balance = w.Balance.Sub(amount)
	return nil
}

// LoadPortfolio returns the portfolio of the given user.
func LoadPortfolio(s *Store, userID int) (*Portfolio, error) {
	p, ok, err := FindRecord(s, portfoliosFilename, func(p *Portfolio) bool { return p != nil && p.UserID == userID })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("portfolio of user %d: %w", userID, ErrNotFound)
	}
	return p, nil
}

// SavePortfolio persists p over its previous version.
func SavePortfolio(s *Store, p *Portfolio) error {
	return UpdateRecord(s, portfoliosFilename, func(q *Portfolio) bool { return q != nil && q.UserID == p.UserID }, p)
}

// RateResolver is the rate-resolution contract the bookkeeping layer
// consumes: everything it needs to value holdings in the base currency.
type RateResolver interface {
	Resolve(from, to string) (float64, time.Time, error)
	Base() string
}

// Trade describes one executed buy or sell for display purposes.
type Trade struct {
	Currency   string
	Amount     decimal.Decimal
	UnitRate   float64 // base units per 1 unit of Currency
	Value      decimal.Decimal
	OldBalance decimal.Decimal
	NewBalance decimal.Decimal
	Base       string
}

// Buy credits amount of code to the user's portfolio, valuing the purchase
// through the resolver. The wallet is created on first buy.
func Buy(s *Store, r RateResolver, userID int, code string, amount decimal.Decimal) (*Trade, error) {
	code, err := NormalizeCurrency(code)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be a positive number")
	}
	rate, _, err := r.Resolve(code, r.Base())
	if err != nil {
		return nil, fmt.Errorf("could not get rate for %s->%s: %w", code, r.Base(), err)
	}

	p, err := LoadPortfolio(s, userID)
	if err != nil {
		return nil, err
	}
	var old decimal.Decimal
	if w, ok := p.Wallet(code); ok {
		old = w.Balance
	}
	if err := p.Deposit(code, amount); err != nil {
		return nil, err
	}
	if err := SavePortfolio(s, p); err != nil {
		return nil, err
	}
	return &Trade{
		Currency:   code,
		Amount:     amount,
		UnitRate:   rate,
		Value:      amount.Mul(decimal.NewFromFloat(rate)),
		OldBalance: old,
		NewBalance: p.Wallets[code].Balance,
		Base:       r.Base(),
	}, nil
}

// Sell debits amount of code from the user's portfolio, valuing the proceeds
// through the resolver.
func Sell(s *Store, r RateResolver, userID int, code string, amount decimal.Decimal) (*Trade, error) {
	code, err := NormalizeCurrency(code)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be a positive number")
	}

	p, err := LoadPortfolio(s, userID)
	if err != nil {
		return nil, err
	}
	w, ok := p.Wallet(code)
	if !ok {
		return nil, fmt.Errorf("no wallet for %s, it is created on first buy", code)
	}
	old := w.Balance
	if err := p.Withdraw(code, amount); err != nil {
		return nil, err
	}

	rate, _, err := r.Resolve(code, r.Base())
	if err != nil {
		return nil, fmt.Errorf("could not get rate for %s->%s: %w", code, r.Base(), err)
	}
	if err := SavePortfolio(s, p); err != nil {
		return nil, err
	}
	return &Trade{
		Currency:   code,
		Amount:     amount,
		UnitRate:   rate,
		Value:      amount.Mul(decimal.NewFromFloat(rate)),
		OldBalance: old,
		NewBalance: w.Balance,
		Base:       r.Base(),
	}, nil
}

// ValueLine is the valuation of one wallet in the base currency.
type ValueLine struct {
	Currency    Currency
	Balance     decimal.Decimal
	Value       decimal.Decimal
	Unavailable bool // true when no rate could be resolved, Value is zero
}

// PortfolioValue is the full valuation of a portfolio in the base currency.
type PortfolioValue struct {
	Base  string
	Lines []ValueLine
	Total decimal.Decimal
}

// ValuePortfolio values every wallet through the resolver. A wallet whose
// rate cannot be resolved contributes zero and is marked unavailable instead
// of failing the whole valuation.
func ValuePortfolio(p *Portfolio, r RateResolver) *PortfolioValue {
	pv := &PortfolioValue{Base: r.Base()}

	codes := make([]string, 0, len(p.Wallets))
	for code := range p.Wallets {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		w := p.Wallets[code]
		cur, err := LookupCurrency(code)
		if err != nil {
			cur = Currency{Code: code, Name: code}
		}
		line := ValueLine{Currency: cur, Balance: w.Balance}
		rate, _, err := r.Resolve(code, r.Base())
		if err != nil {
			line.Unavailable = true
		} else {
			line.Value = w.Balance.Mul(decimal.NewFromFloat(rate))
		}
		pv.Total = pv.Total.Add(line.Value)
		pv.Lines = append(pv.Lines, line)
	}
	return pv
}
