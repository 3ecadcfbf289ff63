package renderer

import (
	"github.com/etnz/valutatrade"
)

// PortfolioView is the display-ready valuation of one user's portfolio.
type PortfolioView struct {
	Username string
	Base     string
	Rows     []WalletRow
	Total    string
	Empty    bool
}

// WalletRow is one wallet line of the portfolio report.
type WalletRow struct {
	Display string // currency display info
	Balance string
	Value   string // formatted in base currency, or "unavailable"
}

// NewPortfolioView builds the display form of a portfolio valuation.
func NewPortfolioView(username string, pv *valutatrade.PortfolioValue) *PortfolioView {
	v := &PortfolioView{
		Username: username,
		Base:     pv.Base,
		Total:    formatMoney(pv.Total, pv.Base),
		Empty:    len(pv.Lines) == 0,
	}
	for _, line := range pv.Lines {
		row := WalletRow{
			Display: line.Currency.DisplayInfo(),
			Balance: line.Balance.StringFixed(4),
		}
		if line.Unavailable {
			row.Value = "unavailable"
		} else {
			row.Value = formatMoney(line.Value, pv.Base)
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}

// Portfolio renders a portfolio valuation as markdown.
func Portfolio(username string, pv *valutatrade.PortfolioValue) string {
	return renderTemplate("portfolio", "portfolio.md", NewPortfolioView(username, pv))
}
