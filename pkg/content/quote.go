package content

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/httputil"
)

// DefaultQuoteURL is the quote endpoint template. The %s verb receives the
// URL-safe ticker symbol; the endpoint must answer JSON in the quoteDoc
// shape. Deployments front their own market-data proxy here.
const DefaultQuoteURL = "https://stooq.com/q/l/?s=%s&f=sd2t2ohlcv&e=json"

// QuoteProvider renders an equity quote tile. With Mock set it serves
// deterministic canned data and never touches the network, which is also
// the default wiring so a dashboard works offline out of the box.
type QuoteProvider struct {
	Client *http.Client
	URL    string // endpoint template, DefaultQuoteURL when empty
	Mock   bool
}

// quoteDoc is the subset of the quote endpoint response we render.
type quoteDoc struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
}

// Fetch retrieves the quote for c.Symbol and formats it for a width×height
// tile: small tiles get symbol and price only, taller ones the day's range.
func (p *QuoteProvider) Fetch(ctx context.Context, c Content, width, height int) (string, error) {
	if c.Symbol == "" {
		return "", fmt.Errorf("equity-quote symbol: %w", ErrMissingField)
	}

	var q quoteDoc
	if p.Mock {
		q = mockQuote(c.Symbol)
	} else {
		urlTmpl := p.URL
		if urlTmpl == "" {
			urlTmpl = DefaultQuoteURL
		}
		if err := httputil.GetJSON(ctx, p.Client, fmt.Sprintf(urlTmpl, c.Symbol), &q); err != nil {
			return "", fmt.Errorf("quote %s: %w", c.Symbol, err)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %.2f", strings.ToUpper(q.Symbol), q.Price)
	if height >= 2 {
		sign := "+"
		if q.Change < 0 {
			sign = ""
		}
		fmt.Fprintf(&b, "\n%s%.2f", sign, q.Change)
	}
	if height >= 3 && width >= 2 {
		fmt.Fprintf(&b, "\nO %.2f  H %.2f  L %.2f", q.Open, q.High, q.Low)
	}
	return b.String(), nil
}

// mockQuote derives stable pseudo-prices from the symbol so mock dashboards
// look alive but render reproducibly.
func mockQuote(symbol string) quoteDoc {
	var h uint32
	for _, r := range strings.ToUpper(symbol) {
		h = h*31 + uint32(r)
	}
	base := float64(50 + h%450)
	return quoteDoc{
		Symbol: symbol,
		Price:  base + float64(h%100)/100,
		Change: float64(int32(h%9)-4) / 2,
		Open:   base - 1,
		High:   base + 2,
		Low:    base - 2,
	}
}
