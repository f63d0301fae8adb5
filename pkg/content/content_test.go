package content

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestContent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		content *Content
		wantErr error
	}{
		{"quote", EquityQuote("AAPL"), nil},
		{"quote without symbol", &Content{Type: KindEquityQuote}, ErrMissingField},
		{"news", News("https://example.com/rss", 3), nil},
		{"news without feed", &Content{Type: KindNews}, ErrMissingField},
		{"placeholder", Placeholder("hi"), nil},
		{"placeholder empty text", Placeholder(""), nil},
		{"unknown kind", &Content{Type: "widget"}, ErrUnknownKind},
		{"empty kind", &Content{}, ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.content.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegistry_Render(t *testing.T) {
	ctx := context.Background()
	r := DefaultRegistry()

	out, err := r.Render(ctx, Placeholder("reserved"), 2, 2)
	if err != nil || out != "reserved" {
		t.Errorf("Render(placeholder) = (%q, %v), want (reserved, nil)", out, err)
	}

	out, err = r.Render(ctx, nil, 2, 2)
	if err != nil || out != "" {
		t.Errorf("Render(nil) = (%q, %v), want empty", out, err)
	}

	_, err = r.Render(ctx, &Content{Type: "widget"}, 2, 2)
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Render(unknown) = %v, want ErrUnknownKind", err)
	}
}

func TestQuoteProvider_MockIsDeterministic(t *testing.T) {
	ctx := context.Background()
	p := &QuoteProvider{Mock: true}
	c := Content{Type: KindEquityQuote, Symbol: "AAPL"}

	first, err := p.Fetch(ctx, c, 4, 3)
	if err != nil {
		t.Fatalf("Fetch() = %v", err)
	}
	second, _ := p.Fetch(ctx, c, 4, 3)
	if first != second {
		t.Error("mock quote output changed between calls")
	}
	if !strings.Contains(first, "AAPL") {
		t.Errorf("output %q does not mention the symbol", first)
	}
}

func TestQuoteProvider_SizeAwareFormat(t *testing.T) {
	ctx := context.Background()
	p := &QuoteProvider{Mock: true}
	c := Content{Type: KindEquityQuote, Symbol: "MSFT"}

	small, _ := p.Fetch(ctx, c, 2, 1)
	if strings.Count(small, "\n") != 0 {
		t.Errorf("1-row tile rendered %d lines, want 1", strings.Count(small, "\n")+1)
	}

	tall, _ := p.Fetch(ctx, c, 4, 3)
	if strings.Count(tall, "\n") != 2 {
		t.Errorf("3-row tile rendered %d lines, want 3", strings.Count(tall, "\n")+1)
	}
	if !strings.Contains(tall, "O ") || !strings.Contains(tall, "H ") {
		t.Errorf("tall output %q missing the day range", tall)
	}
}

func TestQuoteProvider_LiveEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"symbol": "TEST", "price": 123.45, "change": -1.5, "open": 120, "high": 125, "low": 119}`)
	}))
	defer srv.Close()

	p := &QuoteProvider{Client: srv.Client(), URL: srv.URL + "/?s=%s"}
	out, err := p.Fetch(context.Background(), Content{Type: KindEquityQuote, Symbol: "TEST"}, 4, 2)
	if err != nil {
		t.Fatalf("Fetch() = %v", err)
	}
	if !strings.Contains(out, "TEST  123.45") {
		t.Errorf("output = %q, want symbol and price", out)
	}
	if !strings.Contains(out, "-1.50") {
		t.Errorf("output = %q, want signed change", out)
	}
}

func TestQuoteProvider_MissingSymbol(t *testing.T) {
	p := &QuoteProvider{Mock: true}
	_, err := p.Fetch(context.Background(), Content{Type: KindEquityQuote}, 2, 2)
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("Fetch() = %v, want ErrMissingField", err)
	}
}

func TestNewsProvider_MockLimitedByHeight(t *testing.T) {
	ctx := context.Background()
	p := &NewsProvider{Mock: true}

	// A 3-row tile has 2 content rows after the title bar.
	out, err := p.Fetch(ctx, Content{Type: KindNews, Limit: 10}, 6, 3)
	if err != nil {
		t.Fatalf("Fetch() = %v", err)
	}
	if got := strings.Count(out, "\n") + 1; got != 2 {
		t.Errorf("rendered %d headlines in a 3-row tile, want 2", got)
	}
}

func TestNewsProvider_ExplicitLimit(t *testing.T) {
	out, err := (&NewsProvider{Mock: true}).Fetch(context.Background(),
		Content{Type: KindNews, Limit: 3}, 8, 10)
	if err != nil {
		t.Fatalf("Fetch() = %v", err)
	}
	if got := strings.Count(out, "\n") + 1; got != 3 {
		t.Errorf("rendered %d headlines, want 3", got)
	}
}

func TestNewsProvider_LiveFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0"?>
<rss><channel>
  <item><title>First story</title></item>
  <item><title>Second story</title></item>
</channel></rss>`)
	}))
	defer srv.Close()

	p := &NewsProvider{Client: srv.Client()}
	out, err := p.Fetch(context.Background(), Content{Type: KindNews, FeedURL: srv.URL}, 8, 10)
	if err != nil {
		t.Fatalf("Fetch() = %v", err)
	}
	if !strings.Contains(out, "First story") || !strings.Contains(out, "Second story") {
		t.Errorf("output = %q, want both headlines", out)
	}
}

func TestPlaceholderProvider(t *testing.T) {
	ctx := context.Background()
	p := PlaceholderProvider{}

	out, _ := p.Fetch(ctx, Content{Type: KindPlaceholder, Text: "hello"}, 2, 2)
	if out != "hello" {
		t.Errorf("Fetch() = %q, want %q", out, "hello")
	}
	out, _ = p.Fetch(ctx, Content{Type: KindPlaceholder}, 2, 2)
	if out == "" {
		t.Error("empty placeholder rendered nothing, want a marker")
	}
}
