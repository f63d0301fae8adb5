// Package content defines the tagged union describing what a tile renders,
// and the provider dispatch table that turns a content value plus the
// tile's allotted width and height into rendered output.
//
// The grid engine treats content as opaque: it stores a [Content] value on
// the tile and passes the tile's current size through. Providers own their
// data fetching, error and loading states entirely.
//
// Content kinds form an explicit sum type: [KindEquityQuote], [KindNews]
// and [KindPlaceholder]. Dispatch goes through a static [Registry] rather
// than any runtime string-keyed component resolution.
package content

import (
	"context"
	"errors"
	"fmt"
)

// Kind tags a content variant. The tag is the "type" field of the tile's
// content object in persisted layout JSON.
type Kind string

// Content kinds. KindNone is the zero value; a tile with no content
// carries a nil *Content, which renders as an empty body.
const (
	KindNone        Kind = ""
	KindEquityQuote Kind = "equity-quote"
	KindNews        Kind = "news"
	KindPlaceholder Kind = "placeholder"
)

var (
	// ErrUnknownKind is returned by [Content.Validate] and [Registry.Render]
	// for a content kind with no registered provider.
	ErrUnknownKind = errors.New("unknown content kind")

	// ErrMissingField is returned by [Content.Validate] when a variant lacks
	// a field its kind requires (e.g. an equity quote without a symbol).
	ErrMissingField = errors.New("missing content field")
)

// Content is the tagged variant stored on a tile. Type selects the variant;
// the remaining fields are per-kind and empty for other kinds:
//
//   - equity-quote: Symbol (required)
//   - news: FeedURL (required), Limit (optional, headline count)
//   - placeholder: Text (optional)
type Content struct {
	Type    Kind   `json:"type"`
	Symbol  string `json:"symbol,omitempty"`
	FeedURL string `json:"feedUrl,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	Text    string `json:"text,omitempty"`
}

// EquityQuote returns content rendering a live quote for symbol.
func EquityQuote(symbol string) *Content {
	return &Content{Type: KindEquityQuote, Symbol: symbol}
}

// News returns content rendering headlines from an RSS feed.
func News(feedURL string, limit int) *Content {
	return &Content{Type: KindNews, FeedURL: feedURL, Limit: limit}
}

// Placeholder returns static placeholder content.
func Placeholder(text string) *Content {
	return &Content{Type: KindPlaceholder, Text: text}
}

// Validate checks that the content's kind is known and that the fields the
// kind requires are present.
func (c *Content) Validate() error {
	switch c.Type {
	case KindEquityQuote:
		if c.Symbol == "" {
			return fmt.Errorf("equity-quote symbol: %w", ErrMissingField)
		}
	case KindNews:
		if c.FeedURL == "" {
			return fmt.Errorf("news feedUrl: %w", ErrMissingField)
		}
	case KindPlaceholder:
	default:
		return fmt.Errorf("%q: %w", c.Type, ErrUnknownKind)
	}
	return nil
}

// Provider renders one content kind. Fetch receives the content value and
// the tile's allotted width and height in grid cells, and returns the
// rendered text. Implementations own their network and error handling;
// Fetch must honor ctx cancellation.
type Provider interface {
	Fetch(ctx context.Context, c Content, width, height int) (string, error)
}

// Registry is the static dispatch table from content kind to provider.
type Registry struct {
	providers map[Kind]Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[Kind]Provider)}
}

// DefaultRegistry returns a registry with the standard providers wired:
// quotes and news in mock mode (no network), and the placeholder.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindEquityQuote, &QuoteProvider{Mock: true})
	r.Register(KindNews, &NewsProvider{Mock: true})
	r.Register(KindPlaceholder, PlaceholderProvider{})
	return r
}

// Register binds a provider to a kind, replacing any previous binding.
func (r *Registry) Register(k Kind, p Provider) {
	r.providers[k] = p
}

// Render dispatches to the provider for c's kind. Nil content renders as
// an empty body, matching tiles with no content assigned.
func (r *Registry) Render(ctx context.Context, c *Content, width, height int) (string, error) {
	if c == nil {
		return "", nil
	}
	p, ok := r.providers[c.Type]
	if !ok {
		return "", fmt.Errorf("%q: %w", c.Type, ErrUnknownKind)
	}
	return p.Fetch(ctx, *c, width, height)
}
