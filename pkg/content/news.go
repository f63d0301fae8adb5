package content

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/httputil"
)

// DefaultHeadlineLimit caps the number of headlines rendered when the
// content does not set its own limit.
const DefaultHeadlineLimit = 5

// NewsProvider renders headlines from an RSS feed. With Mock set it serves
// canned headlines and never touches the network.
type NewsProvider struct {
	Client *http.Client
	Mock   bool
}

// rssDoc covers the fraction of RSS 2.0 we need: item titles in order.
type rssDoc struct {
	Channel struct {
		Items []struct {
			Title string `xml:"title"`
		} `xml:"item"`
	} `xml:"channel"`
}

// Fetch retrieves the feed at c.FeedURL and renders up to the limit of
// headlines, never more than the tile has rows for.
func (p *NewsProvider) Fetch(ctx context.Context, c Content, width, height int) (string, error) {
	if c.FeedURL == "" && !p.Mock {
		return "", fmt.Errorf("news feedUrl: %w", ErrMissingField)
	}

	var titles []string
	if p.Mock {
		titles = mockHeadlines
	} else {
		body, err := httputil.GetBytes(ctx, p.Client, c.FeedURL)
		if err != nil {
			return "", fmt.Errorf("news feed %s: %w", c.FeedURL, err)
		}
		var doc rssDoc
		if err := xml.Unmarshal(body, &doc); err != nil {
			return "", fmt.Errorf("news feed %s: parse: %w", c.FeedURL, err)
		}
		for _, it := range doc.Channel.Items {
			titles = append(titles, it.Title)
		}
	}

	limit := c.Limit
	if limit <= 0 {
		limit = DefaultHeadlineLimit
	}
	// One headline per tile row, minus one row for the title bar.
	if rows := max(height-1, 1); limit > rows {
		limit = rows
	}
	if len(titles) > limit {
		titles = titles[:limit]
	}

	var b strings.Builder
	for i, title := range titles {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("• ")
		b.WriteString(title)
	}
	return b.String(), nil
}

var mockHeadlines = []string{
	"Markets steady as earnings season opens",
	"Central bank holds rates, signals patience",
	"Chip maker beats forecasts on data center demand",
	"Oil slips on supply outlook",
	"Retail sales edge higher for third month",
}
