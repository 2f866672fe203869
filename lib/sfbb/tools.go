// Package sfbb scrapes the tools page of the Smart Fantasy Baseball site,
// which publishes a map between the player ids of every major fantasy
// site.
package sfbb

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"sabrmetrics/lib/htmlutil"
	"sabrmetrics/lib/restyutil"
	"sabrmetrics/lib/scraper"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("sabrmetrics/sfbb")

const ToolsURL = "https://smartfantasybaseball.com/tools/"

// linkSelector picks the player id map cell of the tools table. Links are
// identified by position only, a change in the page layout breaks them.
const linkSelector = "#content table tr:nth-of-type(2) td:nth-of-type(1) a"

// Links are the player id map resources linked from the tools page.
type Links struct {
	Webview          string
	Excel            string
	CSV              string
	ChangelogWebview string
	ChangelogCSV     string
}

// LinksError is returned when the tools page does not carry the expected
// number of links.
type LinksError struct {
	Found int
}

func (e *LinksError) Error() string {
	return fmt.Sprintf("tools page: expected 5 player id map links, found %d", e.Found)
}

type Options struct {
	// URL defaults to ToolsURL.
	URL string
	// Headers default to DefaultHeaders.
	Headers Headers
	// Client replaces the default client, which sends Headers through a
	// browser-like transport.
	Client *scraper.Client
	Output restyutil.InstrumentOutput
	// RequestsPerSecond is passed on to the default client.
	RequestsPerSecond float64
}

type Tools struct {
	client *scraper.Client
	url    *url.URL
}

func NewTools(opts Options) (Tools, error) {
	raw := opts.URL
	if raw == "" {
		raw = ToolsURL
	}
	pageURL, err := url.Parse(raw)
	if err != nil {
		return Tools{}, err
	}

	client := opts.Client
	if client == nil {
		headers := opts.Headers
		if headers == nil {
			headers = DefaultHeaders()
		}
		client = scraper.NewClient(scraper.Options{
			Headers:           headers,
			BrowserTransport:  true,
			RequestsPerSecond: opts.RequestsPerSecond,
			Output:            opts.Output,
		})
	}

	return Tools{client: client, url: pageURL}, nil
}

// Links fetches the tools page and reads the player id map links.
func (t Tools) Links(ctx context.Context) (Links, error) {
	ctx, span := tracer.Start(ctx, "Links")
	defer span.End()

	res, err := t.client.FetchDocument(ctx, scraper.URL(t.url.String()))
	if err != nil {
		return Links{}, err
	}

	anchors := htmlutil.GetAnchors(ctx, res.Payload.Find(linkSelector), t.url)
	if len(anchors) < 5 {
		return Links{}, &LinksError{Found: len(anchors)}
	}
	return Links{
		Excel:            anchors[0].Href,
		Webview:          anchors[1].Href,
		CSV:              anchors[2].Href,
		ChangelogWebview: anchors[3].Href,
		ChangelogCSV:     anchors[4].Href,
	}, nil
}

func (t Tools) download(ctx context.Context, dest, ext string, pick func(Links) string) (int64, error) {
	err := scraper.CheckExtension(dest, ext)
	if err != nil {
		return 0, err
	}
	links, err := t.Links(ctx)
	if err != nil {
		return 0, err
	}
	return t.client.Download(ctx, scraper.URL(pick(links)), dest, ext)
}

// DownloadExcel writes the excel player id map to dest, which must end in
// ".xlsx".
func (t Tools) DownloadExcel(ctx context.Context, dest string) (int64, error) {
	return t.download(ctx, dest, ".xlsx", func(l Links) string { return l.Excel })
}

// DownloadCSV writes the csv player id map to dest, which must end in
// ".csv".
func (t Tools) DownloadCSV(ctx context.Context, dest string) (int64, error) {
	return t.download(ctx, dest, ".csv", func(l Links) string { return l.CSV })
}

// DownloadChangelogCSV writes the csv changelog to dest, which must end in
// ".csv".
func (t Tools) DownloadChangelogCSV(ctx context.Context, dest string) (int64, error) {
	return t.download(ctx, dest, ".csv", func(l Links) string { return l.ChangelogCSV })
}

// PlayerIDMap reads the player id map from its published web view.
func (t Tools) PlayerIDMap(ctx context.Context) (Sheet, error) {
	ctx, span := tracer.Start(ctx, "PlayerIDMap")
	defer span.End()

	links, err := t.Links(ctx)
	if err != nil {
		return Sheet{}, err
	}
	res, err := t.client.FetchDocument(ctx, scraper.URL(links.Webview))
	if err != nil {
		return Sheet{}, err
	}
	sheet, err := ParsePlayerIDMapPage(res.Payload)
	if err != nil {
		return Sheet{}, fmt.Errorf("%s: %w", res.Address, err)
	}
	return sheet, nil
}

// PlayerIDMapCSV reads the player id map from its csv download.
func (t Tools) PlayerIDMapCSV(ctx context.Context) (Sheet, error) {
	ctx, span := tracer.Start(ctx, "PlayerIDMapCSV")
	defer span.End()

	links, err := t.Links(ctx)
	if err != nil {
		return Sheet{}, err
	}
	res, err := t.client.FetchBytes(ctx, scraper.URL(links.CSV))
	if err != nil {
		return Sheet{}, err
	}
	sheet, err := ParsePlayerIDMapCSV(bytes.NewReader(res.Payload))
	if err != nil {
		return Sheet{}, fmt.Errorf("%s: %w", res.Address, err)
	}
	return sheet, nil
}

// Changelog reads the player id map changelog from its published web view.
func (t Tools) Changelog(ctx context.Context) (Sheet, error) {
	ctx, span := tracer.Start(ctx, "Changelog")
	defer span.End()

	links, err := t.Links(ctx)
	if err != nil {
		return Sheet{}, err
	}
	res, err := t.client.FetchDocument(ctx, scraper.URL(links.ChangelogWebview))
	if err != nil {
		return Sheet{}, err
	}
	sheet, err := ParseChangelogPage(res.Payload)
	if err != nil {
		return Sheet{}, fmt.Errorf("%s: %w", res.Address, err)
	}
	return sheet, nil
}

// ChangelogCSV reads the changelog from its csv download.
func (t Tools) ChangelogCSV(ctx context.Context) (Sheet, error) {
	ctx, span := tracer.Start(ctx, "ChangelogCSV")
	defer span.End()

	links, err := t.Links(ctx)
	if err != nil {
		return Sheet{}, err
	}
	res, err := t.client.FetchBytes(ctx, scraper.URL(links.ChangelogCSV))
	if err != nil {
		return Sheet{}, err
	}
	sheet, err := ParseChangelogCSV(bytes.NewReader(res.Payload))
	if err != nil {
		return Sheet{}, fmt.Errorf("%s: %w", res.Address, err)
	}
	return sheet, nil
}
