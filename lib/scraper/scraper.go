// Package scraper issues requests against built addresses and hands back
// the decoded payload.
//
// Every fetch is a single synchronous GET. There is no retry and no cache,
// a failed request surfaces as an UpstreamError and the caller decides
// what to do with it.
//
// Endpoints come in two disjoint kinds: API endpoints answer with JSON
// (FetchJSON) and web pages answer with markup (FetchDocument). Which one
// is used is decided by the caller, never by sniffing the content type.
package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sabrmetrics/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("sabrmetrics/scraper")

// DefaultTimeout bounds every request when Options.Timeout is unset.
const DefaultTimeout = 100 * time.Second

// Target is anything that renders to a request URL, usually an
// address.Address.
type Target = fmt.Stringer

// URL adapts a plain string into a Target.
type URL string

func (u URL) String() string {
	return string(u)
}

// Payload is a decoded JSON object.
type Payload = map[string]any

// Response carries a decoded payload together with the address it was
// fetched from and the response metadata.
type Response[T any] struct {
	Address    string
	StatusCode int
	Header     http.Header
	Payload    T
}

type Options struct {
	// Timeout defaults to DefaultTimeout.
	Timeout time.Duration
	// Headers are sent with every request.
	Headers map[string]string
	// BrowserTransport makes requests look like they come from a browser,
	// some sites reject the default Go client outright.
	BrowserTransport bool
	// RequestsPerSecond spaces out requests when positive. Requests wait
	// for their turn, nothing is ever dropped or retried.
	RequestsPerSecond float64
	// HTTPClient replaces the underlying *http.Client.
	HTTPClient *http.Client
	// Output receives request/response dumps when debug logging is on.
	Output restyutil.InstrumentOutput
}

// Client is a RequestExecutor.
type Client struct {
	http *resty.Client
}

func NewClient(opts Options) *Client {
	var client *resty.Client
	if opts.HTTPClient != nil {
		client = resty.NewWithClient(opts.HTTPClient)
	} else {
		client = resty.New()
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client.SetTimeout(timeout)
	client.SetHeaders(opts.Headers)

	if opts.BrowserTransport {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	if opts.RequestsPerSecond > 0 {
		limiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}

	restyutil.InstrumentClient(client, tracer, opts.Output)

	return &Client{http: client}
}

func (c *Client) get(ctx context.Context, target string) (*resty.Response, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		return nil, &UpstreamError{Address: target, Err: err}
	}
	if !res.IsSuccess() {
		return res, &UpstreamError{Address: target, StatusCode: res.StatusCode()}
	}
	return res, nil
}

// FetchJSON GETs an API endpoint and decodes its JSON object body.
// Numbers are kept as json.Number so integer ids survive untouched.
func (c *Client) FetchJSON(ctx context.Context, target Target) (*Response[Payload], error) {
	link := target.String()
	ctx, span := tracer.Start(ctx, "FetchJSON")
	defer span.End()
	span.SetAttributes(attribute.String("address", link))

	res, err := c.get(ctx, link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}

	var payload Payload
	decoder := json.NewDecoder(bytes.NewReader(res.Body()))
	decoder.UseNumber()
	err = decoder.Decode(&payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode json")
		return nil, &UpstreamError{
			Address:    link,
			StatusCode: res.StatusCode(),
			Err:        fmt.Errorf("decode json: %w", err),
		}
	}

	return &Response[Payload]{
		Address:    link,
		StatusCode: res.StatusCode(),
		Header:     res.Header(),
		Payload:    payload,
	}, nil
}

// FetchBytes GETs target and hands back the raw body.
func (c *Client) FetchBytes(ctx context.Context, target Target) (*Response[[]byte], error) {
	link := target.String()
	ctx, span := tracer.Start(ctx, "FetchBytes")
	defer span.End()
	span.SetAttributes(attribute.String("address", link))

	res, err := c.get(ctx, link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}

	return &Response[[]byte]{
		Address:    link,
		StatusCode: res.StatusCode(),
		Header:     res.Header(),
		Payload:    res.Body(),
	}, nil
}

// FetchDocument GETs a web page and parses its markup.
func (c *Client) FetchDocument(ctx context.Context, target Target) (*Response[*goquery.Document], error) {
	link := target.String()
	ctx, span := tracer.Start(ctx, "FetchDocument")
	defer span.End()
	span.SetAttributes(attribute.String("address", link))

	res, err := c.get(ctx, link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, &UpstreamError{
			Address:    link,
			StatusCode: res.StatusCode(),
			Err:        fmt.Errorf("parse html: %w", err),
		}
	}

	return &Response[*goquery.Document]{
		Address:    link,
		StatusCode: res.StatusCode(),
		Header:     res.Header(),
		Payload:    doc,
	}, nil
}
