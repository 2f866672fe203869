package scraper

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// CheckExtension returns an ExtensionError unless dest ends in ext.
func CheckExtension(dest, ext string) error {
	if !strings.EqualFold(filepath.Ext(dest), ext) {
		return &ExtensionError{Path: dest, Expected: ext}
	}
	return nil
}

// Download streams the body of target into dest byte for byte.
//
// dest must end in ext (for example ".csv"), otherwise an ExtensionError is
// returned before anything is requested. The file is written in place: an
// interrupted transfer leaves a truncated file behind.
func (c *Client) Download(ctx context.Context, target Target, dest, ext string) (int64, error) {
	err := CheckExtension(dest, ext)
	if err != nil {
		return 0, err
	}

	link := target.String()
	ctx, span := tracer.Start(ctx, "Download")
	defer span.End()
	span.SetAttributes(
		attribute.String("address", link),
		attribute.String("dest", dest),
	)

	res, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return 0, &UpstreamError{Address: link, Err: err}
	}
	body := res.RawBody()
	defer body.Close()

	if !res.IsSuccess() {
		span.SetStatus(codes.Error, res.Status())
		return 0, &UpstreamError{Address: link, StatusCode: res.StatusCode()}
	}

	file, err := os.Create(dest)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	defer file.Close()

	n, err := io.Copy(file, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write")
		return n, &UpstreamError{Address: link, StatusCode: res.StatusCode(), Err: err}
	}

	slog.DebugContext(ctx, "downloaded file", "url", link, "dest", dest, "bytes", n)
	return n, nil
}
