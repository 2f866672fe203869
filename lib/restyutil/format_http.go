package restyutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
)

// MaxDumpBody caps how many bytes of a body end up in a dump, the player id
// exports are several megabytes.
const MaxDumpBody = 64 << 10

func formatHeaders(headers http.Header) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out strings.Builder
	for _, k := range keys {
		for _, v := range headers[k] {
			if out.Len() > 0 {
				out.WriteByte('\n')
			}
			fmt.Fprintf(&out, "%s: %s", k, v)
		}
	}
	return out.String()
}

// formatBody indents json bodies and truncates everything to MaxDumpBody.
func formatBody(contentType string, body []byte) string {
	if len(body) == 0 {
		return "<NO BODY>"
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType == "application/json" {
		var indented bytes.Buffer
		if json.Indent(&indented, body, "", "  ") == nil {
			body = indented.Bytes()
		}
	}
	if len(body) > MaxDumpBody {
		return fmt.Sprintf("%s\n<TRUNCATED %d BYTES>", body[:MaxDumpBody], len(body)-MaxDumpBody)
	}
	return string(body)
}

func requestBody(req *http.Request) []byte {
	if req == nil || req.GetBody == nil {
		return nil
	}
	body, err := req.GetBody()
	if err != nil {
		return []byte(fmt.Sprintf("failed to get request body: %s", err))
	}
	read, err := io.ReadAll(body)
	if err != nil {
		return []byte(fmt.Sprintf("failed to read request body: %s", err))
	}
	return read
}

func writeSection(out *strings.Builder, title, line, headers, body string) {
	fmt.Fprintf(out, "---- %s ----\n\n%s\n\n", title, line)
	if headers != "" {
		out.WriteString(headers)
		out.WriteString("\n\n")
	}
	out.WriteString(body)
}

func formatHttpMessage(res *resty.Response) string {
	var requestHeaders http.Header
	if res.Request.RawRequest != nil {
		requestHeaders = res.Request.RawRequest.Header
	}

	responseURL := res.Request.URL
	if res.RawResponse != nil {
		redirected, err := res.RawResponse.Location()
		if err == nil {
			responseURL = redirected.String()
		}
	}

	var out strings.Builder
	writeSection(
		&out, "REQUEST",
		res.Request.Method+" "+res.Request.URL,
		formatHeaders(requestHeaders),
		formatBody(requestHeaders.Get("Content-Type"), requestBody(res.Request.RawRequest)),
	)
	out.WriteString("\n\n")
	writeSection(
		&out, "RESPONSE",
		fmt.Sprintf("%d %s", res.StatusCode(), responseURL),
		formatHeaders(res.Header()),
		formatBody(res.Header().Get("Content-Type"), res.Body()),
	)
	return out.String()
}
