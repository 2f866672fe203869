package sfbb

import (
	_ "embed"
	"fmt"

	"sabrmetrics/lib/configutil"

	"github.com/titanous/json5"
)

//go:embed headers.json5
var defaultHeadersFile []byte

// Headers are sent with every request to the site.
type Headers map[string]string

// DefaultHeaders returns the built in headers.
func DefaultHeaders() Headers {
	var headers Headers
	err := json5.Unmarshal(defaultHeadersFile, &headers)
	if err != nil {
		panic(fmt.Sprintf("invalid built in headers: %v", err))
	}
	return headers
}

// LoadHeaders reads headers from a json5 file (and its local override),
// falling back to DefaultHeaders for any header the file leaves out.
func LoadHeaders(path string) (Headers, error) {
	headers, err := configutil.ReadOrDefault(path, DefaultHeaders())
	if err != nil {
		return nil, err
	}
	if headers["User-Agent"] == "" {
		return nil, fmt.Errorf("%s: User-Agent must not be empty", path)
	}
	return headers, nil
}
