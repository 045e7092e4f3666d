// Package bundle loads the built-in test set from a URL, a file, or the copy
// embedded in the binary.
package bundle

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/abhisek/quizbox/internal/quiz"
)

//go:embed default.json
var defaultBundle []byte

// SupportedMajor is the only bundle format major version this build reads.
const SupportedMajor = "v1"

// ErrUnsupportedVersion is returned for bundles with a foreign major version.
var ErrUnsupportedVersion = errors.New("unsupported bundle version")

// ErrInvalidBundle wraps every decode or schema failure.
type ErrInvalidBundle struct {
	Source string
	Err    error
}

func (e *ErrInvalidBundle) Error() string {
	return fmt.Sprintf("invalid bundle %s: %v", e.Source, e.Err)
}

func (e *ErrInvalidBundle) Unwrap() error { return e.Err }

// Fetcher resolves bundle sources.
type Fetcher struct {
	client *http.Client
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the client used for http(s) sources.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// NewFetcher returns a Fetcher with a 10s HTTP timeout.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{client: &http.Client{Timeout: 10 * time.Second}}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fetch loads and decodes the bundle at source. An empty source selects the
// embedded default bundle; http:// and https:// sources are downloaded;
// anything else is read as a file path.
func (f *Fetcher) Fetch(ctx context.Context, source string) (quiz.Bundle, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case source == "":
		data, source = defaultBundle, "embedded"
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		data, err = f.download(ctx, source)
	default:
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return quiz.Bundle{}, fmt.Errorf("fetch bundle %s: %w", source, err)
	}
	return Decode(source, data)
}

// Default decodes the embedded bundle.
func Default() (quiz.Bundle, error) {
	return Decode("embedded", defaultBundle)
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// Decode validates data against the bundle schema and version policy and
// returns the decoded bundle. Tests without an id are assigned
// "builtin-<n>" from their 1-based position; questions without an id are
// numbered by position. Explicit test ids must be unique.
func Decode(source string, data []byte) (quiz.Bundle, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return quiz.Bundle{}, &ErrInvalidBundle{Source: source, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := compiledSchema()
	if err != nil {
		return quiz.Bundle{}, fmt.Errorf("compile bundle schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return quiz.Bundle{}, &ErrInvalidBundle{Source: source, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var b quiz.Bundle
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&b); err != nil {
		return quiz.Bundle{}, &ErrInvalidBundle{Source: source, Err: err}
	}

	if err := checkVersion(b.Version); err != nil {
		return quiz.Bundle{}, err
	}

	if err := assignIDs(b.Tests); err != nil {
		return quiz.Bundle{}, &ErrInvalidBundle{Source: source, Err: err}
	}
	for i := range b.Tests {
		t := &b.Tests[i]
		for j := range t.Questions {
			if t.Questions[j].ID == 0 {
				t.Questions[j].ID = j + 1
			}
		}
	}
	return b, nil
}

// checkVersion accepts an empty version or any semver with major v1.
func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, v)
	}
	if semver.Major(v) != SupportedMajor {
		return fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedVersion, v, SupportedMajor)
	}
	return nil
}

// assignIDs rejects repeated explicit ids and gives every untagged test a
// positional id that no other test in the bundle uses.
func assignIDs(tests []quiz.Test) error {
	taken := make(map[string]bool, len(tests))
	for _, t := range tests {
		if t.ID == "" {
			continue
		}
		if taken[t.ID] {
			return fmt.Errorf("duplicate test id %q", t.ID)
		}
		taken[t.ID] = true
	}
	for i := range tests {
		if tests[i].ID != "" {
			continue
		}
		id := fmt.Sprintf("builtin-%d", i+1)
		for n := 2; taken[id]; n++ {
			id = fmt.Sprintf("builtin-%d-%d", i+1, n)
		}
		taken[id] = true
		tests[i].ID = id
	}
	return nil
}
