// internal/words/load.go
//
// Loading of the validation and generation dictionaries.
//
// Sources:
//   - ""                  → embedded default from the assets package.
//   - "http://", "https://" → fetched with the caller's context.
//   - anything else        → read from the local filesystem.
//
// LoadPair fetches both dictionaries concurrently and only succeeds when both
// do; a puzzle must never be initialised with partial dictionaries.

package words

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stevenpuente/six-words/assets"
)

// Kind names which dictionary a load concerns.
type Kind string

const (
	Validation Kind = "validation"
	Generation Kind = "generation"
)

// RequiredGenerationLengths are the buckets the board generator draws from.
var RequiredGenerationLengths = []int{4, 5, 6, 7}

// maxDictionaryBytes bounds remote downloads.
const maxDictionaryBytes = 32 << 20

// LoadError reports a failure to fetch or parse a dictionary. It is fatal to
// initialisation: the engine must not be started without both dictionaries.
type LoadError struct {
	Which  Kind
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	src := e.Source
	if src == "" {
		src = "embedded"
	}
	return fmt.Sprintf("load %s dictionary (%s): %v", e.Which, src, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Pair holds both dictionaries needed to run a puzzle.
type Pair struct {
	Valid    *Dictionary
	Generate *Dictionary
}

// httpClient is used for remote dictionaries; the context still bounds each call.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// Load reads and parses one dictionary from source.
func Load(ctx context.Context, which Kind, source string) (*Dictionary, error) {
	data, err := read(ctx, which, source)
	if err != nil {
		return nil, &LoadError{Which: which, Source: source, Err: err}
	}
	d, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Which: which, Source: source, Err: err}
	}
	if which == Generation {
		for _, n := range RequiredGenerationLengths {
			if len(d.Bucket(n)) == 0 {
				return nil, &LoadError{Which: which, Source: source,
					Err: fmt.Errorf("no words of length %d", n)}
			}
		}
	}
	return d, nil
}

// LoadPair loads the validation and generation dictionaries concurrently.
func LoadPair(ctx context.Context, validSource, generateSource string) (*Pair, error) {
	var p Pair
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := Load(gctx, Validation, validSource)
		p.Valid = d
		return err
	})
	g.Go(func() error {
		d, err := Load(gctx, Generation, generateSource)
		p.Generate = d
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &p, nil
}

// read returns the raw bytes for a dictionary source.
func read(ctx context.Context, which Kind, source string) ([]byte, error) {
	switch {
	case source == "":
		if which == Generation {
			return assets.GenerateWords()
		}
		return assets.ValidWords()
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return fetch(ctx, source)
	default:
		return os.ReadFile(source)
	}
}

// fetch downloads a remote dictionary.
func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDictionaryBytes))
}
