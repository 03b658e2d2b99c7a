package offline

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	json "github.com/goccy/go-json"

	"babydbg/internal/providers"
	"babydbg/internal/structures"
)

const (
	// shellRoot is the canonical cache key for the app shell. Deep-linked
	// day-view paths only exist after client script execution, so they are
	// never cached under their own URL.
	shellRoot      = "/"
	deepLinkPrefix = "/baby/"
)

// dayDataPattern matches the upstream day-record endpoint for one baby and
// one calendar day. Entries of this shape get the stale annotation when
// served from cache.
var dayDataPattern = regexp.MustCompile(`^/api/baby/\d+/day/\d{4}-\d{2}-\d{2}$`)

type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

type Response struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// FetcherInterface is the outbound network attempt. Implementations return an
// error only when no response was obtained at all; non-2xx statuses are
// responses, not errors.
type FetcherInterface interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

type FetcherFunc func(ctx context.Context, req *Request) (*Response, error)

func (f FetcherFunc) Do(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// Policy decides network versus cache for every intercepted request:
// network first, opportunistic write-through of OK responses, cache fallback
// with stale annotation on day records, and the original network error when
// both sources come up empty.
type Policy struct {
	version string
	shell   []string
	fetcher FetcherInterface
	store   providers.StoreProviderInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewPolicy(conf *structures.Config, fetcher FetcherInterface, store providers.StoreProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *Policy {
	return &Policy{
		version: conf.Offline.Version,
		shell:   conf.Offline.ShellAssets,
		fetcher: fetcher,
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

func (p *Policy) key(path string) string {
	return p.version + "|" + path
}

func (p *Policy) Handle(ctx context.Context, req *Request) (*Response, error) {
	resp, netErr := p.fetcher.Do(ctx, req)
	if netErr == nil {
		if resp.OK() && req.Method == http.MethodGet {
			if err := p.put(req.Path, resp); err != nil {
				return nil, err
			}
		}
		return resp, nil
	}

	lookup := req.Path
	if strings.HasPrefix(lookup, deepLinkPrefix) {
		lookup = shellRoot
	}
	data, ok := p.store.Get(p.key(lookup))
	if !ok {
		// No network, no cache: genuine unavailability, surface the
		// original failure.
		return nil, netErr
	}

	var cached Response
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("offline entry %s: %w", lookup, err)
	}
	if dayDataPattern.MatchString(lookup) {
		// A body that cannot be annotated is still a better answer than
		// no answer; serve it verbatim and leave the marking to the log.
		if err := markStale(&cached); err != nil {
			p.logger.Warnf(providers.GetLogTypeByRequestType(req.Method),
				"offline entry %s could not be marked stale: %s", lookup, err)
		} else {
			p.metrics.IncStaleServed()
		}
	}
	p.logger.Warnf(providers.GetLogTypeByRequestType(req.Method),
		"network failed for %s (%s), served from offline store", req.Path, netErr)
	return &cached, nil
}

func (p *Policy) put(path string, resp *Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("offline store encode %s: %w", path, err)
	}
	if err := p.store.Set(p.key(path), data); err != nil {
		return fmt.Errorf("offline store put %s: %w", path, err)
	}
	return nil
}

// markStale rewrites a day-record payload in place, injecting cached:true so
// consumers render the segments read-only. Nap data is preserved unchanged;
// the generic map keeps fields this daemon does not model.
func markStale(resp *Response) error {
	var payload map[string]interface{}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return err
	}
	payload["cached"] = true
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp.Body = body
	return nil
}
