package offline

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"babydbg/internal/structures"
)

// UpstreamFetcher performs real HTTP calls against the collaborator API.
type UpstreamFetcher struct {
	base   string
	client *http.Client
}

func NewUpstreamFetcher(conf *structures.Config) FetcherInterface {
	return &UpstreamFetcher{
		base:   strings.TrimRight(conf.Upstream.BaseURL, "/"),
		client: &http.Client{Timeout: conf.Upstream.Timeout},
	}
}

func (f *UpstreamFetcher) Do(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, f.base+req.Path, body)
	if err != nil {
		return nil, err
	}
	for key, values := range req.Header {
		httpReq.Header[key] = values
	}
	httpResp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{
		Status: httpResp.StatusCode,
		Header: httpResp.Header,
		Body:   respBody,
	}, nil
}
