package offline

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"babydbg/internal/providers"
)

// Install pre-populates the store with the shell asset manifest. Any asset
// failing to fetch or store aborts the install, mirroring an all-or-nothing
// precache step.
func (p *Policy) Install(ctx context.Context) error {
	for _, path := range p.shell {
		resp, err := p.fetcher.Do(ctx, &Request{Method: http.MethodGet, Path: path})
		if err != nil {
			return fmt.Errorf("install %s: %w", path, err)
		}
		if !resp.OK() {
			return fmt.Errorf("install %s: upstream status %d", path, resp.Status)
		}
		if err := p.put(path, resp); err != nil {
			return fmt.Errorf("install: %w", err)
		}
	}
	p.logger.Infof(providers.TypeApp, "offline store installed %d shell assets for %s", len(p.shell), p.version)
	return nil
}

// Activate wholesale-purges every entry not belonging to the current version
// tag. There is no TTL and no selective eviction: replacement is
// all-or-nothing per deploy.
func (p *Policy) Activate() {
	prefix := p.version + "|"
	purged := 0
	for _, key := range p.store.Keys() {
		if !strings.HasPrefix(key, prefix) {
			p.store.Delete(key)
			purged++
		}
	}
	if purged > 0 {
		p.logger.Infof(providers.TypeApp, "offline store activated %s, purged %d stale entries", p.version, purged)
	}
}
