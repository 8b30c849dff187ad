package adapter

import (
	"net/http"
	"sort"

	"github.com/amishk599/lexiroute/internal/model"
)

// Options carries per-deployment overrides for the built-in variants.
type Options struct {
	BaseURLs map[model.ProviderKind]string // empty entries use each variant's default
	Referer  string                        // OpenRouter HTTP-Referer
	Title    string                        // OpenRouter X-Title
}

// Registry maps provider identifiers to adapters. It is built once and only read
// afterwards.
type Registry struct {
	adapters map[model.ProviderKind]*Adapter
}

// Variants returns the built-in vendor records.
func Variants(opts Options) []Variant {
	return []Variant{
		GeminiVariant(),
		DeepSeekVariant(),
		OpenRouterVariant(opts.Referer, opts.Title),
	}
}

// NewRegistry builds an adapter for every built-in variant, all sharing client.
func NewRegistry(opts Options, client *http.Client) *Registry {
	r := &Registry{adapters: make(map[model.ProviderKind]*Adapter)}
	for _, v := range Variants(opts) {
		r.adapters[v.Kind] = NewAdapter(v, opts.BaseURLs[v.Kind], client)
	}
	return r
}

// Lookup returns the adapter registered under providerID. Matching is exact.
func (r *Registry) Lookup(providerID string) (model.ProviderAdapter, bool) {
	a, ok := r.adapters[model.ProviderKind(providerID)]
	if !ok {
		return nil, false
	}
	return a, true
}

// DefaultModel returns the suggested model for providerID, or "" when the
// provider is unknown.
func (r *Registry) DefaultModel(providerID string) string {
	if a, ok := r.adapters[model.ProviderKind(providerID)]; ok {
		return a.DefaultModel()
	}
	return ""
}

// Adapters returns all registered adapters ordered by kind.
func (r *Registry) Adapters() []*Adapter {
	out := make([]*Adapter, 0, len(r.adapters))
	for _, a := range r.adapters {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind() < out[j].Kind() })
	return out
}
