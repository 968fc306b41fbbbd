package goquery

import (
	"sort"

	gpuprice "github.com/becloudready/gpu-price"
)

var _ gpuprice.ParserRegistry = (*Registry)(nil)

// Registry manages provider-specific parsers. Providers are selected
// explicitly by the caller; unlike a content sniffer, the registry never
// inspects markup to choose a parser.
type Registry struct {
	parsers map[gpuprice.Provider]gpuprice.Parser
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[gpuprice.Provider]gpuprice.Parser)}
}

// DefaultRegistry returns a Registry with all six provider parsers registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewCoreWeaveParser())
	r.Register(NewCrusoeParser())
	r.Register(NewDenvrParser())
	r.Register(NewLambdaParser())
	r.Register(NewNebiusParser())
	r.Register(NewRunPodParser())
	return r
}

// Get returns the parser for a provider.
// Returns nil if no parser is registered for the provider.
func (r *Registry) Get(provider gpuprice.Provider) gpuprice.Parser {
	return r.parsers[provider]
}

// Register adds a parser under its own provider identifier.
// If a parser is already registered for the provider, it is replaced.
func (r *Registry) Register(parser gpuprice.Parser) {
	r.parsers[parser.Provider()] = parser
}

// List returns all registered providers in sorted order.
func (r *Registry) List() []gpuprice.Provider {
	providers := make([]gpuprice.Provider, 0, len(r.parsers))
	for p := range r.parsers {
		providers = append(providers, p)
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i] < providers[j] })
	return providers
}
