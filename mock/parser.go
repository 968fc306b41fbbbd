package mock

import (
	gpuprice "github.com/becloudready/gpu-price"
)

var _ gpuprice.Parser = (*Parser)(nil)

// Parser is a mock implementation of gpuprice.Parser.
type Parser struct {
	ParseFn    func(html string) ([]gpuprice.Row, error)
	ProviderFn func() gpuprice.Provider
}

func (p *Parser) Parse(html string) ([]gpuprice.Row, error) {
	return p.ParseFn(html)
}

func (p *Parser) Provider() gpuprice.Provider {
	return p.ProviderFn()
}
