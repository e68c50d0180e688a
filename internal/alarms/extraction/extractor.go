// Package extraction turns raw events into normalized alarm records. Each
// product/environment combination has one extraction strategy; the provider
// selects it, falling back to the product's prod variant when the exact
// combination is not registered.
package extraction

import (
	"fmt"
	"strings"

	"github.com/alarmscope/alarmscope/internal/alarms"
)

// Extractor is one extraction strategy. Extract returns nil when the event
// is not an alarm (an expected miss, not an error).
type Extractor interface {
	Extract(msg *alarms.Message) *alarms.AlarmRecord
}

// Provider maps (product, environment) to a concrete extractor. The set of
// variants is closed and known at startup.
type Provider struct {
	extractors map[string]Extractor
}

// NewProvider returns a provider with the default extractor registry:
// SEND channels post attachment-style alarms, INTEROP channels post
// file-style alarms.
func NewProvider() *Provider {
	p := &Provider{extractors: make(map[string]Extractor)}
	p.Register("SEND", "prod", NewAttachmentExtractor())
	p.Register("SEND", "uat", NewAttachmentExtractor())
	p.Register("INTEROP", "prod", NewFileExtractor())
	p.Register("INTEROP", "test", NewFileExtractor())
	return p
}

// Register binds an extractor to a product/environment combination.
func (p *Provider) Register(product, environment string, e Extractor) {
	p.extractors[key(product, environment)] = e
}

// Get returns the extractor for the combination, falling back to the
// product's prod variant. A product with no variant at all is a
// configuration error.
func (p *Provider) Get(product, environment string) (Extractor, error) {
	if e, ok := p.extractors[key(product, environment)]; ok {
		return e, nil
	}
	if e, ok := p.extractors[key(product, "prod")]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("no message extractor registered for product %s", product)
}

// Supports reports whether the combination resolves to an extractor.
func (p *Provider) Supports(product, environment string) bool {
	_, err := p.Get(product, environment)
	return err == nil
}

func key(product, environment string) string {
	return strings.ToUpper(product) + "_" + strings.ToUpper(environment)
}
