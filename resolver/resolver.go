// Package resolver maps a shape descriptor to its ordered list of
// applicable validation rules, with process-wide caching.
package resolver

import (
	"github.com/gomodel/validator/cache"
	"github.com/gomodel/validator/rules"
	"github.com/gomodel/validator/shape"
)

// Provider yields the rules applicable to a shape descriptor.
// Providers are consulted in registration order; each provider's rules
// keep their declared order.
type Provider interface {
	Rules(d *shape.Descriptor) []rules.Rule
}

// DescriptorProvider yields the rules attached to the descriptor itself.
type DescriptorProvider struct{}

// Rules implements Provider.
func (DescriptorProvider) Rules(d *shape.Descriptor) []rules.Rule {
	return d.Rules
}

// RequiredProvider synthesizes a Required rule for shapes flagged
// IsRequired that do not already carry one.
type RequiredProvider struct{}

// Rules implements Provider.
func (RequiredProvider) Rules(d *shape.Descriptor) []rules.Rule {
	if !d.IsRequired {
		return nil
	}
	for _, r := range d.Rules {
		if rules.IsRequired(r) {
			return nil
		}
	}
	return []rules.Rule{rules.Required{}}
}

// Cache resolves and caches the ordered rule list per distinct shape
// descriptor. It is the only state shared across concurrent validation
// calls: population is get-or-populate-once per descriptor, and entries
// are never clobbered.
//
// Rules are normalized to their asynchronous capability once, at list
// build time, so callers never type-test per check.
type Cache struct {
	providers []Provider
	lists     *cache.Cache[*shape.Descriptor, []rules.AsyncRule]
}

// New creates a resolver cache. With no providers it consults
// DescriptorProvider then RequiredProvider.
func New(providers ...Provider) *Cache {
	if len(providers) == 0 {
		providers = []Provider{DescriptorProvider{}, RequiredProvider{}}
	}
	return &Cache{
		providers: providers,
		lists:     cache.New[*shape.Descriptor, []rules.AsyncRule](),
	}
}

// Rules returns the ordered applicable rules for d, building and caching
// the list on first use. Descriptors are keyed by identity: two distinct
// descriptors never share a list even when structurally equal.
func (c *Cache) Rules(d *shape.Descriptor) []rules.AsyncRule {
	if d == nil {
		return nil
	}
	list, _ := c.lists.GetOrCompute(d, func() ([]rules.AsyncRule, error) {
		return c.build(d), nil
	})
	return list
}

func (c *Cache) build(d *shape.Descriptor) []rules.AsyncRule {
	var list []rules.AsyncRule
	for _, p := range c.providers {
		for _, r := range p.Rules(d) {
			list = append(list, rules.Async(r))
		}
	}
	return list
}

// TypeRules returns the cross-field rules attached to the type itself,
// normalized to their asynchronous capability. These are not cached: the
// flat facade is the only consumer and calls are rare relative to member
// rule resolution.
func (c *Cache) TypeRules(d *shape.Descriptor) []rules.AsyncRule {
	if d == nil || len(d.TypeRules) == 0 {
		return nil
	}
	list := make([]rules.AsyncRule, 0, len(d.TypeRules))
	for _, r := range d.TypeRules {
		list = append(list, rules.Async(r))
	}
	return list
}

// Stats returns cache statistics.
func (c *Cache) Stats() cache.Stats {
	return c.lists.Stats()
}
