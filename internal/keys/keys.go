// Package keys provides small context-key helpers shared by arena and vlog,
// grounded on core/context/keys: a private key-set chain lets every package
// attach its own context value without colliding with another package's key,
// without exporting the underlying key type.
package keys

import "context"

type keySetType int

const keySet = keySetType(0)

type link struct {
	key  interface{}
	next *link
}

// WithValue attaches key/value to ctx and records key in the context's key
// chain, mirroring core/context/keys.WithValue.
func WithValue(ctx context.Context, key, value interface{}) context.Context {
	ctx = context.WithValue(ctx, key, value)
	l := &link{key: key}
	if prev, ok := ctx.Value(keySet).(*link); ok {
		l.next = prev
	}
	return context.WithValue(ctx, keySet, l)
}

// Keys returns every key previously attached via WithValue, most recent
// first, deduplicated.
func Keys(ctx context.Context) []interface{} {
	seen := map[interface{}]bool{}
	var out []interface{}
	for l, _ := ctx.Value(keySet).(*link); l != nil; l = l.next {
		if !seen[l.key] {
			seen[l.key] = true
			out = append(out, l.key)
		}
	}
	return out
}
