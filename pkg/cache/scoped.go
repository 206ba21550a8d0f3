package cache

// ScopedKeyer prefixes every key of an inner Keyer. Scoping keys by program
// version keeps results of an older extractor from being served after an
// upgrade:
//
//	keyer := cache.NewScopedKeyer(nil, "v"+buildinfo.Version+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ImportsKey(contentHash string, opts ImportsKeyOpts) string {
	return k.prefix + k.inner.ImportsKey(contentHash, opts)
}
