package cache

// Keyer derives cache keys for extraction results.
type Keyer interface {
	// ImportsKey identifies the imports found in a source with the given
	// content hash under the given options.
	ImportsKey(contentHash string, opts ImportsKeyOpts) string
}

// ImportsKeyOpts are the extraction settings that change the result.
// Relative imports depend on where the file lives, so its path is part of
// the key too.
type ImportsKeyOpts struct {
	Path         string   `json:"path"`
	Prefixes     []string `json:"prefixes,omitempty"`
	OnlyExternal bool     `json:"only_external,omitempty"`
	SkipSubs     bool     `json:"skip_subs,omitempty"`
}

// DefaultKeyer hashes the content hash and options together.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) ImportsKey(contentHash string, opts ImportsKeyOpts) string {
	return hashKey("imports", contentHash, opts)
}
