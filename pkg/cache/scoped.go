package cache

// ScopedKeyer wraps a Keyer with a prefix so separate projects or tenants
// sharing one backend (a redis instance, a shared cache dir) get disjoint
// namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every generated
// key. A nil inner keyer falls back to the default.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ReportKey generates a prefixed report key.
func (k *ScopedKeyer) ReportKey(systemHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(systemHash, opts)
}

// DiagramKey generates a prefixed diagram key.
func (k *ScopedKeyer) DiagramKey(circuitHash, format string) string {
	return k.prefix + k.inner.DiagramKey(circuitHash, format)
}
