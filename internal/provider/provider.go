// Package provider holds the pieces shared by every external capability:
// startup selection of the active provider and the errors providers return.
package provider

// Provider is implemented by every capability adapter. Configured reports
// whether the credentials the adapter needs are present.
type Provider interface {
	Name() string
	Configured() bool
}

// Select returns the first configured candidate in order. It is meant to be
// called once at startup; callers keep the result for the process lifetime.
func Select[P Provider](candidates ...P) (P, bool) {
	for _, c := range candidates {
		if c.Configured() {
			return c, true
		}
	}

	var zero P
	return zero, false
}

// Names lists candidate names with their configuration state, for status reports.
func Names[P Provider](candidates ...P) map[string]bool {
	out := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		out[c.Name()] = c.Configured()
	}
	return out
}
