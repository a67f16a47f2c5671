package config

// Notice records one use of a deprecated option. Classification is pure:
// nothing here prints. The pipeline performs the single reporting step.
type Notice struct {
	Key         string
	Replacement string
}

// DeprecatedUses classifies the given option keys against the table and
// returns a notice per deprecated key, deduplicated, in first-use order.
func (t *Table) DeprecatedUses(keys []string) []Notice {
	var notices []Notice
	seen := make(map[string]bool)
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true
		spec, ok := t.Lookup(key)
		if !ok || spec.Deprecated == "" {
			continue
		}
		notices = append(notices, Notice{Key: key, Replacement: spec.Deprecated})
	}
	return notices
}
