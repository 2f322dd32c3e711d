package spec

import "strings"

// NormalizeURN strips a trailing ":<digits>" version suffix from a device
// URN. The registry serves the same instance document for every version of
// a model, and output filenames are keyed by the unversioned form.
//
// A URN with no version suffix is returned unchanged, as is anything whose
// final segment is not purely numeric.
func NormalizeURN(urn string) string {
	urn = strings.TrimSpace(urn)

	idx := strings.LastIndex(urn, ":")
	if idx < 0 || idx == len(urn)-1 {
		return urn
	}

	suffix := urn[idx+1:]
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return urn
		}
	}
	return urn[:idx]
}
