package strings

// MaskedValue replaces secrets in displayed configuration.
const MaskedValue = "********"

// Mask hides a secret for display. An empty secret stays empty so that
// "not set" remains visible.
func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	return MaskedValue
}
