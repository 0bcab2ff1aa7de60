package domain

// BuildConversionReplayKey namespaces an Idempotency-Key header for the
// conversion replay cache.
func BuildConversionReplayKey(idempotencyKey string) string {
	return "conversion:" + idempotencyKey
}
