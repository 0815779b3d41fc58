package value

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix enables future algorithm migration.
const (
	DomainHistoryEntry = "nush/history/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// HistoryEntryID computes the content-addressed ID for a history entry.
// The ID is stable across restarts given the same run token, source text,
// and result - duplicate writes of the same run are idempotent.
func HistoryEntryID(runToken, source string, result Value) (string, error) {
	canonical, err := MarshalCanonical(result)
	if err != nil {
		return "", fmt.Errorf("canonical marshal result: %w", err)
	}

	payload := NewRecord(
		[]string{"run_token", "source", "result"},
		[]Value{
			NewString(runToken, UnknownSpan()),
			NewString(source, UnknownSpan()),
			NewString(string(canonical), UnknownSpan()),
		},
		UnknownSpan(),
	)

	data, err := MarshalCanonical(payload)
	if err != nil {
		return "", fmt.Errorf("canonical marshal payload: %w", err)
	}
	return hashWithDomain(DomainHistoryEntry, data), nil
}
