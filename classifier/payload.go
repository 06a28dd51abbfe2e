package classifier

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrLeakageDetected means a constructed model payload carried a market
// field. This is a programming defect, never a transient condition: it is
// fatal and non-retryable.
var ErrLeakageDetected = errors.New("classification payload contains a disallowed market field")

// disallowedKeys are the market fields classification must never observe.
var disallowedKeys = map[string]struct{}{
	"price":            {},
	"price_usd":        {},
	"price_change":     {},
	"price_change_pct": {},
	"impact":           {},
	"market_impact":    {},
	"market_cap":       {},
	"volume":           {},
	"return":           {},
}

// WorkedExample is one fixed few-shot example grounding the model.
type WorkedExample struct {
	Text      string `json:"text"`
	Category  string `json:"category"`
	Rationale string `json:"rationale"`
}

// Payload is the exact request body sent to the external classification
// service. The type intentionally has no price or impact fields; CheckPayload
// is the second line of defense behind that structural guarantee.
type Payload struct {
	Text      string          `json:"text"`
	Author    string          `json:"author"`
	Timestamp string          `json:"timestamp"`
	Examples  []WorkedExample `json:"examples"`
}

// Marshal serializes the payload and runs the leakage guard over the result.
func (p Payload) Marshal() ([]byte, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	if err := CheckPayload(raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// CheckPayload scans a serialized payload for disallowed keys at any depth.
// A hit returns ErrLeakageDetected; nothing is ever silently stripped.
func CheckPayload(raw []byte) error {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("leakage check: payload is not valid JSON: %w", err)
	}
	return scanForDisallowed(decoded)
}

func scanForDisallowed(v any) error {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if _, bad := disallowedKeys[k]; bad {
				return fmt.Errorf("%w: key %q", ErrLeakageDetected, k)
			}
			if err := scanForDisallowed(child); err != nil {
				return err
			}
		}
	case []any:
		for _, child := range t {
			if err := scanForDisallowed(child); err != nil {
				return err
			}
		}
	}
	return nil
}

// Fingerprint returns the SHA-256 hex digest of the exact serialized payload.
func Fingerprint(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
