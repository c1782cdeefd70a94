// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cfemail decodes the XOR email protection that CDN proxies inject
// into pages as data-cfemail attributes. The payload is a hex string whose
// first byte is the key; every following byte is one character XORed with it.
package cfemail

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DecodeError reports a payload that is not an even-length hex string.
type DecodeError struct {
	Input  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding protected email %q: %s", e.Input, e.Reason)
}

// Decode reverses the protection scheme. It does not check that the result
// looks like an email address; callers discard results without an "@".
func Decode(encoded string) (string, error) {
	if len(encoded) < 2 {
		return "", &DecodeError{Input: encoded, Reason: "missing key byte"}
	}
	if len(encoded)%2 != 0 {
		return "", &DecodeError{Input: encoded, Reason: "odd length"}
	}
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		return "", &DecodeError{Input: encoded, Reason: "non-hex character"}
	}

	key := raw[0]
	var b strings.Builder
	b.Grow(len(raw) - 1)
	for _, c := range raw[1:] {
		// Each byte maps to the code point of the same value, as browsers do.
		b.WriteRune(rune(c ^ key))
	}
	return b.String(), nil
}

// Encode protects s with key. Only bytes of s are used, so s should be ASCII.
func Encode(s string, key byte) string {
	out := make([]byte, 0, len(s)+1)
	out = append(out, key)
	for i := 0; i < len(s); i++ {
		out = append(out, s[i]^key)
	}
	return hex.EncodeToString(out)
}
