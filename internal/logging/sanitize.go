// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package logging

import (
	"fmt"
	"strings"
)

// maxSanitizedLength bounds how much of an untrusted value is logged.
const maxSanitizedLength = 256

// SanitizeValue escapes control characters in untrusted input before it is
// logged, so a crafted query string or upstream payload cannot forge log lines.
// Values longer than 256 bytes are truncated.
func SanitizeValue(s string) string {
	truncated := false
	if len(s) > maxSanitizedLength {
		s = s[:maxSanitizedLength]
		truncated = true
	}

	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	if truncated {
		result.WriteString("...")
	}
	return result.String()
}
