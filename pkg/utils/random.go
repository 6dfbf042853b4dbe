package utils

import (
	"github.com/google/uuid"
)

// RequestIDHeader carries the id of a request across hops.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds ids accepted from clients.
const maxRequestIDLen = 64

// RequestID returns incoming when it is a usable client-supplied id and a
// fresh UUID otherwise.
func RequestID(incoming string) string {
	if incoming != "" && len(incoming) <= maxRequestIDLen && printable(incoming) {
		return incoming
	}
	return uuid.NewString()
}

func printable(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x21 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
