package core

import (
	cryptorand "crypto/rand"
	"strings"
)

// Atoi like strconv.Atoi, but returns 0 for empty and -1 for garbage.
func Atoi(s string) int {
	if s == "" {
		return 0
	}

	var n int
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return -1
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// Between - substring between sub1 and sub2, or empty.
func Between(s, sub1, sub2 string) string {
	i := strings.Index(s, sub1)
	if i < 0 {
		return ""
	}
	s = s[i+len(sub1):]

	if i = strings.Index(s, sub2); i >= 0 {
		return s[:i]
	}
	return s
}

const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandString of n chars in base36.
func RandString(n byte) string {
	b := make([]byte, n)
	if _, err := cryptorand.Read(b); err != nil {
		panic(err)
	}
	for i := byte(0); i < n; i++ {
		b[i] = digits[b[i]%byte(len(digits))]
	}
	return string(b)
}
