package test

import (
	"math/rand"
	"strings"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomASCIIString returns a string of letters and digits with a length in [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen + rand.Intn(maxLen-minLen+1)

	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(asciiLetters[rand.Intn(len(asciiLetters))])
	}
	return b.String()
}

// RandomEmail returns a unique-looking address on example.com.
func RandomEmail() string {
	return strings.ToLower(RandomASCIIString(7, 14)) + "@example.com"
}

// RandomPassword returns a password long enough to pass registration checks.
func RandomPassword() string {
	return RandomASCIIString(16, 32)
}

// RandomAmount returns a positive amount with two decimal places below max.
func RandomAmount(max int) float64 {
	if max < 2 {
		max = 2
	}
	return float64(100+rand.Intn((max-1)*100)) / 100
}
