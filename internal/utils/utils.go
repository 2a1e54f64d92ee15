package utils

import (
	"math/rand"
	"strings"
)

// Room codes are short uppercase alphanumerics, skipping characters that
// read ambiguously on a shared screen (0/O, 1/I).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const RoomCodeLength = 6

// GenerateCode returns a random room code of n characters.
func GenerateCode(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return b.String()
}
