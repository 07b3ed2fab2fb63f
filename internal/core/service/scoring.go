package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/yol1/scoring-system/internal/core/domain"
)

// scoreModulus maps the hash prefix onto [MinScore, MaxScore].
const scoreModulus = domain.MaxScore - domain.MinScore + 1

// DeterministicScore derives a score in [0,100] from code: the first 8 hex
// characters of the SHA-256 digest are parsed as an unsigned integer and
// reduced modulo 101. The same code always yields the same value.
func DeterministicScore(code string) int {
	sum := sha256.Sum256([]byte(code))
	prefix := hex.EncodeToString(sum[:4])

	// 8 hex characters always fit in 32 bits.
	n, _ := strconv.ParseUint(prefix, 16, 32)
	return domain.MinScore + int(n%scoreModulus)
}
