package complaint

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"complaintwall/backend/internal/config"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewNumber produces a human-shareable complaint number: the prefix, a
// base36 encoding of the current unix-millis timestamp and a random
// base36 suffix, uppercased. Generation cannot fail; uniqueness is
// enforced by the store's unique index, with one regeneration retry on a
// collision (see Submit).
func NewNumber() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	var sb strings.Builder
	for i := 0; i < config.NumberSuffixLength; i++ {
		sb.WriteByte(base36[rand.IntN(len(base36))])
	}
	return strings.ToUpper(config.NumberPrefix + ts + "-" + sb.String())
}
