package complaint_test

import (
	"regexp"
	"testing"

	"complaintwall/backend/internal/complaint"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var numberFormat = regexp.MustCompile(`^DCW-[A-Z0-9]+-[A-Z0-9]{5,}$`)

func TestNewNumber_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		number := complaint.NewNumber()
		assert.Regexp(t, numberFormat, number)
	}
}

func TestNewNumber_Uniqueness(t *testing.T) {
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		number := complaint.NewNumber()
		require.False(t, seen[number], "collision after %d generations: %s", i, number)
		seen[number] = true
	}
}

func BenchmarkNewNumber(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = complaint.NewNumber()
	}
}
