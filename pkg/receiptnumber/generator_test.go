package receiptnumber_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clancy-dev/receipts-api/pkg/receiptnumber"
)

func TestNextFormat(t *testing.T) {
	g := receiptnumber.New()
	for i := 0; i < 100; i++ {
		n := g.Next()
		assert.True(t, receiptnumber.IsValid(n), n)
	}
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	a := receiptnumber.NewSeeded(42)
	b := receiptnumber.NewSeeded(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, receiptnumber.IsValid("REC-123456"))
	assert.False(t, receiptnumber.IsValid("REC-12345"))
	assert.False(t, receiptnumber.IsValid("REC-1234567"))
	assert.False(t, receiptnumber.IsValid("INV-123456"))
	assert.False(t, receiptnumber.IsValid("rec-123456"))
}
