package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter_Status(t *testing.T) {
	tests := []struct {
		name    string
		counter Counter
		want    Status
	}{
		{"empty", Counter00, Empty},
		{"missed", Counter10, NotCovered},
		{"covered", Counter01, FullyCovered},
		{"partly", NewCounter(2, 3), PartlyCovered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.counter.Status())
		})
	}
}

func TestCounter_Add(t *testing.T) {
	c := NewCounter(1, 2).Add(NewCounter(3, 4))
	assert.Equal(t, NewCounter(4, 6), c)
	assert.Equal(t, 10, c.Total())
	assert.InDelta(t, 0.6, c.Ratio(), 1e-9)
	assert.Equal(t, "6/10", c.String())
}

func TestCounter_RatioEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Counter00.Ratio())
}

func TestStatus_Or(t *testing.T) {
	assert.Equal(t, PartlyCovered, NotCovered.Or(FullyCovered))
	assert.Equal(t, NotCovered, Empty.Or(NotCovered))
	assert.Equal(t, FullyCovered, FullyCovered.Or(FullyCovered))
	assert.Equal(t, "PARTLY_COVERED", PartlyCovered.String())
}
