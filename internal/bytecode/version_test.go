package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const v11 = 3<<16 | 45

// classBytes builds a minimal class file header with the given version.
func classBytes(version int) []byte {
	b := []byte{0xCA, 0xFE, 0xBA, 0xBE, 0, 0, 0, 0, 0, 1}
	b[4] = byte(version >> 24)
	b[5] = byte(version >> 16)
	b[6] = byte(version >> 8)
	b[7] = byte(version)
	return b
}

func TestGetAndSet(t *testing.T) {
	b := classBytes(v11)
	assert.Equal(t, 45, Get(b))

	Set(b, 46)
	assert.Equal(t, 46, Get(b))
	assert.Equal(t, []byte{0xCA, 0xFE, 0xBA, 0xBE}, b[:4])
}

func TestGetSigned(t *testing.T) {
	b := classBytes(0)
	b[6], b[7] = 0xFF, 0xFE
	assert.Equal(t, -2, Get(b))
}

func TestDowngradeIfNeeded(t *testing.T) {
	t.Run("lower version returns original", func(t *testing.T) {
		b := classBytes(MaxVersion - 1)
		got := DowngradeIfNeeded(MaxVersion-1, b)
		assert.Same(t, &b[0], &got[0])
	})

	t.Run("max version returns original", func(t *testing.T) {
		b := classBytes(MaxVersion)
		got := DowngradeIfNeeded(MaxVersion, b)
		assert.Same(t, &b[0], &got[0])
	})

	t.Run("1.1 anomaly compares low byte", func(t *testing.T) {
		b := classBytes(v11)
		got := DowngradeIfNeeded(v11, b)
		assert.Same(t, &b[0], &got[0])
	})

	t.Run("higher version returns patched copy", func(t *testing.T) {
		b := classBytes(MaxVersion + 1)
		got := DowngradeIfNeeded(MaxVersion+1, b)

		require.Len(t, got, len(b))
		assert.NotSame(t, &b[0], &got[0])
		assert.Equal(t, MaxVersion, Get(got))
		assert.Equal(t, MaxVersion+1, Get(b))
		assert.Equal(t, b[8:], got[8:])
	})
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(classBytes(MaxVersion)))
	err := Check([]byte{0xCA, 0xFE})
	assert.ErrorIs(t, err, ErrTruncated)
}
