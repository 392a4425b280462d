package sensors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPUPercentTestMode(t *testing.T) {
	for i := 0; i < 20; i++ {
		pct, err := CPUPercent(true)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, pct, 0)
		assert.Less(t, pct, 100)
	}
}

func TestDeviceTempTestMode(t *testing.T) {
	c, err := DeviceTemp("whatever", true)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, c, 0)
	assert.Less(t, c, 100)
}
