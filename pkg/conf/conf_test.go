package conf

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := Default()

	assert.Equal(t, uint16(0x3151), c.VendorID)
	assert.Equal(t, []uint16{0x4010, 0x4015}, c.ProductIDs)
	assert.Equal(t, 56, c.ChunkSize())
	assert.Equal(t, 1080, c.FrameBytes())
}

func TestLoadWithoutPath(t *testing.T) {
	c, err := Load(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadOverridesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "kb.yaml", []byte(
		"vendor_id: 0x1234\npacket_gap_ms: 1\nreport:\n  size: 32\n  header_len: 8\n",
	), 0644))

	c, err := Load(fs, "kb.yaml")
	require.NoError(t, err)

	assert.Equal(t, uint16(0x1234), c.VendorID)
	assert.Equal(t, 1, c.PacketGapMs)
	assert.Equal(t, 24, c.ChunkSize())
	// untouched keys keep their defaults
	assert.Equal(t, uint16(0xFFFF), c.UsagePage)
	assert.Equal(t, 60, c.Screen.Width)
}

func TestLoadRejectsHeaderOnlyReports(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "kb.yaml", []byte(
		"report:\n  size: 8\n  header_len: 8\n",
	), 0644))

	_, err := Load(fs, "kb.yaml")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "nope.yaml")
	assert.Error(t, err)
}
