package adapters

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewAdapters_DoNotMutateCallerConfig(t *testing.T) {
	config := testConfig()
	config.UseHeadlessBrowser = false

	poki := NewPokiAdapter(config, logrus.New())
	defer poki.Close()
	gd := NewGameDistributionAdapter(config, logrus.New())
	defer gd.Close()
	gamePix := NewGamePixAdapter(config, logrus.New())
	defer gamePix.Close()

	// The caller's http-only choice must survive adapter construction
	assert.False(t, config.UseHeadlessBrowser)
}

func TestNewAdapters_FetchModeIsPerAdapter(t *testing.T) {
	config := testConfig()
	config.UseHeadlessBrowser = true

	gd := NewGameDistributionAdapter(config, logrus.New())
	defer gd.Close()
	assert.True(t, gd.renderListings)

	// Constructing a plain-HTTP adapter on the same config must not flip
	// the fetch mode of an already live adapter
	poki := NewPokiAdapter(config, logrus.New())
	defer poki.Close()

	assert.False(t, poki.renderListings)
	assert.True(t, gd.renderListings)
	assert.True(t, gd.Config().UseHeadlessBrowser)
}
