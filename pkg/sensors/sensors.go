// Package sensors reads the host stats the keyboard's status line can show.
package sensors

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
)

// CPUPercent samples total CPU load over one second. Test mode skips the
// sampling and returns a random value.
func CPUPercent(testMode bool) (int, error) {
	if testMode {
		return rand.Intn(100), nil
	}

	pcts, err := cpu.Percent(time.Second, false)
	if err != nil {
		return 0, errors.Wrap(err, "cpu percent")
	}
	if len(pcts) == 0 {
		return 0, errors.New("no cpu readings")
	}
	return int(math.Round(pcts[0])), nil
}

// DeviceTemp returns the reading for key, or 0 when the key is unknown.
func DeviceTemp(key string, testMode bool) (int, error) {
	if testMode {
		return rand.Intn(100), nil
	}

	temps, err := Temperatures()
	if err != nil {
		return 0, err
	}

	if t, ok := temps[key]; ok {
		return int(math.Round(t)), nil
	}
	return 0, nil
}

// Temperatures maps "<sensor>-<index>" keys to current readings. A single
// sensor can expose several probes, the index keeps them distinct.
func Temperatures() (map[string]float64, error) {
	stats, err := host.SensorsTemperatures()
	if err != nil {
		return nil, errors.Wrap(err, "read sensors")
	}

	out := make(map[string]float64, len(stats))
	seen := make(map[string]int, len(stats))
	for _, s := range stats {
		key := fmt.Sprintf("%s-%d", s.SensorKey, seen[s.SensorKey])
		seen[s.SensorKey]++
		out[key] = s.Temperature
	}
	return out, nil
}
