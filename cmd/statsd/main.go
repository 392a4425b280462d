// statsd pushes host stats (CPU load, an optional temperature probe) to the
// keyboard's status line on an interval.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"kbscreen/pkg/conf"
	"kbscreen/pkg/device"
	"kbscreen/pkg/device/virtual"
	"kbscreen/pkg/proto"
	"kbscreen/pkg/sensors"
)

var confPath = flag.String("conf", "", "config file path")
var tempKey = flag.String("temp-key", "", "sensor key to report, empty to skip")
var interval = flag.String("interval", "10s", "update interval")
var testMode = flag.Bool("test", false, "send random readings")
var dryRun = flag.Bool("dry-run", false, "log instead of sending")
var listSensors = flag.Bool("list-sensors", false, "print sensor keys and exit")

func main() {
	flag.Parse()

	if *listSensors {
		printSensors()
		return
	}

	fx.New(
		fx.Provide(
			func() (*conf.Config, error) {
				return conf.Load(afero.NewOsFs(), *confPath)
			},
			zap.NewDevelopment,
			newTransport,
			device.New,
		),
		fx.Invoke(poll),
	).Run()
}

func printSensors() {
	temps, err := sensors.Temperatures()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for key, temp := range temps {
		fmt.Printf("%-24s %.1f°C\n", key, temp)
	}
}

func newTransport(cfg *conf.Config, logger *zap.Logger) (proto.Transport, error) {
	if *dryRun {
		return virtual.Mock(logger), nil
	}

	link := proto.NewHID(&proto.Options{
		VendorID:   cfg.VendorID,
		ProductIDs: cfg.ProductIDs,
		UsagePage:  cfg.UsagePage,
		Usage:      cfg.Usage,
	})
	return link, link.Open()
}

func poll(kb *device.Keyboard, logger *zap.Logger, lifecycle fx.Lifecycle) error {
	wait, err := time.ParseDuration(*interval)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	stopped := make(chan struct{})

	lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go loop(kb, logger, wait, done, stopped)
			return nil
		},
		OnStop: func(context.Context) error {
			close(done)
			<-stopped
			return kb.Close()
		},
	})
	return nil
}

func loop(kb *device.Keyboard, logger *zap.Logger, wait time.Duration, done <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(wait)
	defer ticker.Stop()

	for {
		push(kb, logger)
		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

func push(kb *device.Keyboard, logger *zap.Logger) {
	if pct, err := sensors.CPUPercent(*testMode); err != nil {
		logger.With(zap.Error(err)).Info("cpu reading failed")
	} else if err := kb.SetCPU(pct); err != nil {
		logger.With(zap.Error(err)).Info("cpu push failed")
	}

	if *tempKey == "" {
		return
	}
	if c, err := sensors.DeviceTemp(*tempKey, *testMode); err != nil {
		logger.With(zap.Error(err)).Info("temperature reading failed")
	} else if err := kb.SetTemp(c); err != nil {
		logger.With(zap.Error(err)).Info("temperature push failed")
	}
}
