// ticker cycles stock quotes on the keyboard screen.
package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"kbscreen/pkg/conf"
	"kbscreen/pkg/device"
	"kbscreen/pkg/device/virtual"
	"kbscreen/pkg/proto"
	"kbscreen/pkg/quote"
	"kbscreen/pkg/screen"
)

var confPath = flag.String("conf", "", "config file path")
var tickers = flag.String("tickers", "AAPL,TSLA,NVDA", "comma separated symbols")
var rotate = flag.String("rotate", "5s", "time each symbol stays on screen")
var refresh = flag.String("refresh", "1m", "quote refresh interval")
var align = flag.String("align", "center", "text alignment")
var dryRun = flag.Bool("dry-run", false, "log instead of sending")
var debug = flag.Bool("debug", false, "dump quote requests")

func main() {
	flag.Parse()

	logger, _ := zap.NewDevelopment()

	rotateWait, err := time.ParseDuration(*rotate)
	if err != nil {
		log.Fatal(err)
	}
	refreshWait, err := time.ParseDuration(*refresh)
	if err != nil {
		log.Fatal(err)
	}
	al, err := screen.ParseAlign(*align)
	if err != nil {
		log.Fatal(err)
	}

	symbols := strings.Split(*tickers, ",")

	cfg, err := conf.Load(afero.NewOsFs(), *confPath)
	if err != nil {
		log.Fatal(err)
	}

	var link proto.Transport
	if *dryRun {
		link = virtual.Mock(logger)
	} else {
		h := proto.NewHID(&proto.Options{
			VendorID:   cfg.VendorID,
			ProductIDs: cfg.ProductIDs,
			UsagePage:  cfg.UsagePage,
			Usage:      cfg.Usage,
		})
		if err := h.Open(); err != nil {
			log.Fatal(err)
		}
		link = h
	}

	kb := device.New(link, cfg, logger)
	defer func() {
		if err := kb.Close(); err != nil {
			logger.With(zap.Error(err)).Info("close failed")
		}
	}()

	cli := quote.NewClient(logger)
	if *debug {
		cli.SetDebug()
	}

	quotes := fetchAll(cli, symbols, logger)
	next := 0

	rotateTimer := time.NewTimer(time.Nanosecond)
	defer rotateTimer.Stop()
	refreshTicker := time.NewTicker(refreshWait)
	defer refreshTicker.Stop()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-signals:
			logger.Info("shutting down")
			return
		case <-refreshTicker.C:
			quotes = fetchAll(cli, symbols, logger)
		case <-rotateTimer.C:
			if len(quotes) > 0 {
				q := quotes[next%len(quotes)]
				next++
				if err := kb.UploadText(q.Segments(), al); err != nil {
					logger.With(zap.Error(err)).Info("upload failed")
				}
			}
			rotateTimer.Reset(rotateWait)
		}
	}
}

func fetchAll(cli *quote.Client, symbols []string, logger *zap.Logger) []*quote.Quote {
	var out []*quote.Quote
	for _, s := range symbols {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		q, err := cli.Get(s)
		if err != nil {
			logger.With(zap.String("ticker", s), zap.Error(err)).Info("quote failed")
			continue
		}
		out = append(out, q)
	}
	return out
}
