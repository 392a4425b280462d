// Package quote fetches stock quotes for the ticker display.
package quote

import (
	"fmt"
	"image/color"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"kbscreen/pkg/screen"
)

const defaultBaseURL = "https://api.nasdaq.com"

func NewClient(logger *zap.Logger) *Client {
	cli := resty.New().
		SetBaseURL(defaultBaseURL).
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)").
		SetHeader("Accept", "application/json")

	return &Client{cli: cli, log: logger}
}

type Client struct {
	cli *resty.Client
	log *zap.Logger
}

func (c *Client) SetDebug() {
	c.cli.SetDebug(true)
}

func (c *Client) SetBaseURL(u string) {
	c.cli.SetBaseURL(u)
}

type Quote struct {
	Ticker    string
	LastSale  string
	PctChange string
	Up        bool
}

type apiResponse struct {
	Data struct {
		Records []struct {
			LastSale       string `json:"lastSale"`
			PctChange      string `json:"pctChange"`
			DeltaIndicator string `json:"deltaIndicator"`
		} `json:"records"`
	} `json:"data"`
}

func (c *Client) Get(ticker string) (*Quote, error) {
	var out apiResponse
	resp, err := c.cli.R().
		SetResult(&out).
		Get(fmt.Sprintf("/api/quote/basic?&symbol=%s%%7cstocks", ticker))
	if err != nil {
		return nil, errors.Wrap(err, "fetch quote")
	}
	if resp.IsError() {
		return nil, errors.Errorf("quote api status %s", resp.Status())
	}
	if len(out.Data.Records) == 0 {
		return nil, errors.Errorf("no records for %s", ticker)
	}

	r := out.Data.Records[0]
	c.log.With(
		zap.String("ticker", ticker),
		zap.String("last", r.LastSale),
		zap.String("change", r.PctChange),
	).Debug("quote")

	return &Quote{
		Ticker:    ticker,
		LastSale:  r.LastSale,
		PctChange: r.PctChange,
		Up:        r.DeltaIndicator == "up",
	}, nil
}

// Segments renders the quote in the ticker's display colors: symbol in
// yellow, change in green or red.
func (q *Quote) Segments() []screen.Segment {
	yellow := color.RGBA{R: 0xFF, G: 0xDD, A: 0xFF}
	up := color.RGBA{G: 0xFF, A: 0xFF}
	down := color.RGBA{R: 0xFF, A: 0xFF}

	return []screen.Segment{
		{Text: q.Ticker + " ", Color: yellow},
		{Text: q.PctChange, Color: lo.Ternary[color.Color](q.Up, up, down)},
	}
}
