package quote

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func stubAPI(t *testing.T, body string, status int) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(zap.NewNop())
	c.SetBaseURL(srv.URL)
	return c
}

func TestGetQuote(t *testing.T) {
	c := stubAPI(t, `{"data":{"records":[
		{"lastSale":"$123.45","pctChange":"+1.2%","deltaIndicator":"up"}
	]}}`, http.StatusOK)

	q, err := c.Get("NVDA")
	require.NoError(t, err)

	assert.Equal(t, "NVDA", q.Ticker)
	assert.Equal(t, "$123.45", q.LastSale)
	assert.Equal(t, "+1.2%", q.PctChange)
	assert.True(t, q.Up)
}

func TestGetQuoteNoRecords(t *testing.T) {
	c := stubAPI(t, `{"data":{"records":[]}}`, http.StatusOK)

	_, err := c.Get("NOPE")
	assert.Error(t, err)
}

func TestGetQuoteHTTPError(t *testing.T) {
	c := stubAPI(t, `{}`, http.StatusBadGateway)

	_, err := c.Get("NVDA")
	assert.Error(t, err)
}

func TestSegments(t *testing.T) {
	up := &Quote{Ticker: "AAPL", PctChange: "+0.5%", Up: true}
	segs := up.Segments()
	require.Len(t, segs, 2)
	assert.Equal(t, "AAPL ", segs[0].Text)
	assert.Equal(t, "+0.5%", segs[1].Text)

	_, g, _, _ := segs[1].Color.RGBA()
	assert.NotZero(t, g)

	down := &Quote{Ticker: "AAPL", PctChange: "-0.5%"}
	r, g2, _, _ := down.Segments()[1].Color.RGBA()
	assert.NotZero(t, r)
	assert.Zero(t, g2)
}
