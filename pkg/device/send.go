package device

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// send writes one feature report, prefixed with report id 0x00 the way
// hidapi expects.
func (k *Keyboard) send(bs []byte) (int, error) {
	report := make([]byte, 1+len(bs))
	copy(report[1:], bs)

	start := time.Now()
	n, err := k.link.SendFeature(report)
	if err != nil {
		return n, err
	}

	ext := ""
	if len(bs) <= 16 {
		ext = fmt.Sprintf("%x", bs)
	}

	k.logger.With(
		zap.Int("sent", n),
		zap.String("cost", time.Since(start).String()),
		zap.String("data", ext),
	).Debug("transfer")

	return n, nil
}
