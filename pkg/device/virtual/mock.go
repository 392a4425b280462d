package virtual

import (
	"go.uber.org/zap"
)

// Mock is a drop-in transport for dry runs: reports are logged, never sent.
func Mock(logger *zap.Logger) *Mocker {
	return &Mocker{l: logger}
}

type Mocker struct {
	l *zap.Logger
}

func (m *Mocker) SendFeature(p []byte) (int, error) {
	m.l.With(
		zap.Int("len", len(p)),
		zap.Uint8("cmd", cmdOf(p)),
	).Debug("send-feature")
	return len(p), nil
}

func (m *Mocker) ReadAck(p []byte) (int, error) {
	m.l.Debug("read-ack")
	return len(p), nil
}

func (m *Mocker) Close() error {
	m.l.Debug("close")
	return nil
}

// cmdOf skips the report id byte.
func cmdOf(p []byte) uint8 {
	if len(p) > 1 {
		return p[1]
	}
	return 0
}
