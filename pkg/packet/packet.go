// Package packet splits a frame into the fixed-size chunks the keyboard
// accepts over HID. Pure code, no I/O, fully deterministic.
package packet

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// Command tags what kind of payload a chunk carries. The values come from
// captures of the stock software; confirm against hardware before adding new
// ones.
type Command byte

const (
	Image Command = 0x25
	Text  Command = 0x26
	Frame Command = 0x27
)

func (c Command) String() string {
	switch c {
	case Image:
		return "image"
	case Text:
		return "text"
	case Frame:
		return "frame"
	}
	return fmt.Sprintf("command(0x%02x)", byte(c))
}

// HeaderLen is the chunk header size in bytes.
const HeaderLen = 8

var (
	ErrSizeMismatch = errors.New("buffer size mismatch")
	ErrEmptyPayload = errors.New("empty payload")
	ErrBadSequence  = errors.New("broken packet sequence")
)

// Packet is one HID report worth of frame data. Concatenating all payloads
// in index order reproduces the original buffer (plus the zero padding of
// the final chunk).
type Packet struct {
	Cmd     Command
	Index   uint16
	Total   uint16
	Payload []byte
}

// Bytes renders the wire form: the 8-byte header followed by the payload.
//
//	0     command
//	1     reserved
//	2..3  chunk index, little endian
//	4..5  total chunk count, little endian
//	6     reserved
//	7     checksum over bytes 0..6
func (p Packet) Bytes() []byte {
	bs := make([]byte, HeaderLen+len(p.Payload))
	bs[0] = byte(p.Cmd)
	binary.LittleEndian.PutUint16(bs[2:], p.Index)
	binary.LittleEndian.PutUint16(bs[4:], p.Total)
	bs[7] = Checksum(bs[:7])
	copy(bs[HeaderLen:], p.Payload)
	return bs
}

// Checksum is the device's additive rule: 0xff minus the low byte of the
// byte sum, and 0 for an all-zero input.
func Checksum(bs []byte) byte {
	var sum int
	for _, b := range bs {
		sum += int(b)
	}
	if sum == 0 {
		return 0
	}
	return byte(0xff - sum&0xff)
}

// Packetize slices data into chunkSize-byte payloads in order. Every header
// carries the total count, the final chunk is zero-padded to chunkSize.
func Packetize(data []byte, cmd Command, chunkSize int) ([]Packet, error) {
	if chunkSize <= 0 {
		return nil, errors.Errorf("chunk size %d out of range", chunkSize)
	}
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}

	total := (len(data) + chunkSize - 1) / chunkSize
	if total > 0xFFFF {
		return nil, errors.Errorf("%d chunks exceed the index field", total)
	}

	pkts := make([]Packet, 0, total)
	for i := 0; i < total; i++ {
		payload := make([]byte, chunkSize)
		copy(payload, data[i*chunkSize:])
		pkts = append(pkts, Packet{
			Cmd:     cmd,
			Index:   uint16(i),
			Total:   uint16(total),
			Payload: payload,
		})
	}
	return pkts, nil
}

// Reassemble is the inverse of Packetize, used to verify chunking. It checks
// the sequence is contiguous from zero with a consistent total and returns
// the first n payload bytes.
func Reassemble(pkts []Packet, n int) ([]byte, error) {
	if len(pkts) == 0 {
		return nil, ErrEmptyPayload
	}

	var out []byte
	for i, p := range pkts {
		if int(p.Index) != i || int(p.Total) != len(pkts) {
			return nil, errors.Wrapf(ErrBadSequence, "packet %d has index %d total %d", i, p.Index, p.Total)
		}
		out = append(out, p.Payload...)
	}

	if n > len(out) {
		return nil, errors.Wrapf(ErrSizeMismatch, "want %d bytes, chunks carry %d", n, len(out))
	}
	return out[:n], nil
}
