// Package device drives the keyboard's embedded screen: frames are
// normalized, chunked and streamed as HID feature reports, small status
// values (clock, temperature, CPU) go out as single reports.
package device

import (
	"encoding/binary"
	"image"
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"kbscreen/pkg/conf"
	"kbscreen/pkg/packet"
	"kbscreen/pkg/proto"
	"kbscreen/pkg/screen"
)

// Single-report command bytes, from captures of the stock software.
const (
	cmdBegin = 0xa5
	cmdCPU   = 0x22
	cmdTime  = 0x28
	cmdTemp  = 0x2a
)

func New(link proto.Transport, cfg *conf.Config, logger *zap.Logger) *Keyboard {
	return &Keyboard{link: link, cfg: cfg, logger: logger}
}

type Keyboard struct {
	link   proto.Transport
	cfg    *conf.Config
	logger *zap.Logger

	// Progress toggles the terminal progress bar during uploads.
	Progress bool
}

func (k *Keyboard) Close() error {
	return k.link.Close()
}

func (k *Keyboard) UploadImage(img image.Image) error {
	buf, err := screen.Normalize(img)
	if err != nil {
		return err
	}
	return k.Upload(NewJob(packet.Image, buf))
}

func (k *Keyboard) UploadText(segments []screen.Segment, align screen.Align) error {
	img, err := screen.RenderText(segments, align)
	if err != nil {
		return err
	}

	buf, err := screen.Normalize(img)
	if err != nil {
		return err
	}
	return k.Upload(NewJob(packet.Text, buf))
}

// UploadFrames sends an animation as one job per frame, in order. A failed
// frame aborts the rest.
func (k *Keyboard) UploadFrames(frames []image.Image) error {
	for i, img := range frames {
		buf, err := screen.Normalize(img)
		if err != nil {
			return errors.Wrapf(err, "frame %d", i)
		}
		if err := k.Upload(NewJob(packet.Frame, buf)); err != nil {
			return errors.Wrapf(err, "frame %d", i)
		}
	}
	return nil
}

// Upload streams one frame to the panel: handshake, then every chunk in
// index order. The first write error aborts the job; partial uploads are
// not resumed.
func (k *Keyboard) Upload(job Job) error {
	if job.Buf == nil || job.Buf.Len() == 0 {
		return packet.ErrEmptyPayload
	}
	if job.Buf.Len() != k.cfg.FrameBytes() {
		return errors.Wrapf(packet.ErrSizeMismatch,
			"frame is %d bytes, panel wants %d", job.Buf.Len(), k.cfg.FrameBytes())
	}

	pkts, err := packet.Packetize(job.Buf.Bytes(), job.Cmd, k.cfg.ChunkSize())
	if err != nil {
		return err
	}

	log := k.logger.With(
		zap.String("job", job.ID),
		zap.Stringer("cmd", job.Cmd),
		zap.Int("packets", len(pkts)),
	)
	log.Debug("upload start")

	if err := k.begin(job, len(pkts)); err != nil {
		return errors.Wrap(err, "begin upload")
	}

	var bar *progressbar.ProgressBar
	if k.Progress {
		bar = progressbar.Default(int64(len(pkts)), "Uploading")
	}

	gap := time.Duration(k.cfg.PacketGapMs) * time.Millisecond
	start := time.Now()
	var sent int
	for _, p := range pkts {
		n, err := k.send(p.Bytes())
		if err != nil {
			return errors.Wrapf(err, "packet %d/%d", p.Index+1, p.Total)
		}
		sent += n
		if bar != nil {
			_ = bar.Add(1)
		}
		time.Sleep(gap)
	}

	log.With(
		zap.String("size", bytesize.New(float64(sent)).String()),
		zap.String("cost", time.Since(start).String()),
	).Info("upload done")
	return nil
}

// begin announces the incoming frame (payload length, chunk count, panel
// dims, command kind) and drains the firmware's status report.
func (k *Keyboard) begin(job Job, total int) error {
	bs := make([]byte, k.cfg.Report.Size)
	bs[0] = cmdBegin
	binary.LittleEndian.PutUint16(bs[2:], uint16(job.Buf.Len()))
	binary.LittleEndian.PutUint16(bs[4:], uint16(total))
	bs[6] = byte(k.cfg.Screen.Width)
	bs[7] = byte(k.cfg.Screen.Height)
	bs[8] = byte(job.Cmd)
	bs[9] = packet.Checksum(bs[:9])

	if _, err := k.send(bs); err != nil {
		return err
	}

	ack := make([]byte, k.cfg.Report.Size+1)
	if _, err := k.link.ReadAck(ack); err != nil {
		return errors.Wrap(err, "read ack")
	}
	return nil
}

// SetTime pushes the wall clock to the screen's status line.
func (k *Keyboard) SetTime(t time.Time) error {
	bs := make([]byte, k.cfg.Report.Size)
	bs[0] = cmdTime
	bs[7] = packet.Checksum(bs[:7])
	binary.BigEndian.PutUint16(bs[8:], uint16(t.Year()))
	bs[10] = byte(t.Month())
	bs[11] = byte(t.Day())
	bs[12] = byte(t.Hour())
	bs[13] = byte(t.Minute())
	bs[14] = byte(t.Second())

	_, err := k.send(bs)
	return err
}

// SetTemp pushes a temperature reading in degrees celsius.
func (k *Keyboard) SetTemp(celsius int) error {
	if celsius < 0 || celsius > 99 {
		return errors.Errorf("temperature %d out of range", celsius)
	}

	bs := make([]byte, k.cfg.Report.Size)
	bs[0] = cmdTemp
	bs[7] = packet.Checksum(bs[:7])
	bs[8] = byte(celsius)

	_, err := k.send(bs)
	return err
}

// SetCPU pushes a CPU load percentage. The fixed bytes after the header
// configure the gauge and come straight from a capture.
func (k *Keyboard) SetCPU(percent int) error {
	if percent < 0 || percent > 99 {
		return errors.Errorf("cpu percentage %d out of range", percent)
	}

	bs := make([]byte, k.cfg.Report.Size)
	bs[0] = cmdCPU
	bs[7] = packet.Checksum(bs[:7])
	copy(bs[8:], []byte{0x63, 0x00, 0x7f, 0x00, 0x04, 0x00, 0x08, 0x00})
	bs[16] = byte(percent)

	_, err := k.send(bs)
	return err
}
