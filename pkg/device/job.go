package device

import (
	"github.com/rs/xid"

	"kbscreen/pkg/packet"
	"kbscreen/pkg/screen"
)

// Job is one frame bound for the panel, tagged with the command kind. It is
// created per invocation and consumed by a single Upload.
type Job struct {
	ID  string
	Cmd packet.Command
	Buf *screen.PixelBuffer
}

func NewJob(cmd packet.Command, buf *screen.PixelBuffer) Job {
	return Job{ID: xid.New().String(), Cmd: cmd, Buf: buf}
}
