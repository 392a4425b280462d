package proto

import (
	"github.com/karalabe/hid"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("keyboard not found")

type Options struct {
	VendorID   uint16
	ProductIDs []uint16
	UsagePage  uint16
	Usage      uint16
}

// usbDevice is the slice of the hid device surface this package uses.
type usbDevice interface {
	SendFeatureReport(b []byte) (int, error)
	GetFeatureReport(b []byte) (int, error)
	Close() error
}

func NewHID(opts *Options) *HID {
	return &HID{opts: opts}
}

type HID struct {
	opts *Options
	dev  usbDevice
}

// Devices lists every interface matching the configured vendor/product ids.
func (h *HID) Devices() []hid.DeviceInfo {
	var infos []hid.DeviceInfo
	for _, pid := range h.opts.ProductIDs {
		found, _ := hid.Enumerate(h.opts.VendorID, pid)
		infos = append(infos, found...)
	}
	return infos
}

// Open picks the vendor interface of the first matching keyboard. Matching
// on usage page/usage selects the screen endpoint instead of the key matrix,
// so the keyboard keeps working while the device is open.
func (h *HID) Open() error {
	for _, info := range h.Devices() {
		if info.UsagePage != h.opts.UsagePage || info.Usage != h.opts.Usage {
			continue
		}

		dev, err := info.Open()
		if err != nil {
			return errors.Wrap(err, "open hid device")
		}
		h.dev = dev
		return nil
	}
	return ErrNotFound
}

func (h *HID) SendFeature(p []byte) (int, error) {
	if h.dev == nil {
		return 0, ErrNotFound
	}
	return h.dev.SendFeatureReport(p)
}

func (h *HID) ReadAck(p []byte) (int, error) {
	if h.dev == nil {
		return 0, ErrNotFound
	}
	return h.dev.GetFeatureReport(p)
}

func (h *HID) Close() error {
	if h.dev == nil {
		return nil
	}
	err := h.dev.Close()
	h.dev = nil
	return err
}
