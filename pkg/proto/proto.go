package proto

// Transport is the write side of the keyboard link. The screen is reached
// through HID feature reports on the vendor interface; ReadAck fetches the
// status report the firmware answers a handshake with.
type Transport interface {
	SendFeature(p []byte) (int, error)
	ReadAck(p []byte) (int, error)
	Close() error
}
