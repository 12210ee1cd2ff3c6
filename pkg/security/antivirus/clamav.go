package antivirus

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// clamd rejects INSTREAM chunks above StreamMaxLength (25MB by default), so
// data is sent in pieces.
const chunkSize = 1 << 20

// ClamAV talks to a clamd daemon over TCP ("host:3310") or a unix socket
// ("/var/run/clamav/clamd.sock").
type ClamAV struct {
	network string
	address string
	timeout time.Duration
}

func NewClamAV(address string, timeout time.Duration) *ClamAV {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	network := "tcp"
	if strings.HasPrefix(address, "/") {
		network = "unix"
	}
	return &ClamAV{network: network, address: address, timeout: timeout}
}

func (c *ClamAV) dial(ctx context.Context) (net.Conn, error) {
	d := net.Dialer{Timeout: c.timeout}
	conn, err := d.DialContext(ctx, c.network, c.address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScannerUnavailable, err)
	}
	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)
	return conn, nil
}

// Ping checks that clamd answers.
func (c *ClamAV) Ping(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zPING\x00")); err != nil {
		return fmt.Errorf("%w: %v", ErrScannerUnavailable, err)
	}
	reply, err := readReply(conn)
	if err != nil {
		return err
	}
	if reply != "PONG" {
		return fmt.Errorf("%w: unexpected reply %q", ErrScannerUnavailable, reply)
	}
	return nil
}

// Scan streams data with INSTREAM. It returns nil for a clean file, a
// *ThreatError for an infected one and ErrScannerUnavailable otherwise.
func (c *ClamAV) Scan(ctx context.Context, filename string, data []byte) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zINSTREAM\x00")); err != nil {
		return fmt.Errorf("%w: %v", ErrScannerUnavailable, err)
	}

	size := make([]byte, 4)
	for start := 0; start < len(data); start += chunkSize {
		end := start + chunkSize
		if end > len(data) {
			end = len(data)
		}
		binary.BigEndian.PutUint32(size, uint32(end-start))
		if _, err := conn.Write(size); err != nil {
			return fmt.Errorf("%w: %v", ErrScannerUnavailable, err)
		}
		if _, err := conn.Write(data[start:end]); err != nil {
			return fmt.Errorf("%w: %v", ErrScannerUnavailable, err)
		}
	}
	// Zero-length chunk ends the stream
	if _, err := conn.Write([]byte{0, 0, 0, 0}); err != nil {
		return fmt.Errorf("%w: %v", ErrScannerUnavailable, err)
	}

	reply, err := readReply(conn)
	if err != nil {
		return err
	}
	return parseScanReply(reply)
}

func readReply(conn net.Conn) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(conn, 4096))
	if err != nil && len(raw) == 0 {
		return "", fmt.Errorf("%w: %v", ErrScannerUnavailable, err)
	}
	return strings.TrimSpace(strings.TrimRight(string(raw), "\x00")), nil
}

// parseScanReply interprets "stream: OK", "stream: <name> FOUND" and
// "<message> ERROR".
func parseScanReply(reply string) error {
	body := reply
	if i := strings.Index(reply, ":"); i >= 0 {
		body = strings.TrimSpace(reply[i+1:])
	}
	switch {
	case body == "OK":
		return nil
	case strings.HasSuffix(body, " FOUND"):
		return &ThreatError{Threat: strings.TrimSuffix(body, " FOUND")}
	default:
		return fmt.Errorf("%w: %s", ErrScannerUnavailable, reply)
	}
}
