package antivirus

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScanReply(t *testing.T) {
	assert.NoError(t, parseScanReply("stream: OK"))

	err := parseScanReply("stream: Eicar-Test-Signature FOUND")
	threat, ok := IsThreat(err)
	require.True(t, ok)
	assert.Equal(t, "Eicar-Test-Signature", threat)

	err = parseScanReply("INSTREAM size limit exceeded. ERROR")
	assert.ErrorIs(t, err, ErrScannerUnavailable)
	_, ok = IsThreat(err)
	assert.False(t, ok)
}

// fakeClamd accepts one INSTREAM session, collects the streamed bytes and
// answers with reply.
func fakeClamd(t *testing.T, reply string) (string, <-chan []byte) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	got := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		cmd := make([]byte, len("zINSTREAM\x00"))
		if _, err := io.ReadFull(conn, cmd); err != nil {
			return
		}
		var stream bytes.Buffer
		size := make([]byte, 4)
		for {
			if _, err := io.ReadFull(conn, size); err != nil {
				return
			}
			n := binary.BigEndian.Uint32(size)
			if n == 0 {
				break
			}
			if _, err := io.CopyN(&stream, conn, int64(n)); err != nil {
				return
			}
		}
		got <- stream.Bytes()
		_, _ = conn.Write([]byte(reply + "\x00"))
	}()
	return ln.Addr().String(), got
}

func TestClamAVScan(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), chunkSize+10)

	t.Run("clean", func(t *testing.T) {
		addr, got := fakeClamd(t, "stream: OK")
		err := NewClamAV(addr, time.Second).Scan(context.Background(), "a.png", payload)
		require.NoError(t, err)
		assert.Equal(t, payload, <-got)
	})

	t.Run("infected", func(t *testing.T) {
		addr, _ := fakeClamd(t, "stream: Eicar-Test-Signature FOUND")
		err := NewClamAV(addr, time.Second).Scan(context.Background(), "a.png", []byte("X5O!P%@AP"))
		threat, ok := IsThreat(err)
		require.True(t, ok)
		assert.Equal(t, "Eicar-Test-Signature", threat)
	})

	t.Run("unreachable", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := ln.Addr().String()
		ln.Close()

		err = NewClamAV(addr, 200*time.Millisecond).Scan(context.Background(), "a.png", []byte("data"))
		assert.True(t, errors.Is(err, ErrScannerUnavailable))
	})
}
