package fins

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUDPTransportSendReceive(t *testing.T) {
	peer, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1")})
	require.NoError(t, err)
	defer peer.Close()

	go func() {
		buf := make([]byte, 4096)
		n, from, err := peer.ReadFromUDP(buf)
		if err != nil {
			return
		}
		reply := append([]byte{}, buf[:n]...)
		peer.WriteToUDP(reply, from)
	}()

	peerAddr := peer.LocalAddr().(*net.UDPAddr)
	transport := NewUDPTransport("127.0.0.1", peerAddr.Port)
	require.NoError(t, transport.Connect())
	defer transport.Close()

	resp, err := transport.Execute([]byte("ping"), time.Second)
	require.NoError(t, err)
	assert.Equal(t, []byte("ping"), resp)
}

func TestUDPTransportTimeout(t *testing.T) {
	peer, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1")})
	require.NoError(t, err)
	defer peer.Close()
	peerAddr := peer.LocalAddr().(*net.UDPAddr)

	transport := NewUDPTransport("127.0.0.1", peerAddr.Port)
	require.NoError(t, transport.Connect())
	defer transport.Close()

	_, err = transport.Execute([]byte("ping"), 100*time.Millisecond)
	require.Error(t, err)
	var timeoutErr *TransportTimeoutError
	assert.ErrorAs(t, err, &timeoutErr)
}

func TestUDPTransportPeerMismatch(t *testing.T) {
	peer, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1")})
	require.NoError(t, err)
	defer peer.Close()
	peerAddr := peer.LocalAddr().(*net.UDPAddr)

	spoofer, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1")})
	require.NoError(t, err)
	defer spoofer.Close()

	transport := NewUDPTransport("127.0.0.1", peerAddr.Port)
	require.NoError(t, transport.Connect())
	defer transport.Close()

	clientAddr := transport.conn.LocalAddr().(*net.UDPAddr)
	go func() {
		time.Sleep(20 * time.Millisecond)
		spoofer.WriteToUDP([]byte("spoofed"), clientAddr)
	}()

	_, err = transport.Execute([]byte("ping"), 150*time.Millisecond)
	require.Error(t, err)
	var mismatchErr *PeerMismatchError
	assert.ErrorAs(t, err, &mismatchErr)
}

func TestUDPTransportNotReadyWhenClosed(t *testing.T) {
	transport := NewUDPTransport("127.0.0.1", 9600)
	_, err := transport.Execute([]byte("ping"), time.Second)
	require.Error(t, err)
	var notReady *TransportNotReadyError
	assert.ErrorAs(t, err, &notReady)
}
