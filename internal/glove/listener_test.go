package glove

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glove_go/internal/models"
)

// waitFor aguarda até a condição ser satisfeita ou o timeout expirar
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestListenerReceivesDatagrams(t *testing.T) {
	store := NewStore()

	// Porta 0: o sistema escolhe uma porta livre
	listener := NewListener("127.0.0.1", []int{0}, store, false)
	require.NoError(t, listener.Start())
	defer listener.Stop()

	addrs := listener.LocalAddrs()
	require.Len(t, addrs, 1)

	conn, err := net.Dial("udp", addrs[0].String())
	require.NoError(t, err)
	defer conn.Close()

	// Enviar uma amostra de articulação válida
	datagram := jointDatagram("/glove/left/joint/7", [7]float32{0.1, 0.2, 0.3, 1, 0, 0, 0})
	_, err = conn.Write(datagram)
	require.NoError(t, err)

	ok := waitFor(t, 2*time.Second, func() bool {
		return store.PacketCount(models.HandLeft) == 1
	})
	require.True(t, ok, "o datagrama deveria ter sido aceito")

	sample := store.Joint(models.HandLeft, 7)
	assert.InDelta(t, 0.1, sample.Position.X, 1e-6)
}

func TestListenerCountsMalformedDatagrams(t *testing.T) {
	store := NewStore()

	listener := NewListener("127.0.0.1", []int{0}, store, false)
	require.NoError(t, listener.Start())
	defer listener.Stop()

	conn, err := net.Dial("udp", listener.LocalAddrs()[0].String())
	require.NoError(t, err)
	defer conn.Close()

	// Datagrama malformado: contado e descartado, escuta continua
	_, err = conn.Write([]byte{0xde, 0xad, 0xbe, 0xef})
	require.NoError(t, err)

	ok := waitFor(t, 2*time.Second, func() bool {
		return store.DecodeErrors() == 1
	})
	require.True(t, ok, "o datagrama malformado deveria ter sido contado")

	// Um datagrama válido na sequência ainda é aceito
	_, err = conn.Write(jointDatagram("/glove/right/joint/0", [7]float32{0, 0, 0, 1, 0, 0, 0}))
	require.NoError(t, err)

	ok = waitFor(t, 2*time.Second, func() bool {
		return store.PacketCount(models.HandRight) == 1
	})
	assert.True(t, ok)
}

func TestListenerDeviceAnnounce(t *testing.T) {
	store := NewStore()

	listener := NewListener("127.0.0.1", []int{0}, store, false)
	require.NoError(t, listener.Start())
	defer listener.Stop()

	conn, err := net.Dial("udp", listener.LocalAddrs()[0].String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write(deviceDatagram("/glove/right/device", "Reality Glove (R)"))
	require.NoError(t, err)

	ok := waitFor(t, 2*time.Second, func() bool {
		return store.Device(models.HandRight) == "Reality Glove (R)"
	})
	assert.True(t, ok)
}

func TestListenerBindFailureIsFatal(t *testing.T) {
	// Ocupar uma porta para forçar a falha de bind
	occupied, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	require.NoError(t, err)
	defer occupied.Close()

	port := occupied.LocalAddr().(*net.UDPAddr).Port

	store := NewStore()
	listener := NewListener("127.0.0.1", []int{port}, store, false)

	err = listener.Start()
	require.Error(t, err)
	assert.False(t, listener.IsRunning())
}

func TestListenerPartialBindClosesOpenSockets(t *testing.T) {
	// Ocupar a segunda porta: a primeira abre mas deve ser fechada no rollback
	occupied, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	require.NoError(t, err)
	defer occupied.Close()

	busyPort := occupied.LocalAddr().(*net.UDPAddr).Port

	store := NewStore()
	listener := NewListener("127.0.0.1", []int{0, busyPort}, store, false)

	err = listener.Start()
	require.Error(t, err)
	assert.False(t, listener.IsRunning())
	assert.Empty(t, listener.LocalAddrs())
}

func TestListenerStopIsIdempotent(t *testing.T) {
	store := NewStore()
	listener := NewListener("127.0.0.1", []int{0}, store, false)

	require.NoError(t, listener.Start())
	listener.Stop()
	listener.Stop() // segunda chamada não deve bloquear nem entrar em pânico

	assert.False(t, listener.IsRunning())
}
