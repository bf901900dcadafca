package finssim_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidarsson/finsgo/fins"
	"github.com/vidarsson/finsgo/finssim"
)

func newClient(t *testing.T, sim *finssim.Simulator) *fins.Client {
	t.Helper()
	addr := sim.Addr()
	client, err := fins.NewClient(fins.Config{
		Host:           addr.IP.String(),
		Port:           addr.Port,
		TimeoutSeconds: 2,
		Destination:    fins.NodeAddress{Network: 0, Node: 1, Unit: 0},
		Source:         fins.NodeAddress{Network: 0, Node: 2, Unit: 0},
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestReadCIOWord(t *testing.T) {
	sim, err := finssim.New("127.0.0.1:0")
	require.NoError(t, err)
	defer sim.Close()

	sim.WriteWord("CIO", 10, 20)
	client := newClient(t, sim)

	env := client.Read("10", "INT16", 0, 0)
	require.Equal(t, fins.StatusSuccess, env.Status)
	assert.Equal(t, []interface{}{int16(20)}, env.Data)
	assert.Equal(t, "CIO", env.Meta.MemoryArea)
	assert.Equal(t, uint16(10), env.Meta.WordAddress)
	assert.Equal(t, 1, env.Meta.ReadChunks)
}

func TestReadCIOBit(t *testing.T) {
	sim, err := finssim.New("127.0.0.1:0")
	require.NoError(t, err)
	defer sim.Close()

	sim.SetBit("CIO", 2, 1, true)
	client := newClient(t, sim)

	env := client.Read("2.01", "INT16", 0, 0)
	require.Equal(t, fins.StatusSuccess, env.Status)
	assert.Equal(t, []interface{}{int16(1)}, env.Data)
	assert.Equal(t, "bit", env.Meta.AddressType)
	assert.Equal(t, 1, env.Meta.BitIndex)
}

func TestReadDataMemory(t *testing.T) {
	sim, err := finssim.New("127.0.0.1:0")
	require.NoError(t, err)
	defer sim.Close()

	sim.WriteWord("Data Memory", 100, 12)
	client := newClient(t, sim)

	env := client.Read("D100", "INT16", 0, 0)
	require.Equal(t, fins.StatusSuccess, env.Status)
	assert.Equal(t, []interface{}{int16(12)}, env.Data)
	assert.Equal(t, "Data Memory", env.Meta.MemoryArea)
}

func TestReadFloatAcrossTwoWords(t *testing.T) {
	sim, err := finssim.New("127.0.0.1:0")
	require.NoError(t, err)
	defer sim.Close()

	// 3.142f as FINS wire bytes: two big-endian words, low word first.
	bits := math.Float32bits(3.142)
	sim.WriteWord("Data Memory", 200, uint16(bits))
	sim.WriteWord("Data Memory", 201, uint16(bits>>16))
	client := newClient(t, sim)

	env := client.Read("D200", "FLOAT", 0, 0)
	require.Equal(t, fins.StatusSuccess, env.Status)
	values := env.Data.([]interface{})
	require.Len(t, values, 1)
	assert.InDelta(t, 3.142, values[0].(float32), 1e-3)
}

func TestReadOutOfRangeAddressReturnsError(t *testing.T) {
	sim, err := finssim.New("127.0.0.1:0")
	require.NoError(t, err)
	defer sim.Close()

	client := newClient(t, sim)
	env := client.Read("D9000", "INT16", 0, 0) // beyond the simulator's modeled area size
	assert.Equal(t, fins.StatusError, env.Status)
	assert.Contains(t, env.Message, "range")
}

func TestClockRead(t *testing.T) {
	sim, err := finssim.New("127.0.0.1:0")
	require.NoError(t, err)
	defer sim.Close()

	client := newClient(t, sim)
	env := client.ClockRead(0)
	require.Equal(t, fins.StatusSuccess, env.Status)
	iso, ok := env.Data.(string)
	require.True(t, ok)
	_, err = time.Parse("2006-01-02T15:04:05", iso)
	assert.NoError(t, err)
}

func TestCPUIdentityAndStatus(t *testing.T) {
	sim, err := finssim.New("127.0.0.1:0")
	require.NoError(t, err)
	defer sim.Close()

	client := newClient(t, sim)

	idEnv := client.CPUIdentityRead(0)
	require.Equal(t, fins.StatusSuccess, idEnv.Status)
	id := idEnv.Data.(fins.Identity)
	assert.Equal(t, "FINSSIM", id.UnitName)

	statusEnv := client.CPUStatusRead(0)
	require.Equal(t, fins.StatusSuccess, statusEnv.Status)
	status := statusEnv.Data.(fins.CPUStatus)
	assert.Equal(t, "Run", status.StatusLabel)
	assert.Equal(t, "Run", status.ModeLabel)
}

func TestTransportTimeoutAgainstSilentPeer(t *testing.T) {
	sim, err := finssim.New("127.0.0.1:0")
	require.NoError(t, err)
	sim.Close() // closed: nothing will answer

	client, err := fins.NewClient(fins.Config{
		Host:           "127.0.0.1",
		Port:           sim.Addr().Port,
		TimeoutSeconds: 0.2,
	})
	require.NoError(t, err)
	defer client.Close()

	env := client.Read("D0", "INT16", 0, 0)
	assert.Equal(t, fins.StatusError, env.Status)
}

func TestReadExceedingSingleChunk(t *testing.T) {
	sim, err := finssim.New("127.0.0.1:0")
	require.NoError(t, err)
	defer sim.Close()

	const words = 1500 // > 990, forces a two-chunk read
	for i := 0; i < words; i++ {
		sim.WriteWord("Data Memory", uint16(i), uint16(i))
	}
	client := newClient(t, sim)

	env := client.Read("D0", "UINT16", words, 0)
	require.Equal(t, fins.StatusSuccess, env.Status)
	assert.Equal(t, 2, env.Meta.ReadChunks)

	values := env.Data.([]interface{})
	require.Len(t, values, words)
	assert.Equal(t, uint16(0), values[0])
	assert.Equal(t, uint16(999), values[999])
	assert.Equal(t, uint16(1499), values[1499])
}

func TestProgramAreaRoundTrip(t *testing.T) {
	sim, err := finssim.New("127.0.0.1:0")
	require.NoError(t, err)
	defer sim.Close()

	client := newClient(t, sim)

	dir := t.TempDir()
	src := filepath.Join(dir, "program.bin")
	payload := make([]byte, 3000)
	for i := range payload {
		payload[i] = byte(i)
	}
	require.NoError(t, os.WriteFile(src, payload, 0o644))

	writeEnv := client.ProgramAreaWrite(src, 0)
	require.Equal(t, fins.StatusSuccess, writeEnv.Status)

	statusEnv := client.CPUStatusRead(0)
	require.Equal(t, fins.StatusSuccess, statusEnv.Status)
	assert.Equal(t, "Run", statusEnv.Data.(fins.CPUStatus).ModeLabel)

	dst := filepath.Join(dir, "readback.bin")
	readEnv := client.ProgramAreaRead(dst, 0)
	require.Equal(t, fins.StatusSuccess, readEnv.Status)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestModeRunAndProgram(t *testing.T) {
	sim, err := finssim.New("127.0.0.1:0")
	require.NoError(t, err)
	defer sim.Close()

	client := newClient(t, sim)

	programEnv := client.ModeProgram(0)
	require.Equal(t, fins.StatusSuccess, programEnv.Status)
	assert.Equal(t, true, programEnv.Data)

	status := client.CPUStatusRead(0).Data.(fins.CPUStatus)
	assert.Equal(t, "Program", status.ModeLabel)

	runEnv := client.ModeRun(0)
	require.Equal(t, fins.StatusSuccess, runEnv.Status)

	status = client.CPUStatusRead(0).Data.(fins.CPUStatus)
	assert.Equal(t, "Run", status.ModeLabel)
}
