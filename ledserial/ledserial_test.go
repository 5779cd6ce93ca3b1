package ledserial

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomingPackets(t *testing.T) {
	ctx := ReadContext{NumLEDs: 2}

	packets := []IncomingPacket{
		InitializePacket{NumLEDs: 169},
		ClearPacket{},
		SetPacket{Pix: []uint8{1, 2, 3, 4, 5, 6}},
	}

	var buf bytes.Buffer
	for _, p := range packets {
		require.NoError(t, WriteIncomingPacket(&buf, p))
	}

	for _, want := range packets {
		got, err := ReadIncomingPacket(&buf, ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ReadIncomingPacket(&buf, ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestOutgoingPackets(t *testing.T) {
	packets := []OutgoingPacket{
		AckPacket{IncomingPacketType: TypeSetPacket},
		ErrorPacket{Message: "bad pixels"},
		PanicPacket{},
		LogPacket{Message: "hello"},
		LogPacket{},
	}

	var buf bytes.Buffer
	for _, p := range packets {
		require.NoError(t, WriteOutgoingPacket(&buf, p))
	}

	for _, want := range packets {
		got, err := ReadOutgoingPacket(&buf)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestInitializeFraming(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteIncomingPacket(&buf, InitializePacket{NumLEDs: 0x0102}))

	b := buf.Bytes()
	require.Len(t, b, 1+2+4)
	assert.Equal(t, []byte{byte(TypeInitializePacket), 0x02, 0x01}, b[:3])
}

func TestChecksumMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutgoingPacket(&buf, LogPacket{Message: "hello"}))

	b := buf.Bytes()
	b[len(b)-5] ^= 0xFF // last message byte

	_, err := ReadOutgoingPacket(bytes.NewReader(b))
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestSetBeforeInitialize(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteIncomingPacket(&buf, SetPacket{Pix: []uint8{1, 2, 3}}))

	_, err := ReadIncomingPacket(&buf, ReadContext{})
	assert.Error(t, err)
}

func TestReadContextBuffer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteIncomingPacket(&buf, SetPacket{Pix: []uint8{1, 2, 3}}))

	reuse := make([]uint8, 16)
	p, err := ReadIncomingPacket(&buf, ReadContext{NumLEDs: 1, Buffer: reuse})
	require.NoError(t, err)

	set := p.(SetPacket)
	assert.Equal(t, []uint8{1, 2, 3}, set.Pix)
	assert.Equal(t, []uint8{1, 2, 3}, reuse[:3])
}

func TestUnknownPacketType(t *testing.T) {
	_, err := ReadOutgoingPacket(bytes.NewReader([]byte{0xFE, 0, 0, 0, 0}))
	assert.Error(t, err)

	assert.Equal(t, "IncomingPacketType(9)", IncomingPacketType(9).String())
	assert.Equal(t, "ack", TypeAckPacket.String())
}
