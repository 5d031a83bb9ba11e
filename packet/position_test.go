package packet

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/playlytic/logstream/errs"
	"github.com/playlytic/logstream/format"
	"github.com/playlytic/logstream/record"
	"github.com/playlytic/logstream/wire"
)

func TestPositionEncoder_EmptyBatch(t *testing.T) {
	encoder, err := NewPositionEncoder()
	require.NoError(t, err)

	data, warnings := encoder.Encode(nil)

	require.Empty(t, warnings)
	require.Equal(t, []byte{'L', 'S', 'L', 'P', 0x02, 0x00, 0x00, 0x00, 0x00}, data)

	decoded, err := DecodePositions(data)
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestPositionEncoder_CoordinateTransform(t *testing.T) {
	encoder, err := NewPositionEncoder()
	require.NoError(t, err)

	data, warnings := encoder.Encode([]record.Position{
		{PlayerID: 1, Pos: record.Vec3{X: 1.0, Y: 2.0, Z: 3.0}},
	})
	require.Empty(t, warnings)

	decoded, err := DecodePositions(data)
	require.NoError(t, err)
	require.Len(t, decoded, 1)

	// wire.x = game.z*100, wire.y = game.x*100, wire.z = game.y*100
	require.Equal(t, float32(300.0), decoded[0].Pos.X)
	require.Equal(t, float32(100.0), decoded[0].Pos.Y)
	require.Equal(t, float32(200.0), decoded[0].Pos.Z)
}

func TestPositionEncoder_ExactLayout(t *testing.T) {
	encoder, err := NewPositionEncoder()
	require.NoError(t, err)

	data, warnings := encoder.Encode([]record.Position{
		{
			PlayerID:     -5,
			Pos:          record.Vec3{X: 1.0, Y: 2.0, Z: 3.0},
			OffsetMillis: 1500,
			Status:       []byte(`{"hp":10}`),
		},
	})
	require.Empty(t, warnings)

	le := binary.LittleEndian
	require.Equal(t, "LSLP", string(data[:4]))
	require.Equal(t, uint8(2), data[4])
	require.Equal(t, uint32(1), le.Uint32(data[5:9]))
	require.Equal(t, int32(-5), int32(le.Uint32(data[9:13])))
	require.Equal(t, uint64(1500), le.Uint64(data[25:33]))
	require.Equal(t, uint32(9), le.Uint32(data[33:37]))
	require.Equal(t, `{"hp":10}`, string(data[37:46]))
	require.Len(t, data, 46)
}

func TestPositionEncoder_RoundTrip(t *testing.T) {
	records := []record.Position{
		{PlayerID: 1, Pos: record.Vec3{X: 1.5, Y: -2.25, Z: 0.5}, OffsetMillis: 0, Status: []byte(`{"state":"alive"}`)},
		{PlayerID: 2, Pos: record.Vec3{X: 0, Y: 0, Z: 0}, OffsetMillis: 100},
		{PlayerID: 1, Pos: record.Vec3{X: 1.5, Y: -2.25, Z: 0.5}, OffsetMillis: 100}, // duplicate timestamp is legal
	}

	encoder, err := NewPositionEncoder()
	require.NoError(t, err)

	data, warnings := encoder.Encode(records)
	require.Empty(t, warnings)

	decoded, err := DecodePositions(data)
	require.NoError(t, err)
	require.Len(t, decoded, len(records))

	for i := range records {
		require.Equal(t, records[i].PlayerID, decoded[i].PlayerID, "record %d", i)
		require.Equal(t, records[i].Pos.Backend(), decoded[i].Pos, "record %d", i)
		require.Equal(t, records[i].OffsetMillis, decoded[i].OffsetMillis, "record %d", i)
		require.Equal(t, records[i].Status, decoded[i].Status, "record %d", i)
	}
}

func TestPositionEncoder_LegacyV1(t *testing.T) {
	encoder, err := NewPositionEncoder(WithPositionVersion(format.PositionV1))
	require.NoError(t, err)

	records := []record.Position{
		{PlayerID: 7, Pos: record.Vec3{X: 1, Y: 2, Z: 3}, OffsetMillis: 42, Status: []byte(`{"ignored":true}`)},
	}
	data, warnings := encoder.Encode(records)
	require.Empty(t, warnings)

	// v1 has no status field at all
	require.Equal(t, uint8(1), data[4])
	require.Len(t, data, wire.HeaderSize+positionFixedSize)

	decoded, err := DecodePositions(data)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	require.Equal(t, int32(7), decoded[0].PlayerID)
	require.Nil(t, decoded[0].Status)
}

func TestPositionEncoder_StatusClamp(t *testing.T) {
	encoder, err := NewPositionEncoder(WithPositionStatusCap(8))
	require.NoError(t, err)

	data, warnings := encoder.Encode([]record.Position{
		{PlayerID: 1, Status: []byte("0123456789abcdef")},
	})

	require.Len(t, warnings, 1)
	require.Equal(t, WarnStatusTruncated, warnings[0].Code)
	require.Equal(t, 0, warnings[0].Record)
	require.Equal(t, 16, warnings[0].Size)
	require.Equal(t, 8, warnings[0].Cap)

	decoded, err := DecodePositions(data)
	require.NoError(t, err)
	require.Equal(t, []byte("01234567"), decoded[0].Status)
}

func TestPositionEncoder_Deterministic(t *testing.T) {
	records := []record.Position{
		{PlayerID: 1, Pos: record.Vec3{X: 1, Y: 2, Z: 3}, OffsetMillis: 10, Status: []byte(`{"a":1}`)},
		{PlayerID: 2, Pos: record.Vec3{X: 4, Y: 5, Z: 6}, OffsetMillis: 20},
	}

	encoder, err := NewPositionEncoder()
	require.NoError(t, err)

	first, _ := encoder.Encode(records)
	second, _ := encoder.Encode(records)

	require.Equal(t, first, second)
}

func TestNewPositionEncoder_InvalidOptions(t *testing.T) {
	t.Run("Bad version", func(t *testing.T) {
		_, err := NewPositionEncoder(WithPositionVersion(9))
		require.ErrorIs(t, err, errs.ErrInvalidVersion)
	})

	t.Run("Bad cap", func(t *testing.T) {
		_, err := NewPositionEncoder(WithPositionStatusCap(0))
		require.ErrorIs(t, err, errs.ErrInvalidByteCap)
	})
}

func TestDecodePositions_Malformed(t *testing.T) {
	encoder, err := NewPositionEncoder()
	require.NoError(t, err)

	t.Run("Wrong kind", func(t *testing.T) {
		fo, errNew := NewFieldObjectEncoder()
		require.NoError(t, errNew)
		data, _ := fo.Encode(nil)

		_, err := DecodePositions(data)
		require.ErrorIs(t, err, errs.ErrKindMismatch)
	})

	t.Run("Record count larger than body", func(t *testing.T) {
		data, _ := encoder.Encode([]record.Position{{PlayerID: 1}})
		binary.LittleEndian.PutUint32(data[5:9], 1000)

		_, err := DecodePositions(data)
		require.ErrorIs(t, err, errs.ErrTruncated)
	})

	t.Run("Truncated mid-record", func(t *testing.T) {
		data, _ := encoder.Encode([]record.Position{{PlayerID: 1, Status: []byte("abcdef")}})

		_, err := DecodePositions(data[:len(data)-3])
		require.ErrorIs(t, err, errs.ErrTruncated)
	})

	t.Run("Trailing bytes", func(t *testing.T) {
		data, _ := encoder.Encode([]record.Position{{PlayerID: 1}})
		data = append(data, 0xFF)

		_, err := DecodePositions(data)
		require.ErrorIs(t, err, errs.ErrTrailingBytes)
	})

	t.Run("Unknown magic", func(t *testing.T) {
		_, err := DecodePositions([]byte("XXXX\x02\x00\x00\x00\x00"))
		require.ErrorIs(t, err, errs.ErrUnknownMagic)
	})

	t.Run("Unsupported version", func(t *testing.T) {
		_, err := DecodePositions([]byte("LSLP\x03\x00\x00\x00\x00"))
		require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
	})
}
