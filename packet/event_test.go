package packet

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/playlytic/logstream/errs"
	"github.com/playlytic/logstream/format"
	"github.com/playlytic/logstream/record"
)

func TestEventEncoder_VersionSelection(t *testing.T) {
	encoder, err := NewEventEncoder()
	require.NoError(t, err)

	t.Run("No screenshots yields v1", func(t *testing.T) {
		data, _ := encoder.Encode([]record.GeneralEvent{
			{EventType: "death"},
			{EventType: "respawn"},
		})

		require.Equal(t, format.EventV1, data[4])
	})

	t.Run("Empty screenshot slice still yields v1", func(t *testing.T) {
		data, _ := encoder.Encode([]record.GeneralEvent{
			{EventType: "death", Screenshots: [][]byte{}},
		})

		require.Equal(t, format.EventV1, data[4])
	})

	t.Run("One screenshot anywhere upgrades the whole batch", func(t *testing.T) {
		data, _ := encoder.Encode([]record.GeneralEvent{
			{EventType: "death"},
			{EventType: "boss_kill", Screenshots: [][]byte{[]byte("jpeg")}},
			{EventType: "respawn"},
		})

		require.Equal(t, format.EventV2, data[4])

		decoded, err := DecodeEvents(data)
		require.NoError(t, err)
		// v2 applies to every record: screenshot-free records carry count 0
		require.NotNil(t, decoded)
		require.Empty(t, decoded[0].Screenshots)
		require.Len(t, decoded[1].Screenshots, 1)
		require.Empty(t, decoded[2].Screenshots)
	})

	t.Run("Empty batch yields v1", func(t *testing.T) {
		data, warnings := encoder.Encode(nil)

		require.Empty(t, warnings)
		require.Equal(t, []byte{'L', 'S', 'E', 'V', 0x01, 0x00, 0x00, 0x00, 0x00}, data)

		decoded, err := DecodeEvents(data)
		require.NoError(t, err)
		require.Empty(t, decoded)
	})
}

func TestEventEncoder_RoundTripV1(t *testing.T) {
	records := []record.GeneralEvent{
		{
			EventType:    "death",
			OffsetMillis: 1000,
			Player:       3,
			Metadata:     map[string]any{"cause": "fall", "height": 12.5},
		},
		{
			EventType:    "score_milestone",
			OffsetMillis: 2000,
			Player:       -1,
			Position:     &record.Vec3{X: 100, Y: 200, Z: 300},
		},
		{
			EventType:    "heartbeat",
			OffsetMillis: 3000,
		},
	}

	encoder, err := NewEventEncoder()
	require.NoError(t, err)

	data, warnings := encoder.Encode(records)
	require.Empty(t, warnings)

	decoded, err := DecodeEvents(data)
	require.NoError(t, err)
	require.Len(t, decoded, len(records))

	for i := range records {
		require.Equal(t, records[i].EventType, decoded[i].EventType, "record %d", i)
		require.Equal(t, records[i].OffsetMillis, decoded[i].OffsetMillis, "record %d", i)
		require.Equal(t, records[i].Player, decoded[i].Player, "record %d", i)
		require.Nil(t, decoded[i].Screenshots, "record %d: v1 has no screenshots", i)

		expected, errPayload := records[i].PayloadJSON()
		require.NoError(t, errPayload)
		require.Equal(t, expected, decoded[i].Payload, "record %d", i)
	}
}

func TestEventEncoder_RoundTripV2(t *testing.T) {
	records := []record.GeneralEvent{
		{
			EventType:    "boss_kill",
			OffsetMillis: 500,
			Player:       1,
			Metadata:     map[string]any{"boss": "dragon"},
			Screenshots:  [][]byte{[]byte("first-jpeg"), nil, []byte("third-jpeg")},
		},
	}

	encoder, err := NewEventEncoder()
	require.NoError(t, err)

	data, warnings := encoder.Encode(records)
	require.Empty(t, warnings)
	require.Equal(t, format.EventV2, data[4])

	decoded, err := DecodeEvents(data)
	require.NoError(t, err)
	require.Len(t, decoded, 1)

	// Slot order preserved; the zero-length slot decodes as nil.
	require.Len(t, decoded[0].Screenshots, 3)
	require.Equal(t, []byte("first-jpeg"), decoded[0].Screenshots[0])
	require.Nil(t, decoded[0].Screenshots[1])
	require.Equal(t, []byte("third-jpeg"), decoded[0].Screenshots[2])
}

func TestEventEncoder_PositionOverwritesMetadata(t *testing.T) {
	encoder, err := NewEventEncoder()
	require.NoError(t, err)

	data, warnings := encoder.Encode([]record.GeneralEvent{
		{
			EventType: "pickup",
			Metadata:  map[string]any{"x": "stale", "item": "sword"},
			Position:  &record.Vec3{X: 1, Y: 2, Z: 3},
		},
	})
	require.Empty(t, warnings)

	decoded, err := DecodeEvents(data)
	require.NoError(t, err)
	require.JSONEq(t, `{"item":"sword","x":1,"y":2,"z":3}`, string(decoded[0].Payload))
}

func TestEventEncoder_MetadataClamp(t *testing.T) {
	encoder, err := NewEventEncoder(WithEventMetadataCap(10))
	require.NoError(t, err)

	data, warnings := encoder.Encode([]record.GeneralEvent{
		{EventType: "big", Metadata: map[string]any{"blob": "0123456789abcdef"}},
	})

	require.Len(t, warnings, 1)
	require.Equal(t, WarnMetadataTruncated, warnings[0].Code)
	require.Equal(t, 10, warnings[0].Cap)

	decoded, err := DecodeEvents(data)
	require.NoError(t, err)
	require.Len(t, decoded[0].Payload, 10)
}

func TestEventEncoder_ScreenshotClamp(t *testing.T) {
	encoder, err := NewEventEncoder(WithEventScreenshotCap(6))
	require.NoError(t, err)

	shot := []byte("a-longer-fake-jpeg")
	data, warnings := encoder.Encode([]record.GeneralEvent{
		{EventType: "snap", Screenshots: [][]byte{shot}},
	})

	require.Len(t, warnings, 1)
	require.Equal(t, WarnScreenshotTruncated, warnings[0].Code)
	require.Equal(t, 0, warnings[0].Index)
	require.Equal(t, len(shot), warnings[0].Size)
	require.Equal(t, 6, warnings[0].Cap)

	decoded, err := DecodeEvents(data)
	require.NoError(t, err)
	require.Equal(t, []byte("a-long"), decoded[0].Screenshots[0])
}

func TestEventEncoder_ScreenshotCountLimit(t *testing.T) {
	shots := make([][]byte, 300)
	for i := range shots {
		shots[i] = []byte{byte(i)}
	}

	encoder, err := NewEventEncoder()
	require.NoError(t, err)

	data, warnings := encoder.Encode([]record.GeneralEvent{
		{EventType: "burst", Screenshots: shots},
	})

	require.Len(t, warnings, 1)
	require.Equal(t, WarnScreenshotsDropped, warnings[0].Code)
	require.Equal(t, 300, warnings[0].Size)
	require.Equal(t, 255, warnings[0].Cap)

	decoded, err := DecodeEvents(data)
	require.NoError(t, err)
	require.Len(t, decoded[0].Screenshots, 255)
	require.Equal(t, shots[254], decoded[0].Screenshots[254])
}

func TestEventEncoder_UnserializablePayload(t *testing.T) {
	encoder, err := NewEventEncoder()
	require.NoError(t, err)

	data, warnings := encoder.Encode([]record.GeneralEvent{
		{EventType: "bad", Metadata: map[string]any{"ch": make(chan int)}},
		{EventType: "good", Metadata: map[string]any{"ok": true}},
	})

	require.Len(t, warnings, 1)
	require.Equal(t, WarnPayloadUnserializable, warnings[0].Code)
	require.Equal(t, 0, warnings[0].Record)
	require.Error(t, warnings[0].Err)

	decoded, err := DecodeEvents(data)
	require.NoError(t, err)
	require.Nil(t, decoded[0].Payload, "unserializable payload written as absent")
	require.JSONEq(t, `{"ok":true}`, string(decoded[1].Payload))
}

func TestEventEncoder_Deterministic(t *testing.T) {
	records := []record.GeneralEvent{
		{
			EventType: "death",
			Metadata:  map[string]any{"z": 1, "a": 2, "m": 3},
			Position:  &record.Vec3{X: 1, Y: 2, Z: 3},
		},
	}

	encoder, err := NewEventEncoder()
	require.NoError(t, err)

	first, _ := encoder.Encode(records)
	second, _ := encoder.Encode(records)

	require.True(t, bytes.Equal(first, second))
}

func TestDecodeEvents_Malformed(t *testing.T) {
	encoder, err := NewEventEncoder()
	require.NoError(t, err)

	t.Run("Wrong kind", func(t *testing.T) {
		pe, errNew := NewPositionEncoder()
		require.NoError(t, errNew)
		data, _ := pe.Encode(nil)

		_, err := DecodeEvents(data)
		require.ErrorIs(t, err, errs.ErrKindMismatch)
	})

	t.Run("Truncated screenshot", func(t *testing.T) {
		data, _ := encoder.Encode([]record.GeneralEvent{
			{EventType: "snap", Screenshots: [][]byte{[]byte("jpegdata")}},
		})

		_, err := DecodeEvents(data[:len(data)-4])
		require.ErrorIs(t, err, errs.ErrTruncated)
	})

	t.Run("Record count lies", func(t *testing.T) {
		data, _ := encoder.Encode([]record.GeneralEvent{{EventType: "x"}})
		binary.LittleEndian.PutUint32(data[5:9], 1<<20)

		_, err := DecodeEvents(data)
		require.ErrorIs(t, err, errs.ErrTruncated)
	})
}
