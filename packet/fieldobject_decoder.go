package packet

import (
	"fmt"

	"github.com/playlytic/logstream/endian"
	"github.com/playlytic/logstream/errs"
	"github.com/playlytic/logstream/format"
	"github.com/playlytic/logstream/record"
	"github.com/playlytic/logstream/wire"
)

// DecodeFieldObjects decodes an LSFO packet into field object records,
// resolving string table references back to inline strings.
//
// Decoded coordinates stay in the backend convention the packet carries.
// Unlike the encode side, an event type byte outside the enum is a decode
// error: a decoder has no batch to save by guessing.
func DecodeFieldObjects(data []byte) ([]record.FieldObject, error) {
	engine := endian.Little()

	header, offset, err := wire.ParseHeader(data, engine)
	if err != nil {
		return nil, err
	}
	if header.Kind != format.KindFieldObject {
		return nil, fmt.Errorf("%w: expected %s, got %s", errs.ErrKindMismatch, format.KindFieldObject, header.Kind)
	}

	tableCount := int(header.StringTableCount)
	if err := checkMinSize(len(data)-offset, tableCount, 4); err != nil {
		return nil, fmt.Errorf("string table: %w", err)
	}

	r := wire.NewReader(data, offset, engine)

	table := make([]string, 0, tableCount)
	for i := 0; i < tableCount; i++ {
		entry, err := r.String32("string table entry")
		if err != nil {
			return nil, fmt.Errorf("string table entry %d: %w", i, err)
		}
		table = append(table, entry)
	}

	count := int(header.RecordCount)
	if err := checkMinSize(r.Remaining(), count, fieldObjectFixedSize); err != nil {
		return nil, err
	}

	out := make([]record.FieldObject, 0, count)
	for i := 0; i < count; i++ {
		var rec record.FieldObject

		idIndex, err := r.Uint32("object_id_index")
		if err != nil {
			return nil, recordErr(i, err)
		}
		typeIndex, err := r.Uint32("object_type_index")
		if err != nil {
			return nil, recordErr(i, err)
		}
		if rec.ObjectID, err = tableLookup(table, idIndex); err != nil {
			return nil, recordErr(i, err)
		}
		if rec.ObjectType, err = tableLookup(table, typeIndex); err != nil {
			return nil, recordErr(i, err)
		}

		eventByte, err := r.Uint8("event_type")
		if err != nil {
			return nil, recordErr(i, err)
		}
		rec.Event = record.FieldObjectEvent(eventByte)
		if !rec.Event.Valid() {
			return nil, recordErr(i, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownEventType, eventByte))
		}

		if rec.Pos.X, err = r.Float32("x"); err != nil {
			return nil, recordErr(i, err)
		}
		if rec.Pos.Y, err = r.Float32("y"); err != nil {
			return nil, recordErr(i, err)
		}
		if rec.Pos.Z, err = r.Float32("z"); err != nil {
			return nil, recordErr(i, err)
		}
		if rec.OffsetMillis, err = r.Uint64("offset_timestamp"); err != nil {
			return nil, recordErr(i, err)
		}
		if rec.Status, err = r.Bytes32("status"); err != nil {
			return nil, recordErr(i, err)
		}

		out = append(out, rec)
	}

	if err := r.ExpectEOF(); err != nil {
		return nil, err
	}

	return out, nil
}

func tableLookup(table []string, index uint32) (string, error) {
	if int64(index) >= int64(len(table)) {
		return "", fmt.Errorf("%w: index %d, table size %d", errs.ErrStringTableIndex, index, len(table))
	}

	return table[index], nil
}
