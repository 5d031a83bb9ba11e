// Package record defines the gameplay telemetry records consumed by the
// packet encoders: player position samples, field object lifecycle events
// and general events with optional screenshot attachments.
//
// Records are plain values with no identity beyond their fields. Callers
// accumulate them in their own buffers and hand whole batches to the packet
// package; the encoders never retain them.
package record

// Vec3 is a position in game space, in meters.
type Vec3 struct {
	X float32
	Y float32
	Z float32
}

// Backend converts a game-space position to the backend coordinate
// convention: axes permuted (wire.x = game.z, wire.y = game.x,
// wire.z = game.y) and scaled by 100.
//
// The permutation and scale are a fixed contract with the analytics backend
// and must not be "corrected". Position and field object encoders apply it
// automatically; callers attaching a position to a GeneralEvent must apply
// it themselves before constructing the record.
func (v Vec3) Backend() Vec3 {
	return Vec3{
		X: v.Z * 100,
		Y: v.X * 100,
		Z: v.Y * 100,
	}
}

// Game is the inverse of Backend. It converts a backend-convention position
// back to game space.
func (v Vec3) Game() Vec3 {
	return Vec3{
		X: v.Y / 100,
		Y: v.Z / 100,
		Z: v.X / 100,
	}
}

// Position is a single player position sample.
type Position struct {
	// PlayerID identifies the sampled player.
	PlayerID int32
	// Pos is the sample position in game space. Encoders apply the backend
	// coordinate convention on the wire.
	Pos Vec3
	// OffsetMillis is milliseconds since session start, not wall clock.
	// Duplicates are legal; samples are taken independently.
	OffsetMillis uint64
	// Status is an optional UTF-8 JSON payload. nil or empty means absent;
	// the wire format does not distinguish the two.
	Status []byte
}

// FieldObjectEvent is the lifecycle stage a field object record describes.
type FieldObjectEvent uint8

const (
	FieldObjectSpawn   FieldObjectEvent = 0x01
	FieldObjectMove    FieldObjectEvent = 0x02
	FieldObjectDespawn FieldObjectEvent = 0x03
	FieldObjectUpdate  FieldObjectEvent = 0x04
)

// Valid reports whether e is one of the defined lifecycle stages.
func (e FieldObjectEvent) Valid() bool {
	return e >= FieldObjectSpawn && e <= FieldObjectUpdate
}

func (e FieldObjectEvent) String() string {
	switch e {
	case FieldObjectSpawn:
		return "spawn"
	case FieldObjectMove:
		return "move"
	case FieldObjectDespawn:
		return "despawn"
	case FieldObjectUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// FieldObject is one lifecycle event of an object on the field.
//
// ObjectID and ObjectType repeat heavily across a session (the same object
// spawns, moves and despawns over many records), which is what makes the
// string table in the LSFO format worthwhile.
type FieldObject struct {
	ObjectID     string
	ObjectType   string
	Pos          Vec3
	OffsetMillis uint64
	Event        FieldObjectEvent
	// Status is an optional UTF-8 JSON payload, same semantics as
	// Position.Status.
	Status []byte
}

// GeneralEvent is an arbitrary typed gameplay event.
type GeneralEvent struct {
	// EventType is a free-form identifier such as "death" or
	// "score_milestone".
	EventType    string
	OffsetMillis uint64
	Player       int32
	// Metadata holds optional event metadata, serialized to JSON at encode
	// time. Values must be JSON-marshalable.
	Metadata map[string]any
	// Position is optional and must already be in the backend coordinate
	// convention (see Vec3.Backend). Its components are merged into the
	// metadata JSON as top-level x/y/z keys, overwriting metadata keys of
	// the same name.
	Position *Vec3
	// Screenshots holds optional JPEG-encoded images. Any non-empty slice
	// anywhere in a batch switches the whole batch to the screenshot-capable
	// format version.
	Screenshots [][]byte
}

// HasScreenshots reports whether the event carries at least one screenshot.
func (e *GeneralEvent) HasScreenshots() bool {
	return len(e.Screenshots) > 0
}
