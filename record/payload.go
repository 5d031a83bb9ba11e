package record

import "encoding/json"

// PayloadJSON merges the event metadata and position into one JSON object
// and returns its UTF-8 encoding.
//
// Position components are written after the metadata keys are copied, so a
// position overwrites metadata keys named "x", "y" or "z". An event with
// neither metadata nor position yields a nil payload, which the wire format
// encodes as length zero.
//
// The output is deterministic: object keys are emitted in sorted order, so
// encoding the same event twice produces identical bytes.
func (e *GeneralEvent) PayloadJSON() ([]byte, error) {
	if len(e.Metadata) == 0 && e.Position == nil {
		return nil, nil
	}

	merged := make(map[string]any, len(e.Metadata)+3)
	for k, v := range e.Metadata {
		merged[k] = v
	}

	if e.Position != nil {
		merged["x"] = e.Position.X
		merged["y"] = e.Position.Y
		merged["z"] = e.Position.Z
	}

	return json.Marshal(merged)
}
