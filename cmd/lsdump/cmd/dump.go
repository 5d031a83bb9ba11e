package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/playlytic/logstream/format"
	"github.com/playlytic/logstream/packet"
	"github.com/playlytic/logstream/wire"
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Decode a packet and print its records as JSON",
	Long: `Decode every record of a packet and print them as a JSON array on
stdout. Screenshot attachments are summarized by size rather than dumped.

Example:
  lsdump dump match_events.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		kind, _, err := wire.Sniff(data)
		if err != nil {
			return fmt.Errorf("sniff packet: %w", err)
		}

		var records any
		switch kind {
		case format.KindPosition:
			records, err = dumpPositions(data)
		case format.KindFieldObject:
			records, err = dumpFieldObjects(data)
		case format.KindEvent:
			records, err = dumpEvents(data)
		}
		if err != nil {
			return fmt.Errorf("decode %s packet: %w", kind, err)
		}

		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))

		return nil
	},
}

func dumpPositions(data []byte) (any, error) {
	decoded, err := packet.DecodePositions(data)
	if err != nil {
		return nil, err
	}

	views := make([]map[string]any, 0, len(decoded))
	for _, rec := range decoded {
		views = append(views, map[string]any{
			"player_id": rec.PlayerID,
			"x":         rec.Pos.X,
			"y":         rec.Pos.Y,
			"z":         rec.Pos.Z,
			"offset_ms": rec.OffsetMillis,
			"status":    rawOrString(rec.Status),
		})
	}

	return views, nil
}

func dumpFieldObjects(data []byte) (any, error) {
	decoded, err := packet.DecodeFieldObjects(data)
	if err != nil {
		return nil, err
	}

	views := make([]map[string]any, 0, len(decoded))
	for _, rec := range decoded {
		views = append(views, map[string]any{
			"object_id":   rec.ObjectID,
			"object_type": rec.ObjectType,
			"event":       rec.Event.String(),
			"x":           rec.Pos.X,
			"y":           rec.Pos.Y,
			"z":           rec.Pos.Z,
			"offset_ms":   rec.OffsetMillis,
			"status":      rawOrString(rec.Status),
		})
	}

	return views, nil
}

func dumpEvents(data []byte) (any, error) {
	decoded, err := packet.DecodeEvents(data)
	if err != nil {
		return nil, err
	}

	views := make([]map[string]any, 0, len(decoded))
	for _, rec := range decoded {
		sizes := make([]int, 0, len(rec.Screenshots))
		for _, shot := range rec.Screenshots {
			sizes = append(sizes, len(shot))
		}

		views = append(views, map[string]any{
			"event_type":       rec.EventType,
			"player":           rec.Player,
			"offset_ms":        rec.OffsetMillis,
			"payload":          rawOrString(rec.Payload),
			"screenshot_sizes": sizes,
		})
	}

	return views, nil
}

// rawOrString embeds payload bytes as JSON when they parse as JSON, falling
// back to a plain string so malformed payloads still print readably.
func rawOrString(payload []byte) any {
	if len(payload) == 0 {
		return nil
	}
	if json.Valid(payload) {
		return json.RawMessage(payload)
	}

	return string(payload)
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
