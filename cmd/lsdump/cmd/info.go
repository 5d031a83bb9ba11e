package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/playlytic/logstream/endian"
	"github.com/playlytic/logstream/format"
	"github.com/playlytic/logstream/wire"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Print a packet's header summary",
	Long: `Print the stream family, format version and record count of a
packet without decoding its records.

Example:
  lsdump info match_positions.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		header, _, err := wire.ParseHeader(data, endian.Little())
		if err != nil {
			return fmt.Errorf("parse header: %w", err)
		}

		fmt.Printf("file:     %s (%d bytes)\n", args[0], len(data))
		fmt.Printf("stream:   %s (%s)\n", string(header.Kind), header.Kind)
		fmt.Printf("version:  %d\n", header.Version)
		fmt.Printf("records:  %d\n", header.RecordCount)
		if header.Kind == format.KindFieldObject {
			fmt.Printf("strings:  %d\n", header.StringTableCount)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
