package main

import "github.com/playlytic/logstream/cmd/lsdump/cmd"

func main() {
	cmd.Execute()
}
