package main

import "github.com/kozaktomas/album-editor/cmd"

func main() {
	cmd.Execute()
}
