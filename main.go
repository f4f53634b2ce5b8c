package main

import "github.com/marzahner/markdown-viewer/cmd"

func main() {
	cmd.Execute()
}
