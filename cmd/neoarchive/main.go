package main

import "github.com/turbolytics/neoarchive/internal/cmd"

func main() {
	cmd.Execute()
}
