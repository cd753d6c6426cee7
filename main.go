package main

import (
	"github.com/leocov-dev/launchwiz/cmd"
	"github.com/leocov-dev/launchwiz/config"
)

var Version string

func main() {
	config.SetVersion(Version)
	cmd.Execute()
}
