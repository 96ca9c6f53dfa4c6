package main

import (
	"github.td.teradata.com/sandbox/snake-ctl/internal/cmd"
	"github.td.teradata.com/sandbox/snake-ctl/internal/log"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
