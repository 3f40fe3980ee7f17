package main

import (
	"github.com/harvesting-media/dataproc/commands"
)

func main() {
	commands.Execute()
}
