package main

import (
	"os"

	"github.com/alarmscope/alarmscope/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
