package main

import (
	"sabrmetrics/cmd/sabr/commands"
	"sabrmetrics/lib/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()
	commands.ExecuteContext(ctx)
}
