package main

import (
	"overstats/cmd/overstats-cli/commands"
	"overstats/lib/util/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()
	commands.ExecuteContext(ctx)
}
