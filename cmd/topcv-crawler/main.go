package main

import (
	"topcv-crawler/cmd/topcv-crawler/commands"
	"topcv-crawler/lib/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()
	commands.ExecuteContext(ctx)
}
