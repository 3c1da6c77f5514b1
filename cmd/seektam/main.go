package main

import (
	"seektam-backend/cmd/seektam/commands"
	"seektam-backend/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
