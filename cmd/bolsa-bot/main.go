package main

import (
	"bolsa-bot/cmd/bolsa-bot/commands"
	"bolsa-bot/internal/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
