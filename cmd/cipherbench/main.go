package main

import (
	"context"
	"fmt"
	"os"

	"github.com/awnumar/memguard"

	"github.com/rbaliyan/cipherbench/internal/command"
	mylog "github.com/rbaliyan/cipherbench/internal/log"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	// Wipe the process key however we leave.
	memguard.CatchInterrupt()
	defer memguard.Purge()

	ctx := context.Background()
	app := command.NewApp(command.ConfigFile())
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return command.ExitCode(err)
	}
	return command.ExitOK
}
