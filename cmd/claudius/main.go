package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/temirov/claudius/internal/cli"
	"github.com/temirov/claudius/internal/utils"
)

// main is the entry point for the claudius command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger("")
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer func() { _ = loggerInstance.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if applicationExecutionError := cli.Execute(ctx, loggerInstance); applicationExecutionError != nil {
		stop()
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
	}
}
