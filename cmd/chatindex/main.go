package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/tdelacour/chatindex/cmd/chatindex/cmd"
)

const (
	exitCodeError           = 1   // includes a folder argument that is not a directory
	exitCodeNoConversations = 2   // nothing usable found in the input folder
	exitCodeInterrupted     = 130 // 128 + SIGINT, mirrors shell convention
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.ExecuteContext(ctx); err != nil {
		switch {
		case isSignalCanceled(err, ctx):
			return exitCodeInterrupted
		case errors.Is(err, cmd.ErrNoConversations):
			return exitCodeNoConversations
		}
		return exitCodeError
	}
	return 0
}

func isSignalCanceled(err error, ctx context.Context) bool {
	return errors.Is(err, context.Canceled) && ctx.Err() == context.Canceled
}
