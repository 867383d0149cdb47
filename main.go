// Package main provides the entry point for the butterfly ledger CLI.
package main

import (
	"fmt"
	"os"

	"fjacquet/butterfly-ledger/cmd/budget"
	"fjacquet/butterfly-ledger/cmd/categorize"
	"fjacquet/butterfly-ledger/cmd/dashboard"
	"fjacquet/butterfly-ledger/cmd/predict"
	"fjacquet/butterfly-ledger/cmd/remind"
	"fjacquet/butterfly-ledger/cmd/rollover"
	"fjacquet/butterfly-ledger/cmd/root"
	"fjacquet/butterfly-ledger/cmd/savings"
	"fjacquet/butterfly-ledger/cmd/tx"
	"fjacquet/butterfly-ledger/cmd/yoy"
	"fjacquet/butterfly-ledger/internal/config"
)

func init() {
	// 1. Load .env silently before viper reads the environment
	_, _ = config.LoadEnv()

	// 2. Initialize root command
	root.Init()

	// 3. Add all subcommands
	root.Cmd.AddCommand(dashboard.Cmd)
	root.Cmd.AddCommand(rollover.Cmd)
	root.Cmd.AddCommand(budget.Cmd)
	root.Cmd.AddCommand(tx.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(predict.Cmd)
	root.Cmd.AddCommand(yoy.Cmd)
	root.Cmd.AddCommand(remind.Cmd)
	root.Cmd.AddCommand(savings.Cmd)
}

func main() {
	err := root.Cmd.Execute()
	if closeErr := root.Shutdown(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
