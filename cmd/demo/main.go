// Demo application for the Blic framework
//
// A small in-memory inventory tool showing git-style subcommands, aliases,
// variadic arguments, environment fallback, validators, and middleware.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/agilira/blic"
)

// Manager wires the demo commands onto a Blic application.
type Manager struct {
	app   *blic.App
	items map[string]float64
}

// NewManager builds the demo CLI with its full command structure.
func NewManager() *Manager {
	app := blic.New("shelf").
		SetVersion("1.0.0").
		SetDescription("In-memory inventory demo for the Blic framework")

	m := &Manager{
		app:   app,
		items: make(map[string]float64),
	}

	app.AddGlobalBoolFlag("verbose", "v", false, "Report command timing")
	app.Use(m.timing())

	m.setupItemCommands()
	m.setupMathCommands()

	return m
}

// Run executes the demo CLI and returns the process exit code.
func (m *Manager) Run(args []string) int {
	return m.app.Run(args)
}

// timing wraps every command with elapsed-time reporting, active only when
// --verbose is set.
func (m *Manager) timing() blic.Middleware {
	return blic.TimingMiddleware(func(command string, elapsed time.Duration) {
		fmt.Fprintf(os.Stderr, "shelf: %s finished in %v\n", command, elapsed)
	})
}

// setupItemCommands configures the 'item' command group.
func (m *Manager) setupItemCommands() {
	itemCmd := blic.NewCommand("item", "Inventory item operations").Alias("i")

	// item add <name> <quantity> [--tag=]
	addCmd := itemCmd.Subcommand("add", "Add an item", m.handleItemAdd)
	addCmd.AddArgument(blic.ArgumentSpec{
		Name: "name", Description: "Item name", Kind: blic.KindString,
		Required: true, Validator: blic.Rules().NonEmpty().MaxLength(64),
	})
	addCmd.AddArgument(blic.ArgumentSpec{
		Name: "quantity", Description: "Units on the shelf", Kind: blic.KindNumber,
		Default: 1, Validator: blic.Rules().Min(0),
	})
	addCmd.AddStringFlag("tag", "t", "", "Optional grouping tag")

	// item list [--tag=]
	listCmd := itemCmd.Subcommand("list", "List items", m.handleItemList)
	listCmd.AddStringFlag("tag", "t", "", "Filter by tag")

	m.app.AddCommand(itemCmd)
}

// setupMathCommands configures standalone commands.
func (m *Manager) setupMathCommands() {
	sumCmd := blic.NewCommand("sum", "Sum a list of numbers").
		SetHandler(m.handleSum)
	sumCmd.AddArgument(blic.ArgumentSpec{
		Name: "values", Description: "Numbers to add", Kind: blic.KindNumber,
		Required: true, Variadic: true,
	})
	sumCmd.AddOption(blic.OptionSpec{
		Name: "precision", Short: "p", Kind: blic.KindNumber, Default: 2,
		Description: "Digits after the decimal point",
		EnvVar:      "SHELF_PRECISION",
		Validator:   blic.Rules().Min(0).Max(10),
	})
	m.app.AddCommand(sumCmd)
	m.app.SetDefault("sum")
}

func main() {
	NewManager().app.RunAndExit(os.Args[1:])
}
