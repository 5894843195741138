// Command handlers for the Blic demo CLI
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"sort"

	"github.com/agilira/blic"
	"github.com/agilira/go-errors"
)

// handleItemAdd stores an item and its quantity.
func (m *Manager) handleItemAdd(ctx *blic.Context) error {
	name := ctx.String("name")
	if _, exists := m.items[name]; exists {
		return errors.New("SHELF_DUPLICATE_ITEM", fmt.Sprintf("item %q already on the shelf", name))
	}
	m.items[name] = ctx.Number("quantity")
	fmt.Fprintf(ctx.Stdout(), "added %s x%v\n", name, ctx.Number("quantity"))
	if tag := ctx.String("tag"); tag != "" {
		fmt.Fprintf(ctx.Stdout(), "tagged %s\n", tag)
	}
	return nil
}

// handleItemList prints the shelf contents in stable order.
func (m *Manager) handleItemList(ctx *blic.Context) error {
	names := make([]string, 0, len(m.items))
	for name := range m.items {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(ctx.Stdout(), "%s\t%v\n", name, m.items[name])
	}
	return nil
}

// handleSum adds the variadic values with the configured precision.
func (m *Manager) handleSum(ctx *blic.Context) error {
	total := 0.0
	for _, n := range ctx.Numbers("values") {
		total += n
	}
	fmt.Fprintf(ctx.Stdout(), "%.*f\n", int(ctx.Number("precision")), total)
	return nil
}
