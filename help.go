// help.go: Default plain-text help rendering for Blic
//
// The pipeline talks to help through the HelpRenderer interface; richer
// renderers (colored, paged, localized) plug in from outside. This file
// ships the plain-text default.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

// HelpView is the read-only snapshot handed to a renderer: the application
// identity, the ancestor path of the subject command (empty at the root),
// and its merged (command plus global) options.
type HelpView struct {
	AppName     string
	Version     string
	Description string
	Path        []string
	Arguments   []ArgumentSpec
	Options     []OptionSpec
	Commands    []*Command
	HasAction   bool
}

// HelpRenderer turns a HelpView into user-facing text. Implementations
// must be pure: same view, same text.
type HelpRenderer interface {
	Render(view HelpView) string
}

// defaultHelpRenderer is the built-in plain-text renderer.
type defaultHelpRenderer struct {
	width uint
}

func newDefaultHelpRenderer() *defaultHelpRenderer {
	return &defaultHelpRenderer{width: 76}
}

// Render implements HelpRenderer.
func (r *defaultHelpRenderer) Render(view HelpView) string {
	var b strings.Builder

	title := view.AppName
	if len(view.Path) > 0 {
		title += " " + strings.Join(view.Path, " ")
	}
	if view.Description != "" {
		fmt.Fprintf(&b, "%s - %s\n", title, r.wrap(view.Description))
	} else {
		fmt.Fprintf(&b, "%s\n", title)
	}

	b.WriteString("\nUsage:\n")
	usage := "  " + title
	if len(view.Options) > 0 {
		usage += " [options]"
	}
	if len(view.Commands) > 0 {
		usage += " <command>"
	}
	for _, arg := range view.Arguments {
		usage += " " + argPlaceholder(arg)
	}
	b.WriteString(usage + "\n")

	if visible := visibleCommands(view.Commands); len(visible) > 0 {
		b.WriteString("\nCommands:\n")
		rows := make([][2]string, 0, len(visible))
		for _, cmd := range visible {
			label := cmd.Name()
			if aliases := cmd.Aliases(); len(aliases) > 0 {
				label += ", " + strings.Join(aliases, ", ")
			}
			rows = append(rows, [2]string{label, cmd.Description()})
		}
		r.writeColumns(&b, rows)
	}

	if len(view.Arguments) > 0 {
		b.WriteString("\nArguments:\n")
		rows := make([][2]string, 0, len(view.Arguments))
		for _, arg := range view.Arguments {
			rows = append(rows, [2]string{argPlaceholder(arg), arg.Description})
		}
		r.writeColumns(&b, rows)
	}

	if len(view.Options) > 0 {
		b.WriteString("\nOptions:\n")
		rows := make([][2]string, 0, len(view.Options))
		for _, opt := range view.Options {
			rows = append(rows, [2]string{optionLabel(opt), optionSummary(opt)})
		}
		r.writeColumns(&b, rows)
	}

	return b.String()
}

func (r *defaultHelpRenderer) wrap(text string) string {
	return wordwrap.WrapString(text, r.width)
}

// writeColumns renders aligned two-column rows, wrapping the right column.
func (r *defaultHelpRenderer) writeColumns(b *strings.Builder, rows [][2]string) {
	width := 0
	for _, row := range rows {
		if len(row[0]) > width {
			width = len(row[0])
		}
	}
	for _, row := range rows {
		if row[1] == "" {
			fmt.Fprintf(b, "  %s\n", row[0])
			continue
		}
		wrapped := strings.Split(r.wrap(row[1]), "\n")
		fmt.Fprintf(b, "  %-*s  %s\n", width, row[0], wrapped[0])
		for _, line := range wrapped[1:] {
			fmt.Fprintf(b, "  %-*s  %s\n", width, "", line)
		}
	}
}

func visibleCommands(cmds []*Command) []*Command {
	out := make([]*Command, 0, len(cmds))
	for _, cmd := range cmds {
		if !cmd.Hidden() {
			out = append(out, cmd)
		}
	}
	return out
}

func argPlaceholder(arg ArgumentSpec) string {
	name := arg.Name
	if arg.Variadic {
		name += "..."
	}
	if arg.Required {
		return "<" + name + ">"
	}
	return "[" + name + "]"
}

func optionLabel(opt OptionSpec) string {
	label := "--" + opt.Name
	if opt.Short != "" {
		label = "-" + opt.Short + ", " + label
	}
	if opt.Kind != KindBool {
		label += " <" + opt.Kind.String() + ">"
	}
	return label
}

func optionSummary(opt OptionSpec) string {
	summary := opt.Description
	var notes []string
	if opt.Required {
		notes = append(notes, "required")
	}
	if opt.Default != nil {
		notes = append(notes, fmt.Sprintf("default: %v", opt.Default))
	}
	if opt.EnvVar != "" {
		notes = append(notes, "env: "+opt.EnvVar)
	}
	if len(notes) > 0 {
		if summary != "" {
			summary += " "
		}
		summary += "(" + strings.Join(notes, ", ") + ")"
	}
	return summary
}
