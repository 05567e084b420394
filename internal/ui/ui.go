// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui holds the small set of colored-output helpers the ifckit CLI
// uses for human-facing (non-JSON) output. Every helper degrades to plain
// text when colors are disabled, either explicitly (--no-color), via
// NO_COLOR, or because stdout isn't a terminal.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Color instances reused across commands for inline emphasis, e.g.
// ui.Cyan.Sprint("ifckit export").
var (
	Dim    = color.New(color.Faint)
	Cyan   = color.New(color.FgCyan)
	Green  = color.New(color.FgGreen)
	Yellow = color.New(color.FgYellow)
	Red    = color.New(color.FgRed, color.Bold)
)

// InitColors enables or disables color output for the whole process. Call
// once from main() after flags are parsed.
func InitColors(noColor bool) {
	disable := noColor || os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stdout.Fd())
	color.NoColor = disable
}

// Header prints a bold section title.
func Header(title string) {
	c := color.New(color.Bold, color.FgWhite)
	_, _ = c.Println(title)
}

// SubHeader prints a lighter-weight subsection title.
func SubHeader(title string) {
	c := color.New(color.Bold)
	_, _ = c.Println(title)
}

// Info prints an informational line to stdout.
func Info(msg string) { fmt.Println(msg) }

// Infof prints a formatted informational line to stdout.
func Infof(format string, args ...interface{}) { fmt.Printf(format+"\n", args...) }

// Warning prints a yellow warning line to stderr.
func Warning(msg string) { _, _ = Yellow.Fprintln(os.Stderr, msg) }

// Warningf prints a formatted yellow warning line to stderr.
func Warningf(format string, args ...interface{}) {
	_, _ = Yellow.Fprintf(os.Stderr, format+"\n", args...)
}

// Success prints a green confirmation line to stdout.
func Success(msg string) { _, _ = Green.Println(msg) }

// Successf prints a formatted green confirmation line to stdout.
func Successf(format string, args ...interface{}) { _, _ = Green.Printf(format+"\n", args...) }

// Label renders a bold field label, e.g. ui.Label("Project:").
func Label(text string) string {
	return color.New(color.Bold).Sprint(text)
}

// DimText renders text in a faint style, for secondary detail next to a
// Label.
func DimText(text string) string {
	return Dim.Sprint(text)
}

// CountText renders an integer count, dimmed when zero so an empty result
// doesn't read as an error.
func CountText(n int) string {
	if n == 0 {
		return Dim.Sprint("0")
	}
	return fmt.Sprintf("%d", n)
}
