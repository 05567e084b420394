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

// Package errors gives every ifckit CLI command one error shape: a kind, a
// one-line message, a longer detail, and a hint at what the user should try
// next. FatalError is the single exit point commands funnel through so
// JSON-mode and human-mode output stay consistent (spec §7).
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/kraklabs/ifckit/internal/ui"
)

// New is a thin re-export of the standard library constructor so callers
// that only need a plain sentinel don't have to import both packages.
func New(text string) error { return errors.New(text) }

// Kind classifies a CLIError for JSON-mode reporting and exit-code
// selection.
type Kind string

const (
	KindConfig     Kind = "config"
	KindInput      Kind = "input"
	KindDatabase   Kind = "database"
	KindNetwork    Kind = "network"
	KindPermission Kind = "permission"
	KindInternal   Kind = "internal"
)

// CLIError is the shape every command-level failure takes: a short
// Message for the headline, a longer Detail explaining what went wrong,
// and a Hint suggesting the next command to run. Cause, if set, is the
// underlying error this one wraps.
type CLIError struct {
	Kind    Kind
	Message string
	Detail  string
	Hint    string
	Cause   error
}

func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error { return e.Cause }

func newError(kind Kind, message, detail, hint string, cause error) *CLIError {
	return &CLIError{Kind: kind, Message: message, Detail: detail, Hint: hint, Cause: cause}
}

func NewConfigError(message, detail, hint string, cause error) error {
	return newError(KindConfig, message, detail, hint, cause)
}

func NewInputError(message, detail, hint string, cause error) error {
	return newError(KindInput, message, detail, hint, cause)
}

func NewDatabaseError(message, detail, hint string, cause error) error {
	return newError(KindDatabase, message, detail, hint, cause)
}

func NewNetworkError(message, detail, hint string, cause error) error {
	return newError(KindNetwork, message, detail, hint, cause)
}

func NewPermissionError(message, detail, hint string, cause error) error {
	return newError(KindPermission, message, detail, hint, cause)
}

func NewInternalError(message, detail, hint string, cause error) error {
	return newError(KindInternal, message, detail, hint, cause)
}

// jsonReport is FatalError's --json rendering.
type jsonReport struct {
	Error   bool   `json:"error"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

// FatalError prints err and exits the process with status 1. jsonMode
// selects between a single-line JSON object (for scripted/MCP callers)
// and a colored, human-readable block. A plain (non-*CLIError) err is
// reported with Kind "internal" and no detail/hint.
func FatalError(err error, jsonMode bool) {
	var cliErr *CLIError
	if !errors.As(err, &cliErr) {
		cliErr = newError(KindInternal, err.Error(), "", "", nil)
	}

	if jsonMode {
		enc := json.NewEncoder(os.Stderr)
		_ = enc.Encode(jsonReport{
			Error:   true,
			Kind:    cliErr.Kind,
			Message: cliErr.Message,
			Detail:  cliErr.Detail,
			Hint:    cliErr.Hint,
		})
		os.Exit(1)
	}

	ui.Red.Fprintf(os.Stderr, "Error: %s\n", cliErr.Message)
	if cliErr.Cause != nil {
		fmt.Fprintf(os.Stderr, "  %v\n", cliErr.Cause)
	}
	if cliErr.Detail != "" {
		fmt.Fprintf(os.Stderr, "  %s\n", cliErr.Detail)
	}
	if cliErr.Hint != "" {
		fmt.Fprintf(os.Stderr, "  %s %s\n", ui.Label("Try:"), cliErr.Hint)
	}
	os.Exit(1)
}
