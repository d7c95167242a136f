// SPDX-License-Identifier: Apache-2.0

// Package client implements the interactive client application runtime.
//
// It wires the command-line session, client services, and background
// synchronization workers into a single process lifecycle.
package client
