// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command annotate parses a source file, reunites the syntax tree with
// the comments from the original text, and emits the annotated tree as
// JSON on stdout.
//
// Usage:
//
//	annotate parse main.rs
//	annotate parse main.rs --policy nearest --compact --out tree.json
//	annotate comments main.rs
//	annotate spans main.rs
//
// Diagnostics and the run summary go to stderr; stdout carries only the
// artifact, so the output can be piped to jq or a file.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
