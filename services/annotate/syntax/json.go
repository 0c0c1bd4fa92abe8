// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package syntax

import (
	"encoding/json"
	"fmt"
	"io"
)

// EncodeFile serializes a File to JSON.
//
// When pretty is true the output is indented with two spaces, otherwise
// it is compact. Per the wire contract, comment lists are present only
// when non-empty and span offsets are emitted even when zero.
func EncodeFile(f *File, pretty bool) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("encode: nil file")
	}
	if pretty {
		return json.MarshalIndent(f, "", "  ")
	}
	return json.Marshal(f)
}

// DecodeFile deserializes a File from JSON.
func DecodeFile(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode file: %w", err)
	}
	return &f, nil
}

// WriteFile serializes a File to the given writer, with a trailing newline.
func WriteFile(w io.Writer, f *File, pretty bool) error {
	data, err := EncodeFile(f, pretty)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
