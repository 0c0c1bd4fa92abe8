// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package assoc

import (
	"encoding/json"
	"fmt"
)

// Policy selects the matching heuristic the associator uses.
//
// Two heuristics are supported and the choice is an explicit configuration
// decision, not an internal detail: the two resolve boundary comments
// differently, and callers must keep the choice consistent for round-trip
// stability.
//
// PolicyConservative is the shipped default. It only claims comments that
// are demonstrably inside a block or demonstrably trailing a declaration,
// which leaves more comments unassociated near declaration boundaries but
// never misattributes a comment that sits between two siblings.
//
// PolicyNearest resolves more comments (it treats a comment exactly one
// line above a node as that node's leading comment, and falls back to the
// smallest enclosing node) at the risk of occasionally attributing a
// comment between two sibling declarations to the wrong neighbor.
type Policy int

const (
	// PolicyConservative is priority-ordered containment: body blocks
	// first, then declaration-trailing positions, else unassociated.
	PolicyConservative Policy = iota

	// PolicyNearest is nearest-enclosing with an adjacency fallback.
	PolicyNearest
)

// policyNames maps Policy values to their configuration names.
var policyNames = map[Policy]string{
	PolicyConservative: "conservative",
	PolicyNearest:      "nearest",
}

// String returns the configuration name of the policy.
func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON encodes the policy as its configuration name.
func (p Policy) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes the policy from its configuration name.
func (p *Policy) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePolicy(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePolicy converts a configuration name to a Policy.
//
// Returns an error for unrecognized names so a typo in configuration
// surfaces instead of silently selecting a default.
func ParsePolicy(s string) (Policy, error) {
	for policy, name := range policyNames {
		if name == s {
			return policy, nil
		}
	}
	return PolicyConservative, fmt.Errorf("unknown association policy %q", s)
}
