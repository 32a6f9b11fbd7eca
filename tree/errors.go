// Copyright 2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tree

import "github.com/pkg/errors"

// Sentinel errors for the package's failure kinds. Lookup misses and cursor exhaustion are normal termination, not errors, and
// so have no sentinel here.
var (
	// ErrInvalidFanout is returned when a configured fanout is not a
	// positive power of two.
	ErrInvalidFanout = errors.New("fanout must be a positive power of two")

	// ErrDepthOverflow is returned when a build or update would need a
	// tree deeper than MAX_DEPTH for the configured fanout. Only
	// reachable with a pathologically small fanout or a pathologically
	// large input.
	ErrDepthOverflow = errors.New("update would exceed maximum tree depth for this fanout")

	// ErrNotWellFormed names a tree that fails the well-formedness
	// invariants. The checkers report that as a false result; no function
	// in this package returns this error.
	ErrNotWellFormed = errors.New("tree is not well-formed")
)
