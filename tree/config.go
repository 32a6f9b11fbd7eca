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

import (
	"math/bits"
	"sync/atomic"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
)

// Config is the single process-wide knob: the fan factor F. The
// process-wide value is set once at initialization (SetFanout, or the
// default below). Build and Update take their Config as an argument and do
// not read the process-wide value.
type Config struct {
	Fanout int `default:"32"`
}

// DefaultConfig returns the fanout-32 configuration used when no explicit
// SetFanout call has been made.
func DefaultConfig() Config {
	var c Config
	// defaults.Set only errs on unsupported field kinds; Config has none.
	_ = defaults.Set(&c)
	return c
}

// NewConfig validates fanout and returns the Config built from it. Passing
// 0 requests the default (32).
func NewConfig(fanout int) (Config, error) {
	c := Config{Fanout: fanout}
	if fanout == 0 {
		c = DefaultConfig()
	}
	if !isPowerOfTwo(c.Fanout) {
		return Config{}, errors.Wrapf(ErrInvalidFanout, "fanout %d", c.Fanout)
	}
	return c, nil
}

func isPowerOfTwo(n int) bool {
	return n >= 2 && n&(n-1) == 0
}

// maxDepth is the deepest a tree may legally grow for a given fanout:
// MAX_DEPTH = ceil(31 / (s-1)) for F = 2^s, the largest depth a 2^31-item
// tree can require before running out of room in the scratch buffers.
func maxDepth(fanout int) int {
	s := bits.TrailingZeros(uint(fanout))
	if s <= 1 {
		return 31
	}
	return (31 + s - 2) / (s - 1)
}

var globalConfig atomic.Value

func init() {
	globalConfig.Store(DefaultConfig())
}

// SetFanout overrides the process-wide fan factor. It must be called, if at
// all, once at process initialization before any tree is built; it is not
// meant to be changed mid-lifetime of a running tree (mixing fanouts across
// a tree's build/update history is undefined, same as mixing comparators).
func SetFanout(fanout int) error {
	c, err := NewConfig(fanout)
	if err != nil {
		return err
	}
	globalConfig.Store(c)
	return nil
}

func currentConfig() Config {
	return globalConfig.Load().(Config)
}
