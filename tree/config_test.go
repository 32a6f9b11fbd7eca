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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigFanout(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, 32, c.Fanout)
}

func TestNewConfigZeroMeansDefault(t *testing.T) {
	c, err := NewConfig(0)
	require.NoError(t, err)
	assert.Equal(t, 32, c.Fanout)
}

func TestNewConfigRejectsNonPowerOfTwo(t *testing.T) {
	for _, bad := range []int{3, 5, 6, 7, 9, 100} {
		_, err := NewConfig(bad)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidFanout)
	}
}

func TestNewConfigRejectsTooSmall(t *testing.T) {
	_, err := NewConfig(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFanout)
}

func TestNewConfigAcceptsPowersOfTwo(t *testing.T) {
	for _, good := range []int{2, 4, 8, 16, 32, 64, 128} {
		c, err := NewConfig(good)
		require.NoError(t, err)
		assert.Equal(t, good, c.Fanout)
	}
}

func TestSetFanoutRoundTrip(t *testing.T) {
	orig := currentConfig()
	defer func() { globalConfig.Store(orig) }()

	require.NoError(t, SetFanout(16))
	assert.Equal(t, 16, currentConfig().Fanout)

	require.Error(t, SetFanout(15))
	// a rejected SetFanout must not clobber the last valid setting
	assert.Equal(t, 16, currentConfig().Fanout)
}

func TestMaxDepthShrinksWithFanout(t *testing.T) {
	small := maxDepth(2)
	large := maxDepth(128)
	assert.Greater(t, small, large)
}
