// Copyright (c) 2020 Blocknative Corporation. All rights reserved.
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

package command

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataence/bloomd/internal/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(0)
}

// S1: BFADD k ERROR 0.01 ELEMENTS a b c -> 3; BFEXIST k a -> 1; BFEXIST k d -> 0.
func TestScenarioS1(t *testing.T) {
	st := newStore(t)

	r := BFAdd(st, "k", []string{"ERROR", "0.01", "ELEMENTS", "a", "b", "c"})
	require.Equal(t, ReplyInteger, r.Type)
	assert.Equal(t, int64(3), r.Int)

	r = BFExist(st, "k", "a")
	assert.Equal(t, int64(1), r.Int)

	r = BFExist(st, "k", "d")
	assert.Equal(t, int64(0), r.Int)
}

// S2: changing error on an existing key fails; BFCOUNT reflects 1 insert.
func TestScenarioS2(t *testing.T) {
	st := newStore(t)

	r := BFAdd(st, "k", []string{"ERROR", "0.01", "ELEMENTS", "a"})
	require.Equal(t, ReplyInteger, r.Type)
	assert.Equal(t, int64(1), r.Int)

	r = BFAdd(st, "k", []string{"ERROR", "0.02", "ELEMENTS", "b"})
	require.Equal(t, ReplyErr, r.Type)
	assert.Equal(t, KindFrozenEpsilon, r.Err.Kind)
	assert.Equal(t, "cannot change error on existing bloom filter", r.Err.Error())

	r = BFCount(st, "k")
	assert.Equal(t, ReplyInteger, r.Type)
	assert.Equal(t, int64(1), r.Int)
}

// S3: BFEXIST missing x -> 0.
func TestScenarioS3(t *testing.T) {
	st := newStore(t)
	r := BFExist(st, "missing", "x")
	assert.Equal(t, int64(0), r.Int)
}

// S4: 200,000 distinct inserts grow the chain and keep cardinality and
// membership within spec bounds.
func TestScenarioS4(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large-N scenario in -short mode")
	}
	st := newStore(t)

	const n = 200000
	inserted := make([]string, 0, n)
	for i := 0; i < n; i++ {
		e := fmt.Sprintf("elem-%d", i)
		inserted = append(inserted, e)
		r := BFAdd(st, "k", []string{"ELEMENTS", e})
		require.Equal(t, ReplyInteger, r.Type)
	}

	status := BFDebugStatus(st, "k")
	require.Equal(t, ReplyBulkString, status.Type)

	var numfilters int
	var e float64
	_, err := fmt.Sscanf(status.Str, "n:%d e:%g", &numfilters, &e)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, numfilters, 2)

	count := BFCount(st, "k")
	got := float64(count.Int)
	rel := (got - n) / n
	if rel < 0 {
		rel = -rel
	}
	assert.LessOrEqual(t, rel, 0.10)

	for _, e := range inserted {
		r := BFExist(st, "k", e)
		assert.Equal(t, int64(1), r.Int, "missing inserted element %s", e)
	}
}

// S5: BFDEBUG FILTER on an out-of-range index errors.
func TestScenarioS5(t *testing.T) {
	st := newStore(t)
	BFAdd(st, "k", []string{"ELEMENTS", "a"})

	r := BFDebugFilter(st, "k", "99")
	require.Equal(t, ReplyErr, r.Type)
	assert.Equal(t, "index out of range", r.Err.Error())
}

// S6: re-adding the identical element reports no further transitions.
func TestScenarioS6(t *testing.T) {
	st := newStore(t)

	r := BFAdd(st, "k", []string{"ELEMENTS", "x"})
	assert.Equal(t, int64(1), r.Int)

	r = BFAdd(st, "k", []string{"ELEMENTS", "x"})
	assert.Equal(t, int64(0), r.Int)
}

func TestBFAddEmptyElementsStillCreatesKey(t *testing.T) {
	st := newStore(t)

	r := BFAdd(st, "k", []string{"ELEMENTS"})
	require.Equal(t, ReplyInteger, r.Type)
	assert.Equal(t, int64(0), r.Int)

	_, ok := st.Get("k")
	assert.True(t, ok, "key should have been created even with zero elements")
}

func TestBFAddInvalidOption(t *testing.T) {
	st := newStore(t)
	r := BFAdd(st, "k", []string{"BOGUS", "ELEMENTS", "a"})
	require.Equal(t, ReplyErr, r.Type)
	assert.Equal(t, "invalid option: BOGUS", r.Err.Error())
}

func TestBFAddNoErrorSpecified(t *testing.T) {
	st := newStore(t)
	r := BFAdd(st, "k", []string{"ERROR"})
	require.Equal(t, ReplyErr, r.Type)
	assert.Equal(t, "no error specified", r.Err.Error())
}

func TestBFAddErrorTooSmall(t *testing.T) {
	st := newStore(t)
	r := BFAdd(st, "k", []string{"ERROR", "0", "ELEMENTS", "a"})
	require.Equal(t, ReplyErr, r.Type)
	assert.Equal(t, "error too small", r.Err.Error())
}

func TestBFDebugMissingKey(t *testing.T) {
	st := newStore(t)

	r := BFDebugStatus(st, "missing")
	require.Equal(t, ReplyErr, r.Type)
	assert.Equal(t, "The specified key does not exist", r.Err.Error())

	r = BFDebugFilter(st, "missing", "0")
	require.Equal(t, ReplyErr, r.Type)
	assert.Equal(t, "The specified key does not exist", r.Err.Error())
}

func TestBFDebugUnknownSubcommand(t *testing.T) {
	st := newStore(t)
	BFAdd(st, "k", []string{"ELEMENTS", "a"})

	r := Dispatch(st, []string{"BFDEBUG", "BOGUS", "k"})
	require.Equal(t, ReplyErr, r.Type)
	assert.Equal(t, "Unknown BFDEBUG subcommand 'BOGUS'", r.Err.Error())
}

func TestBFDebugFilterInvalidIndex(t *testing.T) {
	st := newStore(t)
	BFAdd(st, "k", []string{"ELEMENTS", "a"})

	r := BFDebugFilter(st, "k", "not-a-number")
	require.Equal(t, ReplyErr, r.Type)
	assert.Equal(t, "invalid filter index", r.Err.Error())
}

func TestDispatchWiresAllCommands(t *testing.T) {
	st := newStore(t)

	r := Dispatch(st, []string{"BFADD", "k", "ELEMENTS", "a", "b"})
	assert.Equal(t, int64(2), r.Int)

	r = Dispatch(st, []string{"bfexist", "k", "a"})
	assert.Equal(t, int64(1), r.Int)

	r = Dispatch(st, []string{"BfCoUnT", "k"})
	assert.Equal(t, int64(2), r.Int)

	r = Dispatch(st, []string{"BFDEBUG", "STATUS", "k"})
	assert.Equal(t, ReplyBulkString, r.Type)
}

func TestDispatchWrongArity(t *testing.T) {
	st := newStore(t)

	r := Dispatch(st, []string{"BFEXIST", "k"})
	require.Equal(t, ReplyErr, r.Type)
}
