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
	"strconv"

	"github.com/dataence/bloomd/internal/bloom"
	"github.com/dataence/bloomd/internal/store"
)

// BFDebugStatus implements BFDEBUG STATUS key.
func BFDebugStatus(st *store.Store, key string) Reply {
	flt, ok, err := lookupForDebug(st, key)
	if err != nil {
		return errReply(err)
	}
	if !ok {
		return errReply(errKeyNotFound())
	}
	return bulkReply(fmt.Sprintf("n:%d e:%g", flt.NumFilters(), flt.Error()))
}

// BFDebugFilter implements BFDEBUG FILTER key idx.
func BFDebugFilter(st *store.Store, key, idxArg string) Reply {
	flt, ok, err := lookupForDebug(st, key)
	if err != nil {
		return errReply(err)
	}
	if !ok {
		return errReply(errKeyNotFound())
	}

	idx, perr := strconv.ParseInt(idxArg, 10, 64)
	if perr != nil {
		return errReply(errInvalidFilterIndex())
	}
	if idx < 0 {
		return errReply(errIndexOutOfRange())
	}

	gens := flt.Generations()
	if idx >= int64(len(gens)) {
		return errReply(errIndexOutOfRange())
	}

	g := gens[idx]
	return bulkReply(fmt.Sprintf("k:%d s:%d b:%d", g.K, g.S, g.B))
}

func lookupForDebug(st *store.Store, key string) (*bloom.ScalableFilter, bool, *Error) {
	flt, ok, err := st.GetBloom(key)
	if err != nil {
		return nil, false, wrongType()
	}
	if !ok {
		return nil, false, nil
	}
	return flt, true, nil
}
