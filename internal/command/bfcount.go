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

import "github.com/dataence/bloomd/internal/store"

// BFCount implements BFCOUNT key. A missing key reports a cardinality
// of 0, same treatment as BFEXIST.
func BFCount(st *store.Store, key string) Reply {
	flt, ok, err := st.GetBloom(key)
	if err != nil {
		return errReply(wrongType())
	}
	if !ok {
		return intReply(0)
	}
	return intReply(int64(flt.Cardinality()))
}
