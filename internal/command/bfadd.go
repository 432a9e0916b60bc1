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
	"strconv"
	"strings"

	"github.com/dataence/bloomd/internal/bloom"
	"github.com/dataence/bloomd/internal/store"
)

// BFAdd implements BFADD key [ERROR e] ELEMENTS e1 e2 .... args is every
// token after the key.
func BFAdd(st *store.Store, key string, args []string) Reply {
	errorValue, elements, perr := parseBFAddArgs(args)
	if perr != nil {
		return errReply(perr)
	}

	entry, created, err := st.GetOrCreateBloom(key)
	if err != nil {
		return errReply(wrongType())
	}

	if created {
		if errorValue != 0 {
			// SetError cannot fail here: the chain is empty and the value
			// already cleared MinError during parsing.
			_ = entry.Bloom.SetError(errorValue)
		}
	} else if errorValue != 0 && entry.Bloom.Error() != errorValue {
		return errReply(errCannotChangeError())
	}

	numNew := 0
	for _, e := range elements {
		if entry.Bloom.Add([]byte(e)) {
			numNew++
		}
	}

	if created || numNew > 0 {
		st.MarkUpdated(key, "bfadd")
	}

	return intReply(int64(numNew))
}

// parseBFAddArgs splits args into the optional ERROR value and the
// ELEMENTS that follow, validating the option grammar before any store
// mutation happens (spec.md §7: no partial write on a validation
// failure).
func parseBFAddArgs(args []string) (errorValue float64, elements []string, err *Error) {
	j := 0
	for j < len(args) {
		tok := args[j]
		switch {
		case strings.EqualFold(tok, "elements"):
			j++
			return errorValue, args[j:], nil
		case strings.EqualFold(tok, "error"):
			if j+1 >= len(args) {
				return 0, nil, errNoErrorSpecified()
			}
			v, perr := strconv.ParseFloat(args[j+1], 64)
			if perr != nil {
				return 0, nil, errNotAFloat()
			}
			if v < bloom.MinError {
				return 0, nil, errTooSmall()
			}
			errorValue = v
			j += 2
		default:
			return 0, nil, errInvalidOption(tok)
		}
	}
	// No ELEMENTS token seen: everything before it, if anything, was
	// options; there are no elements.
	return errorValue, nil, nil
}
