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

// Package command binds a scalable Bloom filter to a store.Store key and
// exposes the BFADD/BFEXIST/BFCOUNT/BFDEBUG surface spec.md §6 fixes.
// It is intentionally thin: argument splitting and reply encoding for any
// particular wire format belong to the transport that calls Dispatch
// (cmd/bloomd), not here.
package command

import (
	"strings"

	"github.com/dataence/bloomd/internal/store"
)

// Dispatch routes one already-tokenized command line to the matching
// BF* handler. argv[0] is the command name; argv[1:] are its arguments.
func Dispatch(st *store.Store, argv []string) Reply {
	if len(argv) == 0 {
		return errReply(newError(KindValidation, "empty command"))
	}

	cmd := strings.ToUpper(argv[0])
	args := argv[1:]

	switch cmd {
	case "BFADD":
		if len(args) < 1 {
			return errReply(errWrongArity("bfadd"))
		}
		return BFAdd(st, args[0], args[1:])

	case "BFEXIST":
		if len(args) != 2 {
			return errReply(errWrongArity("bfexist"))
		}
		return BFExist(st, args[0], args[1])

	case "BFCOUNT":
		if len(args) != 1 {
			return errReply(errWrongArity("bfcount"))
		}
		return BFCount(st, args[0])

	case "BFDEBUG":
		return dispatchBFDebug(st, args)

	default:
		return errReply(newError(KindValidation, "unknown command '%s'", argv[0]))
	}
}

func dispatchBFDebug(st *store.Store, args []string) Reply {
	if len(args) < 1 {
		return errReply(newError(KindValidation, "wrong number of arguments for 'bfdebug' command"))
	}

	sub := strings.ToUpper(args[0])
	switch sub {
	case "STATUS":
		if len(args) != 2 {
			return errReply(errWrongArity("status"))
		}
		return BFDebugStatus(st, args[1])

	case "FILTER":
		if len(args) != 3 {
			return errReply(errWrongArity("filter"))
		}
		return BFDebugFilter(st, args[1], args[2])

	default:
		return errReply(errUnknownSubcommand(args[0]))
	}
}
