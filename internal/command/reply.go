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

import "strconv"

// ReplyType tags which field of a Reply is meaningful.
type ReplyType int

const (
	// ReplyInteger marks a Reply whose Int field holds the result.
	ReplyInteger ReplyType = iota
	// ReplyBulkString marks a Reply whose Str field holds the result.
	ReplyBulkString
	// ReplyErr marks a Reply whose Err field holds the result.
	ReplyErr
)

// Reply is a command result, independent of any particular wire
// encoding -- spec.md places reply encoding in the out-of-scope
// wire/dispatch layer, so this is the encoding-agnostic shape cmd/bloomd
// renders onto its transport.
type Reply struct {
	Type ReplyType
	Int  int64
	Str  string
	Err  *Error
}

func intReply(v int64) Reply   { return Reply{Type: ReplyInteger, Int: v} }
func bulkReply(s string) Reply { return Reply{Type: ReplyBulkString, Str: s} }
func errReply(err *Error) Reply { return Reply{Type: ReplyErr, Err: err} }

// String renders a Reply the way cmd/bloomd writes it back to a client.
func (r Reply) String() string {
	switch r.Type {
	case ReplyInteger:
		return strconv.FormatInt(r.Int, 10)
	case ReplyBulkString:
		return r.Str
	case ReplyErr:
		return "ERR " + r.Err.Error()
	default:
		return ""
	}
}
