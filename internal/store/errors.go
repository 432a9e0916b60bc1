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

package store

import "github.com/cockroachdb/errors"

var (
	// ErrWrongType marks a key bound to a value that isn't a bloom filter.
	ErrWrongType = errors.New("WRONGTYPE key holds a non-bloom value")

	// ErrNotFound marks a key that is required but absent (BFDEBUG).
	ErrNotFound = errors.New("The specified key does not exist")
)
