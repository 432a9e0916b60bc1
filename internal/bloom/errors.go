// Copyright (c) 2014 Dataence, LLC. All rights reserved.
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

package bloom

import "github.com/cockroachdb/errors"

// Sentinel error kinds, matching the kinds spec.md §7 describes:
// ValidationError, FrozenEpsilon. NotFound, WrongType and Fatal belong to
// the host store and command layers, not the engine itself.
var (
	// ErrTooSmall marks an ε below MinError.
	ErrTooSmall = errors.New("error too small")

	// ErrFrozen marks an attempt to change ε on a filter that has already
	// allocated its first generation.
	ErrFrozen = errors.New("cannot change error on existing bloom filter")
)
