// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package source provides immutable source files and the byte-offset spans
// that point into them.
//
// Every syntax tree node and every diagnostic refers back to a [File] through
// a [Span]. Offsets are always byte offsets into [File.Text]; conversion into
// user-facing line and column numbers is done lazily by [File.Location].
package source
