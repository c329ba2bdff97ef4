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

// Package report provides a diagnostic collection and rendering framework.
//
// Parse failures and driver errors are collected into a [Report] as
// [Diagnostic] values. Anything implementing [Diagnose] can describe itself:
// its message, the spans it points at, and any notes or help text. A
// [Renderer] then turns the report into text, either one line per diagnostic
// or as annotated source windows:
//
//	error: expected ')'
//	  --> main.cs:3:12
//	   |
//	 3 |     if (x > 0 {
//	   |              ^ in if statement
//	   = note: while parsing if statement > if condition
package report
