// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package poem validates samhaengsi lines against their topic word and gates
// submission.
//
// Every line must start with the matching character of the topic. An empty
// line carries no error (it is not validated yet) but blocks submission.
// Lines are trimmed for the first-character check only; the stored poem
// keeps them exactly as typed.
package poem
