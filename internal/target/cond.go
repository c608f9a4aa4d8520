/*
 * Copyright 2026 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package target

import (
    `fmt`
)

// CondCode is a branch predicate. Codes come in pairs: every even code and
// the odd code after it are negations of each other.
type CondCode uint8

const (
    COND_NZ CondCode = iota     // not zero
    COND_Z                      // zero
    COND_NC                     // no carry
    COND_C                      // carry
    COND_PO                     // parity odd
    COND_PE                     // parity even
    COND_P                      // sign positive
    COND_M                      // sign negative
    NumConds
)

var _CondNames = [NumConds]string {
    COND_NZ : "nz",
    COND_Z  : "z",
    COND_NC : "nc",
    COND_C  : "c",
    COND_PO : "po",
    COND_PE : "pe",
    COND_P  : "p",
    COND_M  : "m",
}

// Opposite returns the logical negation of the condition, e.g. COND_Z for COND_NZ.
func (self CondCode) Opposite() CondCode {
    return self ^ 1
}

func (self CondCode) Valid() bool {
    return self < NumConds
}

func (self CondCode) String() string {
    if self.Valid() {
        return _CondNames[self]
    } else {
        return fmt.Sprintf("cc(%d)", uint8(self))
    }
}
