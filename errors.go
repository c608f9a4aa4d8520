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

package ez80

import (
    `errors`

    `github.com/cloudwego/ez80/internal/target`
)

// ContractError is the panic value raised when the backend is asked for a
// shape it cannot lower, e.g. a copy into the flags register.
type ContractError = target.ContractError

// Recover runs fn and returns the contract violation it raised, if any.
// Other panics are propagated.
func Recover(fn func()) (err error) {
    defer func() {
        if v := recover(); v != nil {
            var ce *ContractError
            if e, ok := v.(error); ok && errors.As(e, &ce) {
                err = ce
            } else {
                panic(v)
            }
        }
    }()
    fn()
    return
}
