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
    `testing`

    `github.com/stretchr/testify/require`
)

func TestCondCode_Opposite(t *testing.T) {
    for c := CondCode(0); c < NumConds; c++ {
        require.Equal(t, c, c.Opposite().Opposite())
        require.NotEqual(t, c, c.Opposite())
        require.True(t, c.Opposite().Valid())
    }
    require.Equal(t, COND_NZ, COND_Z.Opposite())
    require.Equal(t, COND_C, COND_NC.Opposite())
    require.Equal(t, COND_PE, COND_PO.Opposite())
    require.Equal(t, COND_M, COND_P.Opposite())
}

func TestCondCode_String(t *testing.T) {
    require.Equal(t, "nz", COND_NZ.String())
    require.Equal(t, "m", COND_M.String())
    require.Equal(t, "cc(9)", CondCode(9).String())
}

func TestContractError(t *testing.T) {
    require.PanicsWithError(t, "ez80: copy: no move from f to a", func() {
        Violatef("copy", "no move from %s to %s", F, A)
    })
}
