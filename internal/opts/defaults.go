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

package opts

import (
	"os"
	"strconv"
)

const (
	_Default24Bit         = true  // eZ80 ADL mode
	_DefaultEZ80Ops       = true  // LEA, PEA and (ix+d) 16-bit loads
	_Default16BitEZ80Ops  = false // eZ80 extended ops in Z80 mode
	_DefaultIndexHalfRegs = true  // IXH, IXL, IYH and IYL are usable
	_DefaultOptimizeSize  = false
)

var (
	Is24Bit          = parseOrDefault("EZ80_24BIT", _Default24Bit)
	HasEZ80Ops       = parseOrDefault("EZ80_EZ80_OPS", _DefaultEZ80Ops)
	Has16BitEZ80Ops  = parseOrDefault("EZ80_16BIT_EZ80_OPS", _Default16BitEZ80Ops)
	HasIndexHalfRegs = parseOrDefault("EZ80_INDEX_HALF_REGS", _DefaultIndexHalfRegs)
	OptimizeSize     = parseOrDefault("EZ80_OPT_SIZE", _DefaultOptimizeSize)
)

func parseOrDefault(key string, def bool) bool {
	if env := os.Getenv(key); env == "" {
		return def
	} else if val, err := strconv.ParseBool(env); err != nil {
		panic("ez80: invalid value for " + key)
	} else {
		return val
	}
}
