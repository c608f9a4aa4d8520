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
	"fmt"
)

// Subtarget is the feature set of the processor being compiled for.
type Subtarget struct {
	Is24Bit          bool `yaml:"is_24bit"`
	HasEZ80Ops       bool `yaml:"ez80_ops"`
	Has16BitEZ80Ops  bool `yaml:"16bit_ez80_ops"`
	HasIndexHalfRegs bool `yaml:"index_half_regs"`
	OptimizeSize     bool `yaml:"optimize_size"`
}

// Z80 is a plain Z80 with the undocumented index halves.
func Z80() Subtarget {
	return Subtarget{HasIndexHalfRegs: true}
}

// EZ80 is an eZ80 running in ADL mode.
func EZ80() Subtarget {
	return Subtarget{
		Is24Bit:          true,
		HasEZ80Ops:       true,
		HasIndexHalfRegs: true,
	}
}

// Validate checks that the feature flags are consistent with each other.
func (self Subtarget) Validate() error {
	if self.Is24Bit && !self.HasEZ80Ops {
		return fmt.Errorf("ez80: 24-bit mode requires eZ80 ops")
	} else if self.Has16BitEZ80Ops && !self.HasEZ80Ops {
		return fmt.Errorf("ez80: 16-bit eZ80 ops require eZ80 ops")
	} else {
		return nil
	}
}

// PointerSize returns the width of a pointer in bytes.
func (self Subtarget) PointerSize() int {
	if self.Is24Bit {
		return 3
	} else {
		return 2
	}
}

func (self Subtarget) String() string {
	return fmt.Sprintf(
		"Subtarget{24bit=%t, ez80=%t, ez80_16=%t, halves=%t, optsize=%t}",
		self.Is24Bit,
		self.HasEZ80Ops,
		self.Has16BitEZ80Ops,
		self.HasIndexHalfRegs,
		self.OptimizeSize,
	)
}

// GetDefaultSubtarget returns the features selected by the environment.
func GetDefaultSubtarget() Subtarget {
	return Subtarget{
		Is24Bit:          Is24Bit,
		HasEZ80Ops:       HasEZ80Ops,
		Has16BitEZ80Ops:  Has16BitEZ80Ops,
		HasIndexHalfRegs: HasIndexHalfRegs,
		OptimizeSize:     OptimizeSize,
	}
}
