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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// overlay holds the fields a config file may set. Pointers distinguish an
// absent key from an explicit false.
type overlay struct {
	Base             string `yaml:"base"`
	Is24Bit          *bool  `yaml:"is_24bit"`
	HasEZ80Ops       *bool  `yaml:"ez80_ops"`
	Has16BitEZ80Ops  *bool  `yaml:"16bit_ez80_ops"`
	HasIndexHalfRegs *bool  `yaml:"index_half_regs"`
	OptimizeSize     *bool  `yaml:"optimize_size"`
}

func set(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// Load applies a YAML document on top of base. The optional "base" key
// restarts from a named preset ("z80" or "ez80") before the other keys
// are applied. Unknown keys are rejected.
func Load(data []byte, base Subtarget) (Subtarget, error) {
	var ov overlay
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	/* an empty document keeps the base */
	if err := dec.Decode(&ov); err != nil && !errors.Is(err, io.EOF) {
		return Subtarget{}, fmt.Errorf("ez80: invalid subtarget config: %w", err)
	}

	/* select the preset */
	switch ov.Base {
	case "":
		break
	case "z80":
		base = Z80()
	case "ez80":
		base = EZ80()
	default:
		return Subtarget{}, fmt.Errorf("ez80: unknown base subtarget %q", ov.Base)
	}

	/* apply the overrides */
	set(&base.Is24Bit, ov.Is24Bit)
	set(&base.HasEZ80Ops, ov.HasEZ80Ops)
	set(&base.Has16BitEZ80Ops, ov.Has16BitEZ80Ops)
	set(&base.HasIndexHalfRegs, ov.HasIndexHalfRegs)
	set(&base.OptimizeSize, ov.OptimizeSize)

	/* check for consistency */
	if err := base.Validate(); err != nil {
		return Subtarget{}, err
	} else {
		return base, nil
	}
}

// LoadFile reads a YAML config file on top of the environment defaults.
func LoadFile(path string) (Subtarget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Subtarget{}, fmt.Errorf("ez80: cannot read subtarget config: %w", err)
	}

	/* parse the file */
	st, err := Load(data, GetDefaultSubtarget())
	if err != nil {
		return Subtarget{}, fmt.Errorf("%s: %w", path, err)
	}
	return st, nil
}
