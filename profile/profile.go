// Package profile describes the target machine configuration an assembly
// run is performed against.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MachineProfile represents the configuration for a specific target
// machine.
type MachineProfile struct {
	Machine     string `yaml:"machine"`
	BaseAddress uint32 `yaml:"base_address"`
	MemorySize  uint32 `yaml:"memory_size"`
	ElideNOPs   bool   `yaml:"elide_nops"`
}

// Default returns the stock Orion-128 profile: 128 KiB of memory with
// code loaded at 0x1000 and no optimization.
func Default() *MachineProfile {
	return &MachineProfile{
		Machine:     "orion-128",
		BaseAddress: 0x1000,
		MemorySize:  128 * 1024,
	}
}

// LoadProfile loads a machine profile from a YAML file. Omitted fields
// keep their defaults.
func LoadProfile(filename string) (*MachineProfile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}

	prof := Default()
	if err := yaml.Unmarshal(data, prof); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if prof.MemorySize == 0 {
		return nil, fmt.Errorf("profile %q declares zero memory", prof.Machine)
	}
	return prof, nil
}
