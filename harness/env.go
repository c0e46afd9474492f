package harness

import (
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/cpu"
	syscpu "golang.org/x/sys/cpu"
)

// Environment describes the machine a run executed on.
type Environment struct {
	GoVersion   string `json:"go_version" yaml:"go_version"`
	OS          string `json:"os" yaml:"os"`
	Arch        string `json:"arch" yaml:"arch"`
	CPUModel    string `json:"cpu_model,omitempty" yaml:"cpu_model,omitempty"`
	LogicalCPUs int    `json:"logical_cpus,omitempty" yaml:"logical_cpus,omitempty"`
	GOMAXPROCS  int    `json:"gomaxprocs" yaml:"gomaxprocs"`
	AESHardware bool   `json:"aes_hardware" yaml:"aes_hardware"`
}

// DetectEnvironment inspects the running process and host. CPU details the
// host does not expose are left empty.
func DetectEnvironment() Environment {
	env := Environment{
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		GOMAXPROCS:  runtime.GOMAXPROCS(0),
		AESHardware: hasAESHardware(),
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		env.CPUModel = strings.TrimSpace(infos[0].ModelName)
	}
	if n, err := cpu.Counts(true); err == nil {
		env.LogicalCPUs = n
	}
	return env
}

// hasAESHardware reports whether crypto/aes can use CPU AES instructions,
// which dominate the relative cost of key schedule and block encryption.
func hasAESHardware() bool {
	switch runtime.GOARCH {
	case "amd64", "386":
		return syscpu.X86.HasAES
	case "arm64":
		return syscpu.ARM64.HasAES
	case "s390x":
		return syscpu.S390X.HasAES
	case "ppc64", "ppc64le":
		// POWER8 and later carry vector AES; Go requires POWER8.
		return true
	default:
		return false
	}
}
