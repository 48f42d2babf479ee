package schema

import (
	"crypto/sha256"
	"fmt"
	"runtime"
	"time"
)

// DefaultSeed is the seed used when the caller does not override it.
const DefaultSeed uint64 = 42

// ReproducibilityContext carries the deterministic seed, environment
// fingerprint and provenance fields that every statistical report
// embeds. Constructed once per run invocation and attached read-only to
// derived statistics; the engine never reads the process environment
// itself.
type ReproducibilityContext struct {
	Seed           uint64    `json:"seed"`
	CommitHash     string    `json:"commit_hash"`
	HardwareTag    string    `json:"hardware_tag"`
	EnvFingerprint string    `json:"env_fingerprint"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewReproducibilityContext builds a context for the current invocation.
// The environment fingerprint is a short stable digest of the build and
// host characteristics that affect measurement comparability.
func NewReproducibilityContext(seed uint64, commitHash, hardwareTag string) ReproducibilityContext {
	return ReproducibilityContext{
		Seed:           seed,
		CommitHash:     commitHash,
		HardwareTag:    hardwareTag,
		EnvFingerprint: EnvFingerprint(),
		Timestamp:      time.Now().UTC(),
	}
}

// EnvFingerprint returns a 16-hex-char digest over the platform facts
// that matter for comparing runs: OS, architecture, CPU count and the
// Go toolchain version.
func EnvFingerprint() string {
	payload := fmt.Sprintf("%s/%s/cpu=%d/%s",
		runtime.GOOS, runtime.GOARCH, runtime.NumCPU(), runtime.Version())
	sum := sha256.Sum256([]byte(payload))
	return fmt.Sprintf("%x", sum[:8])
}
