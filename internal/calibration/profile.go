// Package calibration benchmarks the combine strategies on synthetic
// datasets to find the optimal parallelism threshold for this machine,
// and caches the outcome in a JSON profile.
package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// CurrentProfileVersion is bumped whenever the profile format or the
// meaning of a calibrated value changes, invalidating older caches.
const CurrentProfileVersion = 1

// DefaultProfileFileName is the file name used in the user's home directory.
const DefaultProfileFileName = ".dsadd_calibration.json"

// CalibrationProfile captures the calibrated tuning values together with
// the hardware fingerprint they were measured on.
type CalibrationProfile struct {
	ProfileVersion int       `json:"profile_version"`
	NumCPU         int       `json:"num_cpu"`
	GOARCH         string    `json:"goarch"`
	GOOS           string    `json:"goos"`
	GoVersion      string    `json:"go_version"`
	WordSize       int       `json:"word_size"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	OptimalParallelThreshold int `json:"optimal_parallel_threshold"`
	OptimalWorkers           int `json:"optimal_workers"`

	// CalibrationElements is the synthetic dataset size used for the run.
	CalibrationElements int `json:"calibration_elements"`
	// CalibrationTime is the total wall-clock time of the calibration run.
	CalibrationTime string `json:"calibration_time"`
}

// NewProfile creates a profile stamped with the current hardware fingerprint.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CalibratedAt:   time.Now(),
	}
}

// SaveProfile writes the profile as indented JSON, creating parent
// directories as needed.
func (p *CalibrationProfile) SaveProfile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

// loadProfile reads and decodes a profile from disk.
func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads an existing valid profile or creates a fresh one.
//
// Returns:
//   - *CalibrationProfile: The loaded or newly created profile.
//   - bool: True when an existing valid profile was loaded.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	p, err := loadProfile(path)
	if err == nil && p.IsValid() {
		return p, true
	}
	return NewProfile(), false
}

// IsValid reports whether the profile was calibrated on hardware and a
// toolchain matching the current process.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.GOOS == runtime.GOOS &&
		p.WordSize == 32<<(^uint(0)>>63)
}

// IsStale reports whether the profile is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// String renders the profile as a human-readable summary.
func (p *CalibrationProfile) String() string {
	return fmt.Sprintf(
		"calibration profile: threshold=%d elements, workers=%d (cpu=%d arch=%s/%s, calibrated %s)",
		p.OptimalParallelThreshold, p.OptimalWorkers,
		p.NumCPU, p.GOOS, p.GOARCH,
		p.CalibratedAt.Format(time.RFC3339))
}

// GetDefaultProfilePath returns the default profile location in the user's
// home directory, falling back to the working directory.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}
