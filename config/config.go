// Package config loads the environment-variable surface named in spec §6.
// Grounded in spirit on core/app/flags's environment-aware flag
// registration; implemented directly against os.Getenv because no example
// in this pack's dependency surface binds environment variables to structs
// (checked gogpu-wgpu, gviegas-neo3 and vulkan-go-asche go.mod files: none
// import such a library) - see DESIGN.md for this stdlib justification.
package config

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/nyorain/vil/registry"
	"github.com/nyorain/vil/vlog"
)

// Config is the process-wide set of options recognized via environment
// variables, per spec §6.
type Config struct {
	// Wrap is the master switch for handle wrapping (VIL_WRAP). The
	// snapshot path requires wrapping for sound atomicity (spec §9). No
	// runtime check of this field is made: dset's CoW resolution does not
	// read Config.
	Wrap bool
	// WrapOverride holds per-kind overrides (VIL_WRAP_<KIND>).
	WrapOverride map[registry.ObjectKind]bool

	BumpAPIVersion     bool // VIL_BUMP_API_VERSION
	TimelineSemaphores bool // VIL_TIMELINE_SEMAPHORES
	TransformFeedback  bool // VIL_TRANSFORM_FEEDBACK
	DeviceFault        bool // VIL_DEVICE_FAULT

	BreakOnError bool          // VIL_BREAK_ON_ERROR
	MinLogLevel  vlog.Severity // VIL_MIN_LOG_LEVEL
	SkipExtCheck bool          // VIL_SKIP_EXT_CHECK
}

// Default returns the configuration in effect when no environment variables
// are set.
func Default() *Config {
	return &Config{
		Wrap:               true,
		WrapOverride:       map[registry.ObjectKind]bool{},
		BumpAPIVersion:     true,
		TimelineSemaphores: true,
		TransformFeedback:  true,
		DeviceFault:        false,
		BreakOnError:       false,
		MinLogLevel:        vlog.Warning,
		SkipExtCheck:       false,
	}
}

// Load reads the environment and returns a Config. Malformed values are
// logged at Warning and fall back to the default for that field - bad
// operator input is a degradation, never fatal (spec §7).
func Load() *Config {
	c := Default()

	if v, ok := lookupBool("VIL_WRAP"); ok {
		c.Wrap = v
	}
	for _, kind := range registry.AllKinds() {
		name := "VIL_WRAP_" + strings.ToUpper(kind.String())
		if v, ok := lookupBool(name); ok {
			c.WrapOverride[kind] = v
		}
	}

	assignBool("VIL_BUMP_API_VERSION", &c.BumpAPIVersion)
	assignBool("VIL_TIMELINE_SEMAPHORES", &c.TimelineSemaphores)
	assignBool("VIL_TRANSFORM_FEEDBACK", &c.TransformFeedback)
	assignBool("VIL_DEVICE_FAULT", &c.DeviceFault)
	assignBool("VIL_BREAK_ON_ERROR", &c.BreakOnError)
	assignBool("VIL_SKIP_EXT_CHECK", &c.SkipExtCheck)

	if raw, set := os.LookupEnv("VIL_MIN_LOG_LEVEL"); set {
		if lvl, ok := parseLevel(raw); ok {
			c.MinLogLevel = lvl
		} else {
			vlog.Warnf(context.Background(), "config: invalid VIL_MIN_LOG_LEVEL", "value", raw)
		}
	}

	return c
}

// WrapEnabled reports whether handle wrapping is enabled for kind, applying
// any per-kind override over the master switch.
func (c *Config) WrapEnabled(kind registry.ObjectKind) bool {
	if v, ok := c.WrapOverride[kind]; ok {
		return v
	}
	return c.Wrap
}

func lookupBool(name string) (bool, bool) {
	raw, set := os.LookupEnv(name)
	if !set {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		vlog.Warnf(context.Background(), "config: invalid boolean env var", "name", name, "value", raw)
		return false, false
	}
	return v, true
}

func assignBool(name string, dst *bool) {
	if v, ok := lookupBool(name); ok {
		*dst = v
	}
}

func parseLevel(raw string) (vlog.Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return vlog.Verbose, true
	case "debug":
		return vlog.Debug, true
	case "info":
		return vlog.Info, true
	case "warn", "warning":
		return vlog.Warning, true
	case "error":
		return vlog.Error, true
	default:
		return 0, false
	}
}
