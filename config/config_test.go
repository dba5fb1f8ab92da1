package config

import (
	"testing"

	"github.com/nyorain/vil/registry"
	"github.com/nyorain/vil/vlog"
)

func TestDefault(t *testing.T) {
	c := Default()
	if !c.Wrap {
		t.Error("Wrap should default to true")
	}
	if c.MinLogLevel != vlog.Warning {
		t.Errorf("MinLogLevel = %v, want Warning", c.MinLogLevel)
	}
	if c.DeviceFault {
		t.Error("DeviceFault should default to false")
	}
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("VIL_WRAP", "false")
	t.Setenv("VIL_MIN_LOG_LEVEL", "debug")
	t.Setenv("VIL_DEVICE_FAULT", "true")

	c := Load()
	if c.Wrap {
		t.Error("VIL_WRAP=false should disable Wrap")
	}
	if c.MinLogLevel != vlog.Debug {
		t.Errorf("MinLogLevel = %v, want Debug", c.MinLogLevel)
	}
	if !c.DeviceFault {
		t.Error("VIL_DEVICE_FAULT=true should enable DeviceFault")
	}
}

func TestLoadInvalidBoolFallsBackToDefault(t *testing.T) {
	t.Setenv("VIL_WRAP", "not-a-bool")
	c := Load()
	if !c.Wrap {
		t.Error("invalid VIL_WRAP should fall back to default (true)")
	}
}

func TestLoadInvalidLogLevelFallsBackToDefault(t *testing.T) {
	t.Setenv("VIL_MIN_LOG_LEVEL", "not-a-level")
	c := Load()
	if c.MinLogLevel != vlog.Warning {
		t.Errorf("MinLogLevel = %v, want default Warning", c.MinLogLevel)
	}
}

func TestWrapEnabledPerKindOverride(t *testing.T) {
	c := Default()
	c.Wrap = true
	c.WrapOverride[registry.KindImage] = false

	if c.WrapEnabled(registry.KindImage) {
		t.Error("KindImage override should disable wrapping")
	}
	if !c.WrapEnabled(registry.KindBuffer) {
		t.Error("other kinds should still follow the master switch")
	}
}

func TestWrapPerKindEnvOverride(t *testing.T) {
	name := "VIL_WRAP_IMAGE"
	t.Setenv(name, "false")

	c := Load()
	if c.WrapEnabled(registry.KindImage) {
		t.Error("env override should disable wrapping for KindImage")
	}
}
