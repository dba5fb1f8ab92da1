// Package vilerr is the error taxonomy shared by every subsystem of the
// introspection core. It is grounded on two teacher patterns: core/fault's
// Const sentinel-error type (fault.Const), and the pervasive use of
// github.com/pkg/errors for stack-carrying wraps across gapis/memory and
// gapis/api. It encodes spec §7's three-tier taxonomy (Fatal / Degradation /
// Transient) as a Tier attached to a wrapped error.
package vilerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Const is a constant error value, mirroring core/fault.Const.
type Const string

// Error implements error.
func (e Const) Error() string { return string(e) }

// Sentinel errors raised by the core. Each corresponds to an invariant or
// edge case named in spec §3/§8.
const (
	// ErrInvalidated is returned when an operation targets a CommandRecord
	// whose invalidated flag is set (spec §3 invariants).
	ErrInvalidated = Const("vil: command record invalidated")
	// ErrHandleDestroyed is returned (or, in ref-on-snapshot mode, recorded
	// per-binding) when a referenced Vulkan handle no longer resolves in
	// the registry (spec §4.4, §8 property 9).
	ErrHandleDestroyed = Const("vil: referenced handle destroyed")
	// ErrNotSplittable is the render-pass-splitter's refusal signal (spec
	// §4.5, scenario E6).
	ErrNotSplittable = Const("vil: render pass not splittable")
	// ErrHookRecordLimit signals the per-record hook-record bound has been
	// hit (spec §3 invariants: "a low limit is a hard warning signal").
	ErrHookRecordLimit = Const("vil: hook record limit reached for command record")
	// ErrParameterNotFound mirrors gapis/api.ErrParameterNotFound.
	ErrParameterNotFound = Const("vil: parameter not found")
	// ErrWriterPending is returned when destruction of a CommandRecord with
	// a non-nil writer is attempted (spec §3 invariants).
	ErrWriterPending = Const("vil: command record has a pending writer")
	// ErrCoWAlreadyResolved signals a double-resolve attempt on a
	// descriptor CoW (spec §4.3 invariant: exactly one of
	// {live-set-pointer, standalone-copy}).
	ErrCoWAlreadyResolved = Const("vil: descriptor CoW already resolved")
	// ErrDeviceLost surfaces a lost-device condition from the driver
	// (spec §7 "Fatal").
	ErrDeviceLost = Const("vil: device lost")
)

// Tier classifies an error per spec §7.
type Tier int

const (
	// TierTransient: retry or poll again later (e.g. fence not signaled).
	TierTransient Tier = iota
	// TierDegradation: a feature silently downgrades; the caller continues.
	TierDegradation
	// TierFatal: recording/replay cannot continue.
	TierFatal
)

func (t Tier) String() string {
	switch t {
	case TierTransient:
		return "transient"
	case TierDegradation:
		return "degradation"
	case TierFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

type tiered struct {
	tier Tier
	err  error
}

func (t *tiered) Error() string { return fmt.Sprintf("[%s] %s", t.tier, t.err) }
func (t *tiered) Unwrap() error { return t.err }

// Tiered wraps err with an explicit severity tier, preserving err's wrapped
// stack (the argument is expected to already be the result of
// errors.Wrap/Wrapf where a stack trace is wanted).
func Tiered(tier Tier, err error) error {
	if err == nil {
		return nil
	}
	return &tiered{tier: tier, err: err}
}

// TierOf extracts the Tier attached via Tiered, defaulting to
// TierDegradation for errors that were never classified - matching spec
// §7's policy that, absent a more specific signal, failures should degrade
// a feature to "N/A" rather than propagate as fatal.
func TierOf(err error) Tier {
	var t *tiered
	if errors.As(err, &t) {
		return t.tier
	}
	return TierDegradation
}

// Wrap and Wrapf re-export github.com/pkg/errors so callers never need a
// second import for the common case.
var (
	Wrap  = errors.Wrap
	Wrapf = errors.Wrapf
	New   = errors.New
	Is    = errors.Is
	As    = errors.As
)
