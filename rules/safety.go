package rules

import (
	codex "github.com/codex-14499/codexcheck"
	"github.com/codex-14499/codexcheck/i18n"
)

// MinSweepSeconds is the fixed floor for a full motion sweep on nodes that
// opt in to motion. It is not configurable.
const MinSweepSeconds = 14

// MotionSweepFloor requires safety.minSweepSec >= MinSweepSeconds whenever
// safety.motionOptIn is true. The issue is reported at
// <node>.safety.minSweepSec even when the schema pass accepted the node.
func MotionSweepFloor() Rule {
	return If("/safety/motionOptIn", Eq, true).Then(
		AtLeast("/safety/minSweepSec", MinSweepSeconds, codex.CodeBusinessRule, i18n.KeyMotionSweepFloor),
	)
}

// Default returns the rules applied to every node of a bundle.
func Default() []Rule { return []Rule{MotionSweepFloor()} }
