// Package evaluator turns a loaded, filtered Workspace into an executable
// Action Dependency Graph and drives it to completion (spec §4.5's six
// pipeline shapes, wired onto pkg/graph's builder/executor and pkg/actions'
// action set).
package evaluator

import "github.com/matzehuels/figx/pkg/actions"

const (
	// defaultScale is used when neither a variant nor its profile sets an
	// explicit scale.
	defaultScale = 1.0
	// defaultQuality is used when a Webp/AndroidWebp profile sets no
	// explicit quality.
	defaultQuality = 90
	// androidMasterScale is the scale requested from the remote for an
	// AndroidWebp resource's master export, chosen as the highest density
	// factor (xxxhdpi) so every lower density is a downscale, never an
	// upscale (spec §4.6: "Export(png@4x)").
	androidMasterScale = 4.0
)

// Options carries the evaluation flags that the CLI layers on top of a
// loaded Workspace — switches that describe how to run, not what to run
// (spec §4.6 import/fetch flags).
type Options struct {
	// Strict makes FindNode reject a vector-profile resource whose node
	// uses raster paints; without it such a node is accepted and no
	// warning is emitted (spec §9).
	Strict bool
	// ForceRefetch bypasses FetchRemote's stable-key cache hit, forcing a
	// live call to the remote on every resource sharing that remote.
	ForceRefetch bool
	// Tokens maps a declared remote's id to its already-resolved access
	// token (spec's AccessToken priority list, resolved by the caller —
	// keychain/env access is a CLI-layer concern, not an evaluator one).
	Tokens map[string]string
}

// state constructs the actions.EvalState this Options implies, given the
// runtime collaborators the CLI wires in.
func (o Options) state(st *actions.EvalState) *actions.EvalState {
	st.Strict = o.Strict
	return st
}
