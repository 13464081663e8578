package actions

import (
	"errors"
	"fmt"

	"github.com/matzehuels/figx/pkg/config"
)

// errMissingTaggedInput is returned by splitTaggedInputs when a dependency
// with the expected tag is absent from an action's inputs.
var errMissingTaggedInput = errors.New("expected dependency not found among inputs")

// Kind identifies an EvaluationError's place in the evaluation-error
// taxonomy of spec §7, independent of the Go error type, so the CLI can
// switch on it without type assertions (mirrors config.Code for the
// loading-error taxonomy).
type Kind string

const (
	KindIO              Kind = "io"
	KindCache           Kind = "cache"
	KindWebpCreate      Kind = "webp_create"
	KindImageDecode     Kind = "image_decode"
	KindFigmaAPINetwork Kind = "figma_api_network"
	KindExportImage     Kind = "export_image"
	KindFindNode        Kind = "find_node"
	KindSvgToCompose    Kind = "svg_to_compose"
	KindSvgToDrawable   Kind = "svg_to_drawable"
	KindRenderSvg       Kind = "render_svg"
	KindInterrupted     Kind = "interrupted"
)

// EvaluationError is the structured error type every action returns on
// failure. NodeName/File/Span are populated for KindFindNode only.
type EvaluationError struct {
	Kind     Kind
	Message  string
	NodeName string
	File     string
	Span     config.Span
}

func (e *EvaluationError) Error() string {
	if e.NodeName != "" {
		return fmt.Sprintf("%s:%d:%d: node %q: %s", e.File, e.Span.Line, e.Span.Col, e.NodeName, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newEvalError(kind Kind, format string, args ...any) *EvaluationError {
	return &EvaluationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// wrapCacheErr classifies a cache.Cache error as a KindCache evaluation
// error, its lowest common denominator: every action funnels storage
// failures through here regardless of which Cache method produced them.
func wrapCacheErr(err error) error {
	if err == nil {
		return nil
	}
	return &EvaluationError{Kind: KindCache, Message: err.Error()}
}

// wrapFigmaErr classifies a pkg/figma client error as KindFigmaAPINetwork
// (an invalid token, rate limiting that exhausted its retries, a malformed
// response, a transport error), keeping the client error's message. A
// NullExportError is reported as KindExportImage by ExportImageAction,
// which checks for it before calling this.
func wrapFigmaErr(err error) error {
	if err == nil {
		return nil
	}
	return &EvaluationError{Kind: KindFigmaAPINetwork, Message: err.Error()}
}
