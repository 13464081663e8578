package config

import "fmt"

// Span locates a byte range within a source file, carried by parse and
// validation errors so the CLI can render a caret-underlined message
// (spec §4.2, §7). Line/Col are 1-based; Start/Len are byte offsets into
// the file, mirroring github.com/BurntSushi/toml's ParseError.Position().
type Span struct {
	File  string
	Line  int
	Col   int
	Start int
	Len   int
}

// Code identifies an error's kind within the LoadingError taxonomy of
// spec §7, independent of the Go error type, so the CLI can switch on it
// without type assertions.
type Code string

const (
	CodeInitNotInWorkspace         Code = "init_not_in_workspace"
	CodeInaccessibleCwd            Code = "inaccessible_cwd"
	CodeWorkspaceRead              Code = "workspace_read"
	CodeWorkspaceParse             Code = "workspace_parse"
	CodeWorkspaceRemoteNoAccessToken Code = "workspace_remote_no_access_token"
	CodeWorkspaceMoreThanOneDefault Code = "workspace_more_than_one_default_remote"
	CodeWorkspaceAtLeastOneDefault  Code = "workspace_at_least_one_default_remote"
	CodeWorkspaceRemoteEmptyNodeID  Code = "workspace_remote_empty_node_id"
	CodeFigTraversing              Code = "fig_traversing"
	CodeFigRead                    Code = "fig_read"
	CodeFigParse                   Code = "fig_parse"
	CodeFigInvalidResourceName     Code = "fig_invalid_resource_name"
	CodeFigInvalidPackage          Code = "fig_invalid_package"
	CodeFigInvalidProfileName      Code = "fig_invalid_profile_name"
	CodeFigInvalidRemoteName       Code = "fig_invalid_remote_name"
	CodeInvalidProfileToExtend     Code = "invalid_profile_to_extend"
)

// LoadingError is the structured error type returned by the loader and
// parsers. Span is the zero value when the error has no associated source
// location (e.g. CodeInitNotInWorkspace).
type LoadingError struct {
	Code    Code
	Message string
	Span    Span
}

func (e *LoadingError) Error() string {
	if e.Span.File == "" {
		return e.Message
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Span.File, e.Span.Line, e.Span.Col, e.Message)
}

func newError(code Code, span Span, format string, args ...any) *LoadingError {
	return &LoadingError{Code: code, Message: fmt.Sprintf(format, args...), Span: span}
}
