package packspec

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	oerrors "github.com/modpack/cli/internal/errors"
)

//go:embed schema.cue
var schemaSource []byte

// Validator checks specs against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	compiled := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if compiled.Err() != nil {
		return nil, fmt.Errorf("compiling spec schema: %w", compiled.Err())
	}

	def := compiled.LookupPath(cue.ParsePath("#Spec"))
	if def.Err() != nil {
		return nil, fmt.Errorf("spec schema definition #Spec not found: %w", def.Err())
	}

	return &Validator{ctx: ctx, schema: def}, nil
}

// Validate unifies s with #Spec and requires a concrete result.
func (v *Validator) Validate(s Spec) error {
	data := v.ctx.Encode(s)
	if data.Err() != nil {
		return fmt.Errorf("encoding spec: %w", data.Err())
	}

	unified := v.schema.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return schemaError(s.Output.FilePath, err)
	}
	return nil
}

// Validate checks s with a freshly compiled schema.
func Validate(s Spec) error {
	v, err := NewValidator()
	if err != nil {
		return err
	}
	return v.Validate(s)
}

func schemaError(location string, err error) error {
	var lines []string
	for _, e := range cueerrors.Errors(err) {
		lines = append(lines, e.Error())
	}
	if len(lines) == 0 {
		lines = append(lines, err.Error())
	}

	return &oerrors.DetailError{
		Type:     "invalid packer spec",
		Message:  strings.Join(lines, "\n  "),
		Location: location,
		Hint:     "Check the output and ignore settings in the configuration file.",
		Cause:    fmt.Errorf("%w: %w", oerrors.ErrValidation, err),
	}
}
