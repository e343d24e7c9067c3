package batch

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/elapse/internal/engine"
)

//go:embed schema.cue
var schemaSource string

// File is a batch of evaluations, optionally with expected results.
type File struct {
	// Name identifies the batch in reports.
	Name string `yaml:"name" json:"name"`

	// Description explains what the batch covers.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Cases are evaluated independently; results keep this order.
	Cases []Case `yaml:"cases" json:"cases"`
}

// Case is one evaluation.
type Case struct {
	// Name uniquely identifies the case within its file.
	Name string `yaml:"name" json:"name"`

	// Op selects the operation; empty means auto.
	Op string `yaml:"op,omitempty" json:"op,omitempty"`

	// Args are the raw inputs, exactly as they would be typed on the
	// command line.
	Args []string `yaml:"args" json:"args"`

	// Expect is the expected result: a display string, or any duration or
	// timestamp that denotes the same value.
	Expect string `yaml:"expect,omitempty" json:"expect,omitempty"`

	// ExpectError is the expected error reason code.
	ExpectError string `yaml:"expect_error,omitempty" json:"expect_error,omitempty"`
}

// Operation returns the case's op, defaulting to auto.
func (c *Case) Operation() engine.Op {
	if c.Op == "" {
		return engine.OpAuto
	}
	return engine.Op(c.Op)
}

// Load reads and validates a batch file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or fails schema validation.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a batch file from YAML.
func Parse(data []byte) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ValidateSchema(&f); err != nil {
		return nil, fmt.Errorf("invalid batch file: %w", err)
	}
	if err := validateFile(&f); err != nil {
		return nil, fmt.Errorf("invalid batch file: %w", err)
	}
	return &f, nil
}

// SchemaError reports a batch file that does not satisfy the CUE schema.
type SchemaError struct {
	// Details is the formatted list of CUE errors, one per line.
	Details string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return "schema violation: " + e.Details
}

// ValidateSchema checks f against the embedded CUE schema.
func ValidateSchema(f *File) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#File"))
	value := def.Unify(ctx.Encode(f))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return &SchemaError{Details: cueerrors.Details(err, nil)}
	}
	return nil
}

// validateFile applies the rules the schema cannot express.
func validateFile(f *File) error {
	seen := make(map[string]bool, len(f.Cases))
	for i, c := range f.Cases {
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate case name %q", i, c.Name)
		}
		seen[c.Name] = true

		if c.Expect != "" && c.ExpectError != "" {
			return fmt.Errorf("cases[%d] (%s): expect and expect_error are mutually exclusive", i, c.Name)
		}
		if err := checkArity(c.Operation(), len(c.Args)); err != nil {
			return fmt.Errorf("cases[%d] (%s): %w", i, c.Name, err)
		}
	}
	return nil
}

func checkArity(op engine.Op, n int) error {
	switch op {
	case engine.OpAuto, engine.OpBetween, engine.OpAdd:
		if n != 2 {
			return fmt.Errorf("%s takes 2 args, got %d", op, n)
		}
	case engine.OpHours:
		if n != 1 {
			return fmt.Errorf("%s takes 1 arg, got %d", op, n)
		}
	}
	return nil
}
