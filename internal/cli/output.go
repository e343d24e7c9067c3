package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/roach88/elapse/internal/engine"
	"github.com/roach88/elapse/internal/normalize"
	"github.com/roach88/elapse/internal/parser"
)

// Exit codes for CLI commands.
const (
	ExitSuccess             = 0 // Successful execution
	ExitInputError          = 1 // Input could not be parsed or names no real date
	ExitArithmeticError     = 2 // Result out of range, or an inverted clock range
	ExitCommandError        = 3 // Usage, config, or unreadable/invalid batch file
	ExitVerificationFailure = 4 // One or more batch cases failed
)

// ErrCodeCommand is the reason code reported for errors that are not
// input or arithmetic errors.
const ErrCodeCommand = "CommandError"

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Errors that carry no ExitError are classified by type: parse and
// normalization errors exit 1, arithmetic errors 2, anything else 3.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return classify(err)
}

func classify(err error) int {
	switch {
	case parser.IsParseError(err), normalize.IsNormalizationError(err):
		return ExitInputError
	case engine.IsArithmeticError(err):
		return ExitArithmeticError
	}
	return ExitCommandError
}

// cborEncMode encodes structured output deterministically.
var cborEncMode = func() cbor.EncMode {
	em, err := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}
	return em
}()

// OutputFormatter handles text vs structured output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for errors and verbose output (defaults to Writer)
	Verbose   bool
	RunID     string // Included in structured responses when set
}

// CLIResponse is the standard structured response format for CLI output.
type CLIResponse struct {
	// Status is "ok" or "error".
	Status string      `json:"status" yaml:"status" cbor:"status"`
	Data   interface{} `json:"data,omitempty" yaml:"data,omitempty" cbor:"data,omitempty"`
	Error  *CLIError   `json:"error,omitempty" yaml:"error,omitempty" cbor:"error,omitempty"`

	// RunID correlates batch output with its logs.
	RunID string `json:"run_id,omitempty" yaml:"run_id,omitempty" cbor:"run_id,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	// Code is the reason code, e.g. "OutOfRangeField".
	Code    string      `json:"code" yaml:"code" cbor:"code"`
	Message string      `json:"message" yaml:"message" cbor:"message"`
	Details interface{} `json:"details,omitempty" yaml:"details,omitempty" cbor:"details,omitempty"`
}

// TextWriter is implemented by payloads with a custom text rendering.
type TextWriter interface {
	WriteText(w io.Writer) error
}

// IsStructured reports whether the format is json, yaml or cbor.
func (f *OutputFormatter) IsStructured() bool {
	return f.Format != "" && f.Format != "text"
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.IsStructured() {
		return f.encode(CLIResponse{Status: "ok", Data: data, RunID: f.RunID})
	}

	// Human-readable text output
	if tw, ok := data.(TextWriter); ok {
		return tw.WriteText(f.Writer)
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs an error in the configured format. Text errors go to
// ErrWriter; structured errors go to Writer so the stream stays parseable.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.IsStructured() {
		return f.encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
			RunID: f.RunID,
		})
	}

	// Human-readable error
	w := f.GetErrWriter()
	fmt.Fprintf(w, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(w, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err through the formatter and returns an ExitError whose
// code matches the error's class.
func (f *OutputFormatter) Fail(err error) error {
	code, message := Describe(err)
	_ = f.Error(code, message, errorDetails(err))
	return WrapExitError(GetExitCode(err), code, err)
}

// Describe splits an error into its reason code and message.
func Describe(err error) (code, message string) {
	code = engine.ErrorCode(err)
	if code == "" {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Err == nil {
			return ErrCodeCommand, exitErr.Message
		}
		return ErrCodeCommand, err.Error()
	}

	message = err.Error()
	if i := strings.Index(message, code+": "); i >= 0 {
		message = message[:i] + message[i+len(code)+2:]
	}
	return code, message
}

// errorDetails extracts structured context from typed errors.
func errorDetails(err error) map[string]string {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		d := map[string]string{"input": pe.Input}
		if pe.Fragment != "" {
			d["fragment"] = pe.Fragment
		}
		return d
	}
	var ne *normalize.NormalizationError
	if errors.As(err, &ne) {
		return map[string]string{
			"date": fmt.Sprintf("%04d-%02d-%02d", ne.Fields.Year, ne.Fields.Month, ne.Fields.Day),
		}
	}
	var ae *engine.ArithmeticError
	if errors.As(err, &ae) && len(ae.Details) > 0 {
		return ae.Details
	}
	return nil
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	switch f.Format {
	case "yaml":
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return err
		}
		return enc.Close()
	case "cbor":
		data, err := cborEncMode.Marshal(resp)
		if err != nil {
			return err
		}
		_, err = f.Writer.Write(data)
		return err
	}
	return json.NewEncoder(f.Writer).Encode(resp)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When output is structured, verbose logs go to ErrWriter to avoid corrupting it.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
