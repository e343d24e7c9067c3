package cli

import (
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEvalCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"elapsed", []string{"2024-01-01T00:00:00", "2024-01-02T03:04:05"}, "1d 03h 04m 05s"},
		{"negative elapsed", []string{"2024-01-02T03:04:05", "2024-01-01T00:00:00"}, "-1d 03h 04m 05s"},
		{"shift keeps offset", []string{"2024-03-10T02:30:00-05:00", "+1d"}, "2024-03-11T02:30:00-05:00"},
		{"duration first", []string{"1h", "2024-01-01"}, "2024-01-01T01:00:00"},
		{"two durations", []string{"1h30m", "45m"}, "02h 15m 00s"},
		{"now", []string{"2024-03-10T00:00:00Z", "now"}, "07h 30m 00s"},
		{"leap day", []string{"2024-02-28", "2024-03-01"}, "2d 00h 00m 00s"},
		{"between", []string{"between", "2000-02-28", "2000-03-01"}, "2d 00h 00m 00s"},
		{"diff alias", []string{"diff", "2024-01-01T00:00:00Z", "2024-01-01T00:00:00.5Z"}, "00.5s"},
		{"add", []string{"add", "2024-01-31", "1d"}, "2024-02-01T00:00:00"},
		{"add negative", []string{"add", "2024-01-01", "--", "-1d"}, "2023-12-31T00:00:00"},
		{"sum", []string{"sum", "1h", "15s", "--", "-30m"}, "30m 15s"},
		{"sum single", []string{"sum", "0s"}, "00s"},
		{"hours", []string{"hours", "9:00AM-5:30PM"}, "8.50 hours"},
		{"hours bare", []string{"hours", "9:00-5:30"}, "8.50 hours"},
		{"hours since", []string{"hours", "6:00"}, "1.50 hours"},
		{"hours since with offset", []string{"hours", "--offset", "-05:00", "1:00"}, "1.50 hours"},
		{"hours since east of UTC", []string{"--offset", "+02:00", "hours", "6:00"}, "3.50 hours"},
		{"offset ignores closed range", []string{"hours", "--offset", "-05:00", "9:00AM-5:30PM"}, "8.50 hours"},
		{"long style", []string{"--style", "long", "1d3h4m5s", "0s"}, "1 day 3 hours 4 minutes 5 seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := runCLI(t, tt.args...)
			require.Equal(t, ExitSuccess, code, "stderr: %s", stderr)
			assert.Equal(t, tt.want+"\n", stdout)
			assert.Empty(t, stderr)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{
			name:     "month out of range",
			args:     []string{"2024-13-01", "1d"},
			wantCode: ExitInputError,
			wantErr:  `Error [OutOfRangeField]: month 13 out of range 01-12 (input "2024-13-01", at "13")`,
		},
		{
			name:     "not a leap year",
			args:     []string{"2023-02-29", "2023-03-01"},
			wantCode: ExitInputError,
			wantErr:  "Error [InvalidCalendarDate]: February 2023 has 28 days (date 2023-02-29)",
		},
		{
			name:     "calendar unit",
			args:     []string{"sum", "1mo"},
			wantCode: ExitInputError,
			wantErr:  "Error [UnknownUnit]",
		},
		{
			name:     "between needs timestamps",
			args:     []string{"between", "1h", "2024-01-01"},
			wantCode: ExitInputError,
			wantErr:  `Error [MalformedDate]: expected timestamp or now, got duration (input "1h")`,
		},
		{
			name:     "overflow",
			args:     []string{"106751991167300d", "106751991167300d"},
			wantCode: ExitArithmeticError,
			wantErr:  "Error [Overflow]: result exceeds the 64-bit seconds range",
		},
		{
			name:     "inverted range",
			args:     []string{"hours", "05:00PM-09:00AM"},
			wantCode: ExitArithmeticError,
			wantErr:  "Error [InvertedRange]: end 9:00AM is before start 5:00PM (op=hours)",
		},
		{
			name:     "meridiem on a single time",
			args:     []string{"hours", "6:00AM"},
			wantCode: ExitInputError,
			wantErr:  "Error [MalformedClock]",
		},
		{
			name:     "ends before it starts on the offset clock",
			args:     []string{"hours", "--offset", "-05:00", "6:00"},
			wantCode: ExitArithmeticError,
			wantErr:  "Error [InvertedRange]",
		},
		{
			name:     "offset out of range",
			args:     []string{"hours", "--offset", "+25:00", "6:00"},
			wantCode: ExitInputError,
			wantErr:  "Error [OutOfRangeField]: invalid offset",
		},
		{
			name:     "malformed offset",
			args:     []string{"--offset", "EST", "hours", "6:00"},
			wantCode: ExitInputError,
			wantErr:  "Error [MalformedDate]",
		},
		{
			name:     "ambiguous meridiem",
			args:     []string{"hours", "9:00AM-5:00"},
			wantCode: ExitInputError,
			wantErr:  "Error [AmbiguousMeridiem]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := runCLI(t, tt.args...)
			assert.Equal(t, tt.wantCode, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestEvalJSONGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	tests := []struct {
		name string
		args []string
	}{
		{"between", []string{"--format", "json", "between", "2024-01-01T00:00:00", "2024-01-02T03:04:05"}},
		{"add", []string{"--format", "json", "add", "2024-03-10T02:30:00-05:00", "+1d"}},
		{"hours", []string{"--format", "json", "hours", "9:00AM-5:30PM"}},
		{"error", []string{"--format", "json", "2024-13-01", "1d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, _ := runCLI(t, tt.args...)
			g.Assert(t, "eval-"+tt.name, []byte(stdout))
		})
	}
}

func TestEvalYAML(t *testing.T) {
	stdout, _, code := runCLI(t, "--format", "yaml", "sum", "1h", "30m")
	require.Equal(t, ExitSuccess, code)

	var resp struct {
		Status string     `yaml:"status"`
		Data   EvalOutput `yaml:"data"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "01h 30m 00s", resp.Data.Display)
	require.NotNil(t, resp.Data.Duration)
	assert.Equal(t, int64(5400), resp.Data.Duration.Seconds)
	assert.Equal(t, 1, resp.Data.Duration.Breakdown.Hours)
}

func TestEvalCBOR(t *testing.T) {
	stdout, _, code := runCLI(t, "--format", "cbor", "add", "2024-01-01T00:00:00Z", "1h")
	require.Equal(t, ExitSuccess, code)

	var resp struct {
		Status string     `cbor:"status"`
		Data   EvalOutput `cbor:"data"`
	}
	require.NoError(t, cbor.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "2024-01-01T01:00:00Z", resp.Data.Display)
	require.NotNil(t, resp.Data.Instant)
	assert.Equal(t, int64(1704070800), resp.Data.Instant.Seconds)
	assert.Equal(t, "Z", resp.Data.Instant.Offset)
}

func TestEvalJSONError(t *testing.T) {
	stdout, stderr, code := runCLI(t, "--format", "json", "hours", "05:00PM-09:00AM")
	assert.Equal(t, ExitArithmeticError, code)
	assert.Empty(t, stderr)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "InvertedRange", resp.Error.Code)
	assert.Equal(t, "end 9:00AM is before start 5:00PM (op=hours)", resp.Error.Message)
}

func TestEvalOffsetFromEnv(t *testing.T) {
	isolateConfig(t)
	t.Setenv("ELAPSE_OFFSET", "-05:00")

	stdout, stderr, code := execCLI(t, "hours", "1:00")
	assert.Equal(t, ExitSuccess, code, stderr)
	assert.Equal(t, "1.50 hours\n", stdout)

	// The flag wins over the environment.
	stdout, stderr, code = execCLI(t, "hours", "--offset", "Z", "6:00")
	assert.Equal(t, ExitSuccess, code, stderr)
	assert.Equal(t, "1.50 hours\n", stdout)
}
