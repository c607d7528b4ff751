package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/foldgraph/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		want     *app.Config
		wantExit bool
		wantErr  string
	}{
		{
			name: "positional path with defaults",
			args: []string{"demo.hcl"},
			want: &app.Config{
				PatchPath:        "demo.hcl",
				Ticks:            1,
				Quality:          "balanced",
				Inputs:           map[string]string{},
				LogFormat:        "text",
				LogLevel:         "info",
				PublishNamespace: "/",
			},
		},
		{
			name: "every option",
			args: []string{
				"-p", "demo.hcl",
				"-output", "numeric,text", "-output", "extra",
				"-input", "freq=2", "-input", "name=a=b",
				"-ticks", "4", "-start-tick", "10", "-quality", "LOWEST",
				"-log-format", "json", "-log-level", "debug",
				"-healthcheck-port", "8080",
				"-publish-url", "http://localhost:3000", "-publish-event", "tick",
			},
			want: &app.Config{
				PatchPath:        "demo.hcl",
				Outputs:          []string{"numeric", "text", "extra"},
				Ticks:            4,
				StartTick:        10,
				Quality:          "lowest",
				Inputs:           map[string]string{"freq": "2", "name": "a=b"},
				LogFormat:        "json",
				LogLevel:         "debug",
				HealthcheckPort:  8080,
				PublishURL:       "http://localhost:3000",
				PublishNamespace: "/",
				PublishEvent:     "tick",
			},
		},
		{
			name: "kinds without a patch",
			args: []string{"-kinds"},
			want: &app.Config{
				Ticks:     1,
				Quality:   "balanced",
				Inputs:    map[string]string{},
				LogFormat: "text",
				LogLevel:  "info",
				ListKinds: true,
			},
		},
		{name: "no path prints usage", args: nil, wantExit: true},
		{name: "help", args: []string{"-h"}, wantExit: true},
		{name: "bad log format", args: []string{"-log-format", "xml", "a.hcl"}, wantErr: "invalid log-format"},
		{name: "bad log level", args: []string{"-log-level", "loud", "a.hcl"}, wantErr: "invalid log-level"},
		{name: "bad input", args: []string{"-input", "novalue", "a.hcl"}, wantErr: "must have the form name=value"},
		{name: "bad quality", args: []string{"-quality", "ultra", "a.hcl"}, wantErr: `invalid quality "ultra"`},
		{name: "zero ticks", args: []string{"-ticks", "0", "a.hcl"}, wantErr: "ticks must be at least 1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			cfg, exit, err := Parse(tc.args, &out)

			if tc.wantErr != "" {
				require.Error(t, err)
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr))
				assert.Equal(t, 2, exitErr.Code)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantExit, exit)
			if tc.wantExit {
				assert.Contains(t, out.String(), "Usage:")
				return
			}
			if diff := cmp.Diff(tc.want, cfg); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
