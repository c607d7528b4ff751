package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name       string
		raw        string
		expectErr  bool
		expectedID ID
	}{
		{
			name:       "graph input",
			raw:        "GraphInput",
			expectedID: GraphInput,
		},
		{
			name:       "graph output",
			raw:        "GraphOutput",
			expectedID: GraphOutput,
		},
		{
			name:       "full width hash",
			raw:        "node(00000000000000ff)",
			expectedID: FromHash(0xff),
		},
		{
			name:       "short hash",
			raw:        "node(1a)",
			expectedID: FromHash(0x1a),
		},
		{
			name:      "error - empty string",
			raw:       "",
			expectErr: true,
		},
		{
			name:      "error - not hex",
			raw:       "node(xyz)",
			expectErr: true,
		},
		{
			name:      "error - too long",
			raw:       "node(00000000000000000)",
			expectErr: true,
		},
		{
			name:      "error - bare word",
			raw:       "graphoutput",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := Parse(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedID, id)
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	ids := []ID{GraphInput, GraphOutput, NewFromName("mult"), NewRandom(), FromHash(0)}

	for _, id := range ids {
		t.Run(id.String(), func(t *testing.T) {
			parsed, err := Parse(id.String())
			require.NoError(t, err)
			assert.Equal(t, id, parsed)
		})
	}
}
