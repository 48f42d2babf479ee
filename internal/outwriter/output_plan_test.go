package outwriter

import (
	"bytes"
	"testing"

	"github.com/perfgate/perfgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPlan is a plan for a 5% effect at 10% noise.
var testPlan = schema.PlannedSampleSize{
	MinimumN:     63,
	RecommendedN: 101,
	SafetyMargin: 1.6,
	Power:        0.80,
	Alpha:        0.05,
}

// TestWritePlanTable checks the plan table layout.
func TestWritePlanTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePlanTable(&buf, testPlan))

	out := buf.String()
	assert.Contains(t, out, "63")
	assert.Contains(t, out, "101")
	assert.Contains(t, out, "1.60x")
	assert.Contains(t, out, "0.80")
	assert.Contains(t, out, "0.050")
}

// TestWriteCSVPlan checks the CSV row.
func TestWriteCSVPlan(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSVPlan(&buf, testPlan))
	assert.Equal(t, "minimum_n,recommended_n,safety_margin,power,alpha\n63,101,1.6,0.8,0.05\n", buf.String())
}
