package observer

import (
	"bytes"
	"math"
	"testing"

	"ecpass/app"
	"ecpass/domain/formula"
	"ecpass/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogObserver_SuccessWithoutFallbacks(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(internal.NewLogger(internal.LogLevelTrace, &buf))

	svc := app.NewPasswordService(formula.Logistic, obs)
	_, err := svc.GeneratePassword("quiet", 16)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[INFO] generated 16-character password")
	assert.Contains(t, out, "stage seed completed")
	assert.Contains(t, out, "stage map completed (16 values)")
	assert.NotContains(t, out, "quiet", "memorable input must not be logged")
	assert.Equal(t, int64(0), obs.Fallbacks())
}

func TestLogObserver_ReportsFallbacks(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(internal.NewLogger(internal.LogLevelDebug, &buf))

	svc := app.NewPasswordService(func(x float64) float64 { return math.NaN() }, obs)
	pw, err := svc.GeneratePassword("loud", 4)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[WARN] generated 4-character password; 3 of 3 steps used the tanh fallback")
	assert.Contains(t, out, "[DEBUG] step 1 was non-finite")
	assert.NotContains(t, out, pw)
	assert.Equal(t, int64(3), obs.Fallbacks())
}

func TestLogObserver_Failure(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(internal.NewLogger(internal.LogLevelError, &buf))

	svc := app.NewPasswordService(formula.Logistic, obs)
	_, err := svc.GeneratePassword("x", -2)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "[ERROR] password generation failed at validate")
}
