package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaa/alphamath/internal/dispatch"
)

func TestList_Text(t *testing.T) {
	out, _, err := execute(t, "", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "EXAMPLE")
	for _, name := range []string{"congruence", "crt", "cubic", "multiplier", "sturm", "trig", "algebra", "division", "quadratic"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "14 30 100")
}

func TestList_JSON(t *testing.T) {
	out, _, err := execute(t, "", "list", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   []dispatch.Entry `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 9)
	assert.Equal(t, dispatch.Entry{
		Key:    "1",
		Name:   "congruence",
		Title:  resp.Data[0].Title,
		Usage:  "a b m",
		Sample: "14 30 100",
	}, resp.Data[0])
	assert.Equal(t, "quadratic", resp.Data[8].Name)
}
