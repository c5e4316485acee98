package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driving"
)

func TestTypesCmd_Table(t *testing.T) {
	setupServices(t, false)

	out, _, err := execute(t, nil, "types")

	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "artProject")
	assert.Contains(t, out, "/entries")
	assert.Regexp(t, `ArtProject\s+artProject\s+-\s+project`, out)
}

func TestTypesCmd_JSON(t *testing.T) {
	setupServices(t, false)

	out, _, err := execute(t, nil, "types", "--json")

	require.NoError(t, err)
	var types []driving.TypeSummary
	require.NoError(t, json.Unmarshal([]byte(out), &types))
	assert.Len(t, types, 10)
}

func TestTypesCmd_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, _, err := execute(t, nil, "types")

	assert.EqualError(t, err, "schema service not configured")
}

func TestDescribeCmd(t *testing.T) {
	setupServices(t, false)

	out, _, err := execute(t, nil, "describe", "entry")

	require.NoError(t, err)
	assert.Contains(t, out, "Entry (entry)")
	assert.Contains(t, out, "default includes: comments")
	assert.Regexp(t, `bodyFormat\s+meta\s+computed`, out)
	assert.Regexp(t, `featured\s+entry\s+computed,gated,includable`, out)
	assert.Regexp(t, `comments\s+\[\]comment\s+includable`, out)
}

func TestDescribeCmd_Polymorphic(t *testing.T) {
	setupServices(t, false)

	out, _, err := execute(t, nil, "describe", "Project")

	require.NoError(t, err)
	assert.Contains(t, out, "Polymorphic on polymorphic_ctype")
	assert.Contains(t, out, "art -> artProject")
	assert.Contains(t, out, "research -> researchProject")
}

func TestDescribeCmd_JSON(t *testing.T) {
	setupServices(t, false)

	out, _, err := execute(t, nil, "describe", "blog", "--json")

	require.NoError(t, err)
	var desc driving.TypeDescription
	require.NoError(t, json.Unmarshal([]byte(out), &desc))
	assert.Equal(t, "Blog", desc.Name)
	assert.Equal(t, "/blogs", desc.Path)
}

func TestDescribeCmd_UnknownType(t *testing.T) {
	setupServices(t, false)

	_, _, err := execute(t, nil, "describe", "widget")

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}
