package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menufind/models"
	"menufind/search"
	"menufind/variants"
)

func isolateEnv(t *testing.T) {
	for _, k := range []string{"TAXONOMY_SOURCE_URL", "DATABASE_URL", "REDIS_URL", "GOOGLE_MAPS_API_KEY", "MAX_VARIANTS", "LOG_FORMAT", "PORT"} {
		t.Setenv(k, "")
	}
}

func run(t *testing.T, args ...string) ([]byte, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.Bytes(), err
}

func TestVariantsCommand(t *testing.T) {
	isolateEnv(t)

	out, err := run(t, "variants", "pizza", "--max", "3")
	require.NoError(t, err)

	var res variants.Result
	require.NoError(t, json.Unmarshal(out, &res))
	require.Len(t, res.Variants, 3)
	assert.Equal(t, "pizza", res.Variants[0])
	assert.Equal(t, "%pizza%", res.Patterns[0])
}

func TestAnalyzeCommand_FreeTextWithoutSource(t *testing.T) {
	isolateEnv(t)

	out, err := run(t, "analyze", "ćevapi", "u", "Splitu")
	require.NoError(t, err)

	var an search.Analysis
	require.NoError(t, json.Unmarshal(out, &an))
	assert.True(t, an.FreeTextOnly)
	assert.Equal(t, "ćevapi u Splitu", an.Prompt)
	assert.Equal(t, "split", an.Location.City)
}

func TestLocationCommand(t *testing.T) {
	isolateEnv(t)

	out, err := run(t, "location", "pizza near me", "--lat", "45.1", "--lon", "15.2")
	require.NoError(t, err)

	var resp struct {
		Context models.LocationContext `json:"context"`
		Area    models.SearchArea      `json:"area"`
	}
	require.NoError(t, json.Unmarshal(out, &resp))
	assert.Equal(t, models.UserLocation, resp.Context.Type)
	require.NotNil(t, resp.Area.Center)
	assert.Equal(t, models.LatLng{Lat: 45.1, Lng: 15.2}, *resp.Area.Center)
	assert.Nil(t, resp.Area.RadiusKm)
}

func TestLocationCommand_RequiresBothCoordinates(t *testing.T) {
	isolateEnv(t)

	_, err := run(t, "location", "pizza", "--lat", "45.1")
	assert.Error(t, err)
}

func TestCommands_RequireArgument(t *testing.T) {
	isolateEnv(t)

	_, err := run(t, "variants")
	assert.Error(t, err)
}
