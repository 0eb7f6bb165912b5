package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTables(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"airlines.csv":  "Name,IATA,Country\nKenya Airways,KQ,Kenya\n",
		"airplanes.csv": "Name,IATA code\nBoeing 787-8,788\n",
		"airports.csv": "Name,City,Country,IATA,Latitude,Longitude\n" +
			"Indira Gandhi International Airport,Delhi,India,DEL,28.5665,77.1031\n" +
			"Chhatrapati Shivaji International Airport,Mumbai,India,BOM,19.0887,72.8679\n" +
			"Jomo Kenyatta International Airport,Nairobi,Kenya,NBO,-1.3192,36.9278\n" +
			"Heathrow Airport,London,United Kingdom,LHR,51.4706,-0.4619\n",
		"routes.csv": "Source airport,Destination airport\n" +
			"DEL,BOM\nBOM,NBO\nDEL,DXB\nDXB,NBO\nLHR,JFK\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdirForTest(t, t.TempDir())
	t.Setenv("DATA_SOURCE", "csv")
	t.Setenv("PATHS_LIMIT", "3")
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(append([]string{"--data-dir", writeTables(t)}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestPathCommand(t *testing.T) {
	out, err := execute(t, "path", "DEL", "NBO")
	require.NoError(t, err)

	assert.Contains(t, out, "DEL -> BOM -> NBO (2 flights)")
	assert.Contains(t, out, "departure")
	assert.Contains(t, out, "Mumbai")
	assert.Contains(t, out, "-1.3192")
}

func TestPathCommandOutcomes(t *testing.T) {
	out, err := execute(t, "path", "DEL", "LHR")
	require.NoError(t, err)
	assert.Equal(t, "no route between DEL and LHR\n", out)

	_, err = execute(t, "path", "DEL", "SYD")
	require.ErrorIs(t, err, errUnknownAirport)
	assert.Contains(t, err.Error(), "SYD")

	_, err = execute(t, "path", "DEL")
	assert.Error(t, err)
}

func TestPathCommandUnknownStop(t *testing.T) {
	out, err := execute(t, "path", "DEL", "DXB")
	require.NoError(t, err)
	assert.Contains(t, out, "DEL -> DXB (1 flight)")
	assert.Contains(t, out, "arrival")
}

func TestAlternativesCommand(t *testing.T) {
	out, err := execute(t, "alternatives", "DEL", "NBO")
	require.NoError(t, err)
	assert.Contains(t, out, "shortest: DEL -> BOM -> NBO")
	assert.Contains(t, out, "DEL -> DXB -> NBO")

	out, err = execute(t, "alternatives", "DEL", "NBO", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "1. ")
	assert.NotContains(t, out, "2. ")

	_, err = execute(t, "alternatives", "DEL", "NBO", "--limit", "-2")
	assert.Error(t, err)
}

func TestStatsCommand(t *testing.T) {
	out, err := execute(t, "stats")
	require.NoError(t, err)
	assert.Equal(t, "airports: 6\nroutes: 5\n", out)
}

func TestEfficiencyCommand(t *testing.T) {
	out, err := execute(t, "efficiency", "DEL", "NBO")
	require.NoError(t, err)
	assert.Contains(t, out, "components")
	assert.Contains(t, out, "2 flights")
	assert.Contains(t, out, "4 edges")

	out, err = execute(t, "efficiency", "DEL", "JFK")
	require.NoError(t, err)
	assert.Contains(t, out, "no path")
}

func TestReachableCommand(t *testing.T) {
	out, err := execute(t, "reachable", "LHR")
	require.NoError(t, err)
	assert.Equal(t, "2 airports\nLHR\nJFK\n", out)

	_, err = execute(t, "reachable", "SYD")
	require.ErrorIs(t, err, errUnknownAirport)
	assert.Contains(t, err.Error(), "SYD")
}

func TestAirportsCommand(t *testing.T) {
	out, err := execute(t, "airports")
	require.NoError(t, err)
	assert.Contains(t, out, "CODE")
	assert.Less(t, bytes.Index([]byte(out), []byte("BOM")), bytes.Index([]byte(out), []byte("NBO")))
	assert.Less(t, bytes.Index([]byte(out), []byte("NBO")), bytes.Index([]byte(out), []byte("LHR")))

	out, err = execute(t, "airports", "--country", "Kenya")
	require.NoError(t, err)
	assert.Contains(t, out, "Jomo Kenyatta International Airport")
	assert.NotContains(t, out, "Heathrow")

	_, err = execute(t, "airports", "--country", "Atlantis")
	assert.Error(t, err)
}

func TestInvalidSource(t *testing.T) {
	_, err := execute(t, "--source", "s3", "stats")
	assert.Error(t, err)
}
