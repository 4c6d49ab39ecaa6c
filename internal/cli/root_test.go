package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/esenrich/internal/cli/commands"
	"github.com/leapstack-labs/esenrich/internal/service"
	"github.com/leapstack-labs/esenrich/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"run", "preview", "serve", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestRootCmd_VersionSkipsConfig(t *testing.T) {
	t.Setenv("ESENRICH_LOG_LEVEL", "nonsense")

	out, _, err := executeRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "esenrich v"+Version)
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	_, _, err := executeRoot(t, "run", "--pointer", "x.csv", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log_level")
}

// writeProject lays out reference data, one upload and a config file, and
// returns the config path and staging directory.
func writeProject(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	testutil.WriteFile(t, root, "ref/ons/enrichment/location_lookup.csv", "gor_code,region,GOR_DESC\n7,3,South\n")
	testutil.WriteFile(t, root, "ref/ons/enrichment/responder_lookup.csv", "ref,county\n123,50\n")
	testutil.WriteFile(t, root, "ref/thomashensonons/testcollection/_countyLookup.csv", "cty_code,county_name\n50,Kent\n")
	testutil.WriteFile(t, root, "uploads/ons-bucket/datafile.csv", "idbr,gor_code,PERIOD,tot,lorm\n123,7,201503,85000,l\n")
	cfgPath := testutil.WriteFile(t, root, "esenrich.yaml", "data_dir: ref\ninput_dir: uploads\n")
	tmp := filepath.Join(root, "tmp")
	require.NoError(t, os.MkdirAll(tmp, 0o750))
	return cfgPath, tmp
}

func TestRootCmd_RunFromConfigFile(t *testing.T) {
	cfgPath, tmp := writeProject(t)

	out, _, err := executeRoot(t, "run",
		"--config", cfgPath,
		"--temp-dir", tmp,
		"--pointer", "ons-bucket/datafile.csv",
	)
	require.NoError(t, err)

	var resp service.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success, resp.Error)
	assert.Contains(t, resp.Data, `"strata":"C"`)
}

func TestExecute_ReportsRunFailureOnce(t *testing.T) {
	cfgPath, tmp := writeProject(t)

	cmd := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"run", "--config", cfgPath, "--temp-dir", tmp, "--pointer", "ons-bucket/missing.csv"})

	err := execute(cmd, errOut)
	require.ErrorIs(t, err, commands.ErrEnrichmentFailed)

	var resp service.Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.False(t, resp.Success)

	assert.Equal(t, 1, strings.Count(errOut.String(), "Unable to get datafile"), "stderr: %q", errOut.String())
	assert.NotContains(t, errOut.String(), "Error: enrichment failed")
	assert.NotContains(t, errOut.String(), "Usage:")
}

func TestExecute_PrintsOtherErrors(t *testing.T) {
	cmd := NewRootCmd()
	errOut := new(bytes.Buffer)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"run", "--pointer", "x.csv", "--log-level", "loud"})

	require.Error(t, execute(cmd, errOut))
	assert.Contains(t, errOut.String(), "Error: invalid configuration")
}
