package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/magazine-catalog/internal/data"
)

func fixtureCatalog() []data.Magazine {
	wired := data.NewMagazine("Anna Author", "Wired", "Conde Nast", "1059-1028", 5, "01.06.2023", 7.99)
	wired.BorrowedCopies = 2
	zeit := data.NewMagazine("", "Die Zeit", "Zeitverlag", "0044-207X", 0, "29.02.2020", 5)
	wiredUK := data.NewMagazine("Ben Writer", "Wired", "Conde Nast UK", "1234-567X", 1, "15.01.2024", 6.5)
	return []data.Magazine{wired, zeit, wiredUK}
}

func writeFixture(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "magazine.txt")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, data.Encode(f, fixtureCatalog()))
	require.NoError(t, f.Close())
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func loadFile(t *testing.T, path string) []data.Magazine {
	t.Helper()

	catalog := data.NewCatalogModel()
	require.NoError(t, catalog.Load(path))
	return catalog.All()
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "catalog", cmd.Use)

	for _, name := range []string{"add", "find", "show", "list", "borrow", "return", "check"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	fileFlag := cmd.PersistentFlags().Lookup("file")
	require.NotNil(t, fileFlag)
	assert.Equal(t, "magazine.txt", fileFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, stderr, err := execute(t, "--format", "xml", "list")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "invalid format")
}

func TestUsageErrors(t *testing.T) {
	path := writeFixture(t)

	testCases := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"missing required flag", []string{"add", "--title", "Wired"}, ""},
		{"unknown flag", []string{"list", "--bogus"}, "unknown flag: --bogus"},
		{"missing argument", []string{"show"}, ""},
		{"extra argument", []string{"borrow", "1059-1028", "1234-567X"}, ""},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := execute(t, append([]string{"--file", path}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, stderr, tt.stderr)
		})
	}

	_, _, err := execute(t, "--file", path, "add", "--title", "Wired")
	assert.Contains(t, err.Error(), `required flag(s) "issn" not set`)
	assert.Len(t, loadFile(t, path), 3)
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "not found")))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "invalid flags", os.ErrInvalid)))
	assert.Equal(t, ExitCommandError, GetExitCode(os.ErrInvalid))
}

func TestShowGolden(t *testing.T) {
	path := writeFixture(t)

	stdout, _, err := execute(t, "--file", path, "show", "1059-1028")
	require.NoError(t, err)
	golden(t).Assert(t, "show_text", []byte(stdout))
}

func TestFindGolden(t *testing.T) {
	path := writeFixture(t)

	stdout, _, err := execute(t, "--file", path, "find", "--title", "Wired")
	require.NoError(t, err)
	golden(t).Assert(t, "find_text", []byte(stdout))
}

func TestListGolden(t *testing.T) {
	path := writeFixture(t)

	stdout, _, err := execute(t, "--file", path, "list")
	require.NoError(t, err)
	golden(t).Assert(t, "list_text", []byte(stdout))
}

func TestFindNoMatch(t *testing.T) {
	path := writeFixture(t)

	stdout, _, err := execute(t, "--file", path, "find", "--title", "wired")
	require.NoError(t, err)
	assert.Equal(t, "magazine not found\n", stdout)
}

func TestShowJSON(t *testing.T) {
	path := writeFixture(t)

	stdout, _, err := execute(t, "--file", path, "--format", "json", "show", "0044-207X")
	require.NoError(t, err)

	var res struct {
		Status string          `json:"status"`
		Data   []data.Magazine `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, "ok", res.Status)
	require.Len(t, res.Data, 1)
	assert.Equal(t, fixtureCatalog()[1], res.Data[0])
}

func TestShowNotFound(t *testing.T) {
	path := writeFixture(t)

	_, stderr, err := execute(t, "--file", path, "show", "0000-0000")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "Error [not_found]: magazine not found\n", stderr)
}

func TestAddAndRestock(t *testing.T) {
	path := writeFixture(t)

	stdout, _, err := execute(t, "--file", path, "add",
		"--author", "Carla Critic", "--title", "Spiegel", "--publisher", "Spiegel-Verlag",
		"--issn", "0038-7452", "--stock", "2", "--date", "06.01.2024", "--price", "6.9")
	require.NoError(t, err)
	assert.Equal(t, "magazine 0038-7452 added\n", stdout)

	stdout, _, err = execute(t, "--file", path, "add", "--issn", "1059-1028", "--stock", "3", "--date", "01.01.2000")
	require.NoError(t, err)
	assert.Equal(t, "magazine 1059-1028 already exists, stock increased by 3\n", stdout)

	magazines := loadFile(t, path)
	require.Len(t, magazines, 4)
	assert.Equal(t, 8, magazines[0].Stock)
	assert.Equal(t, data.NewMagazine("Carla Critic", "Spiegel", "Spiegel-Verlag", "0038-7452", 2, "06.01.2024", 6.9), magazines[3])
}

func TestAddInvalid(t *testing.T) {
	path := writeFixture(t)

	_, stderr, err := execute(t, "--file", path, "add", "--issn", "0038-7452", "--date", "29.02.2019")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "Error [invalid_input]: invalid magazine\n  publication_date: must be a valid date in the format DD.MM.YYYY\n", stderr)
	assert.Len(t, loadFile(t, path), 3)
}

func TestBorrowAndReturn(t *testing.T) {
	path := writeFixture(t)

	stdout, _, err := execute(t, "--file", path, "borrow", "1234-567X")
	require.NoError(t, err)
	assert.Equal(t, "magazine borrowed\n", stdout)

	_, stderr, err := execute(t, "--file", path, "borrow", "1234-567X")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stderr, "no copies available to borrow")

	assert.Equal(t, 1, loadFile(t, path)[2].BorrowedCopies)

	stdout, _, err = execute(t, "--file", path, "return", "1234-567X")
	require.NoError(t, err)
	assert.Equal(t, "magazine returned\n", stdout)

	_, stderr, err = execute(t, "--file", path, "return", "1234-567X")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stderr, "no borrowed copies to return")

	_, stderr, err = execute(t, "--file", path, "borrow", "0000-0000")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stderr, "magazine not found")

	_, stderr, err = execute(t, "--file", path, "return", "12345678")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stderr, "DDDD-DDDX")

	assert.Equal(t, 0, loadFile(t, path)[2].BorrowedCopies)
}

func TestMissingCatalogDeclined(t *testing.T) {
	path := filepath.Join(t.TempDir(), "magazine.txt")

	stdout, _, err := execute(t, "--file", path, "list")
	require.Error(t, err)
	assert.Equal(t, ExitSuccess, GetExitCode(err))
	assert.Contains(t, stdout, "--continue-empty")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMissingCatalogContinued(t *testing.T) {
	path := filepath.Join(t.TempDir(), "magazine.txt")

	_, _, err := execute(t, "--file", path, "--continue-empty", "add",
		"--title", "Wired", "--issn", "1059-1028", "--date", "01.06.2023")
	require.NoError(t, err)

	magazines := loadFile(t, path)
	require.Len(t, magazines, 1)
	assert.Equal(t, 1, magazines[0].Stock)
}

func TestCheck(t *testing.T) {
	path := writeFixture(t)

	stdout, _, err := execute(t, "--file", path, "check")
	require.NoError(t, err)
	assert.Equal(t, "catalog ok: 3 records\n", stdout)

	require.NoError(t, os.WriteFile(path, []byte("A\nT\nP\n1234-5678\n1\n01.01.2000\n1\n2\n"), 0o644))
	_, stderr, err := execute(t, "--file", path, "check")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stderr, "borrowed_copies must not exceed stock")
}
