package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/bnema/dx/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, path string) *Repository {
	t.Helper()

	config := viper.New()
	config.Set(ModulesPathKey, path)

	repo, err := NewRepository(config)
	require.NoError(t, err)
	return repo
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "module_map.toml"))

	modules := domain.ModuleMap{
		"zod":    {Name: "zod", URL: "npm:zod@3"},
		"fs":     {Name: "fs", URL: "jsr:@std/fs"},
		"$":      {Name: "$", URL: "https://cdn.example.com/jquery.js"},
		"lodash": {Name: "lodash", URL: "https://cdn.example.com/lodash.js?v=4"},
	}

	require.NoError(t, repo.Save(context.Background(), modules))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, modules, got)
}

func TestRepositorySaveIsDeterministic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "module_map.toml")
	repo := newTestRepository(t, path)

	modules := domain.ModuleMap{
		"b": {Name: "b", URL: "npm:b"},
		"a": {Name: "a", URL: "npm:a"},
		"c": {Name: "c", URL: "npm:c"},
	}

	require.NoError(t, repo.Save(context.Background(), modules))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), modules))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Less(t, strings.Index(string(first), "npm:a"), strings.Index(string(first), "npm:b"))
	assert.Less(t, strings.Index(string(first), "npm:b"), strings.Index(string(first), "npm:c"))
}

func TestRepositorySaveCreatesDefaultPathAndEnforcesPermissions(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	repo, err := NewRepository(viper.New())
	require.NoError(t, err)

	err = repo.Save(context.Background(), domain.ModuleMap{
		"zod": {Name: "zod", URL: "npm:zod"},
	})
	require.NoError(t, err)

	path := filepath.Join(homeDir, ".config", "dx", "module_map.toml")
	assert.Equal(t, path, repo.Path())
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRepositoryMissingFileLoadsEmpty(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "missing", "module_map.toml"))

	modules, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, modules)
}

func TestRepositoryEmptyFileLoadsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "module_map.toml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	repo := newTestRepository(t, path)

	modules, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, modules)
}

func TestRepositoryMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "module_map.toml")
	require.NoError(t, os.WriteFile(path, []byte("modules = ["), 0o600))
	repo := newTestRepository(t, path)

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode module map file")
}

func TestRepositoryKeysEntriesByTableName(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "module_map.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"version = 1",
		"",
		"[modules.zod]",
		"name = \"stale\"",
		"url = \"npm:zod\"",
		"",
		"[modules.empty]",
		"name = \"empty\"",
		"url = \"\"",
		"",
	}, "\n")), 0o600))
	repo := newTestRepository(t, path)

	modules, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ModuleMap{"zod": {Name: "zod", URL: "npm:zod"}}, modules)
}

func TestRepositorySaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "module_map.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, domain.ModuleMap{"zod": {Name: "zod", URL: "npm:zod"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRepositoryConcurrentSavesAcrossInstancesNeverCorrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "module_map.toml")
	repoA := newTestRepository(t, path)
	repoB := newTestRepository(t, path)

	const perRepoWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	write := func(repo *Repository, prefix string) {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			name := prefix + strconv.Itoa(i)
			errCh <- repo.Save(context.Background(), domain.ModuleMap{name: {Name: name, URL: "npm:" + name}})
		}
	}

	go write(repoA, "a")
	go write(repoB, "b")

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	modules, err := repoA.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, modules, 1)
}

func TestRepositorySaveSerializedTOMLIncludesVersion(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "module_map.toml")
	repo := newTestRepository(t, path)

	require.NoError(t, repo.Save(context.Background(), domain.ModuleMap{"zod": {Name: "zod", URL: "npm:zod"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
}

func TestRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "module_map.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 999\n"), 0o600))
	repo := newTestRepository(t, path)

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported module map schema version")
}
