package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/auth"
	"github.com/abhisek/learnpath/internal/flags"
	"github.com/abhisek/learnpath/internal/progress"
	"github.com/abhisek/learnpath/internal/store"
)

// execute runs the root command with args and returns its output. Flag
// values are reset first since the command tree is package state.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// seedProgress signs in Ada and completes the first concurrency lesson in
// the database at path. It returns Ada's user id.
func seedProgress(t *testing.T, path string) string {
	t.Helper()
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	fl := flags.New(st.KVRepo(), nil)
	u, err := auth.NewSession(st.KVRepo(), fl, nil).SignIn(ctx, "Ada")
	require.NoError(t, err)

	p := progress.NewStore(st.ProgressRepo(u.ID), nil)
	require.NoError(t, p.MarkItemComplete(ctx, "concurrency", "concurrency-goroutines"))
	require.NoError(t, p.SetLastRead(ctx, "concurrency", "concurrency-goroutines", "Concurrency", "Goroutines"))
	require.NoError(t, fl.Set(ctx, flags.KeySlidesShown, true))
	return u.ID
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "learnpath (devel)\n", out)
}

func TestTrackList(t *testing.T) {
	out, err := execute(t, "", "track", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "go-basics")
	assert.Contains(t, out, "concurrency")
	assert.Contains(t, out, "\n3 tracks\n")
}

func TestTrackListBadLevel(t *testing.T) {
	_, err := execute(t, "", "track", "list", "--level", "expert")
	assert.Error(t, err)
}

func TestTrackShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "learnpath.db")
	seedProgress(t, db)

	out, err := execute(t, "", "--db", db, "track", "show", "concurrency")
	require.NoError(t, err)
	assert.Contains(t, out, "Concurrency")
	assert.Contains(t, out, "Goroutines")
	assert.Contains(t, out, "1/4 completed (25%)")
}

func TestTrackShowUnknown(t *testing.T) {
	db := filepath.Join(t.TempDir(), "learnpath.db")
	_, err := execute(t, "", "--db", db, "track", "show", "nope")
	assert.ErrorContains(t, err, `unknown track "nope"`)
}

func TestStats(t *testing.T) {
	db := filepath.Join(t.TempDir(), "learnpath.db")
	seedProgress(t, db)

	out, err := execute(t, "", "--db", db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Learner: Ada")
	assert.Contains(t, out, "Lessons completed: 1 of 12")
	assert.Contains(t, out, "Last read: Concurrency / Goroutines")
	assert.Contains(t, out, "Channels", "up next for the concurrency track")
}

func TestValidateBuiltIn(t *testing.T) {
	out, err := execute(t, "", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "built-in catalog: 3 tracks, 12 lessons")
	assert.Contains(t, out, "OK")
}

func TestValidateReportsOrderGap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `version: v1.0.0
tracks:
  - id: t
    name: T
    items:
      - {id: a, order: 1, level: beginner, title: A, estimated_minutes: 1}
      - {id: b, order: 3, level: beginner, title: B, estimated_minutes: 1}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := execute(t, "", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "warning: t:")
	assert.NotContains(t, out, "OK")
}

func TestValidateRejectsBadVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: v2.0.0\ntracks: []\n"), 0o644))

	_, err := execute(t, "", "validate", path)
	assert.ErrorContains(t, err, "invalid catalog")
}

func TestResetAborts(t *testing.T) {
	db := filepath.Join(t.TempDir(), "learnpath.db")
	seedProgress(t, db)

	out, err := execute(t, "n\n", "--db", db, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")

	out, err = execute(t, "", "--db", db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Lessons completed: 1 of 12")
}

func TestResetProgressKeepsFlags(t *testing.T) {
	db := filepath.Join(t.TempDir(), "learnpath.db")
	userID := seedProgress(t, db)

	out, err := execute(t, "", "--db", db, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted progress.")

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	ctx := context.Background()

	p := progress.NewStore(st.ProgressRepo(userID), nil)
	require.NoError(t, p.Load(ctx))
	assert.Empty(t, p.Completed())
	assert.True(t, flags.New(st.KVRepo(), nil).IsSet(ctx, flags.KeySlidesShown))
}

func TestResetAll(t *testing.T) {
	db := filepath.Join(t.TempDir(), "learnpath.db")
	userID := seedProgress(t, db)

	out, err := execute(t, "y\n", "--db", db, "reset", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted all learner data.")

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	ctx := context.Background()
	assert.False(t, flags.New(st.KVRepo(), nil).IsSet(ctx, flags.KeySlidesShown))
	done, err := st.ProgressRepo(userID).Completed(ctx)
	require.NoError(t, err)
	assert.Empty(t, done)
}

func TestStatsShowsOnlySignedInLearner(t *testing.T) {
	db := filepath.Join(t.TempDir(), "learnpath.db")
	seedProgress(t, db)

	st, err := store.Open(db)
	require.NoError(t, err)
	_, err = auth.NewSession(st.KVRepo(), flags.New(st.KVRepo(), nil), nil).SignIn(context.Background(), "Bob")
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := execute(t, "", "--db", db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Learner: Bob")
	assert.Contains(t, out, "Lessons completed: 0 of 12")
	assert.NotContains(t, out, "Last read:")
}

func TestResetRequiresLearner(t *testing.T) {
	db := filepath.Join(t.TempDir(), "learnpath.db")
	_, err := execute(t, "", "--db", db, "reset", "--yes")
	assert.ErrorContains(t, err, "no learner is signed in")
}
