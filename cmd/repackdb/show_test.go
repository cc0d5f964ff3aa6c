package main_test

import (
	"context"
	"testing"

	"github.com/repackdb/repackdb"
	main "github.com/repackdb/repackdb/cmd/repackdb"
	"github.com/repackdb/repackdb/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	sample := &repackdb.Repack{
		ID:         "id-1",
		URL:        "https://example.com/game-1/",
		Title:      "Game 1",
		Company:    repackdb.String("Acme"),
		RepackSize: repackdb.String("from 25 GB"),
		Magnets: []repackdb.Magnet{
			{Source: "1337x", URI: "magnet:?xt=urn:btih:aaa"},
		},
		Mirrors: []string{"DataNodes"},
	}

	t.Run("resolves URLs via FindRepackByURL", func(t *testing.T) {
		t.Parallel()

		repacks := &mock.RepackService{
			FindRepackByURLFn: func(_ context.Context, url string) (*repackdb.Repack, error) {
				assert.Equal(t, sample.URL, url)
				return sample, nil
			},
		}

		deps, stdout, _ := testDeps(repacks)
		require.NoError(t, (&main.ShowCmd{Key: sample.URL}).Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "Game 1")
		assert.Contains(t, output, "Company:")
		assert.Contains(t, output, "Acme")
		assert.Contains(t, output, "magnet:?xt=urn:btih:aaa")
		assert.Contains(t, output, "DataNodes")
	})

	t.Run("falls back from ID to exact title", func(t *testing.T) {
		t.Parallel()

		repacks := &mock.RepackService{
			FindRepackByIDFn: func(_ context.Context, id string) (*repackdb.Repack, error) {
				return nil, repackdb.Errorf(repackdb.ENOTFOUND, "repack not found")
			},
			FindRepackByTitleFn: func(_ context.Context, title string) (*repackdb.Repack, error) {
				assert.Equal(t, "Game 1", title)
				return sample, nil
			},
		}

		deps, stdout, _ := testDeps(repacks)
		require.NoError(t, (&main.ShowCmd{Key: "Game 1"}).Run(deps))
		assert.Contains(t, stdout.String(), "https://example.com/game-1/")
	})

	t.Run("reports unknown keys", func(t *testing.T) {
		t.Parallel()

		repacks := &mock.RepackService{
			FindRepackByIDFn: func(context.Context, string) (*repackdb.Repack, error) {
				return nil, repackdb.Errorf(repackdb.ENOTFOUND, "repack not found")
			},
			FindRepackByTitleFn: func(context.Context, string) (*repackdb.Repack, error) {
				return nil, repackdb.Errorf(repackdb.ENOTFOUND, "repack not found")
			},
		}

		deps, _, stderr := testDeps(repacks)
		err := (&main.ShowCmd{Key: "unknown"}).Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestStatsCmd_Run(t *testing.T) {
	t.Parallel()

	repacks := &mock.RepackService{
		StatsFn: func(context.Context) (*repackdb.Stats, error) {
			return &repackdb.Stats{Repacks: 42, Magnets: 84, Companies: 7}, nil
		},
	}

	deps, stdout, _ := testDeps(repacks)
	require.NoError(t, (&main.StatsCmd{}).Run(deps))

	output := stdout.String()
	assert.Contains(t, output, "Repacks:   42")
	assert.Contains(t, output, "Magnets:   84")
	assert.Contains(t, output, "Companies: 7")
}
