//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBrowseListings(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	listings, err := tf.WriteListings(7)
	require.NoError(t, err)

	err = tf.StartApp("-listings", listings, "-page-size", "4")
	require.NoError(t, err, "Failed to start app")

	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("7 stays"), "Should show the listing count")
	require.True(t, tf.SeePlain("Page 1/2"), "Should paginate")
	require.True(t, tf.SeePlain("$300"), "Should format prices")

	tf.NextPage()
	require.True(t, tf.SeePlain("Page 2/2"), "Should move to the second page")
	require.True(t, tf.SeePlain("Stay 6"), "Should show listings of the second page")

	tf.CycleSort()
	require.True(t, tf.SeePlain("Price: low to high"), "Should sort by price")
	require.True(t, tf.SeePlain("Page 1/2"), "Sorting returns to the first page")

	tf.Enter()
	require.True(t, tf.SeePlain("Opened Stay 6"), "Clicking the cheapest card should open it")

	tf.Quit()
}

func TestMapCanBeDisabled(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	listings, err := tf.WriteListings(2)
	require.NoError(t, err)

	err = tf.StartApp("-listings", listings, "-no-map")
	require.NoError(t, err, "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("Map unavailable"), "Should degrade to the list")

	tf.Quit()
}

func TestConfigFileIsApplied(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	listings, err := tf.WriteListings(3)
	require.NoError(t, err)

	cfg, err := tf.WriteConfig(`
currency = "€"
listings_file = "` + listings + `"

[features]
sort = false
pagination = false
map_toggle = true
`)
	require.NoError(t, err)

	err = tf.StartApp("-config", cfg)
	require.NoError(t, err, "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("€300"), "Should use the configured currency")
	require.True(t, tf.SeePlain("3 stays"), "Should load the configured listing file")

	tf.Quit()
}
