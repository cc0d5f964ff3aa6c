package goquery_test

import (
	"testing"

	"github.com/repackdb/repackdb"
	"github.com/repackdb/repackdb/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPage = `
<html><body>
<article>
	<h1 class="entry-title"><a href="https://example.com/some-game/">Some Game</a></h1>
	<time class="entry-date" datetime="2024-03-01T10:00:00+00:00">March 1, 2024</time>
	<div class="entry-content">
		<h3>Some Game – v1.2</h3>
		<p>Genres/Tags: Action, RPG<br>
		Company: Acme<br>
		Languages: ENG/RUS<br>
		Original Size: 24.9 GB<br>
		Repack Size: from 11.2 GB</p>
		<h3>Download Mirrors</h3>
		<ul>
			<li>Source A | <a href="magnet:?xt=urn:btih:aaa">magnet</a> [12 GB]</li>
			<li>Source B [.torrent file] <a href="magnet:?xt=urn:btih:bbb">magnet</a></li>
		</ul>
		<p>Download Mirrors (Direct Links)</p>
		<p>A short description of the game.</p>
	</div>
</article>
<article>
	<h2 class="entry-title">Upcoming Repacks</h2>
	<div class="entry-content"><p>What is coming.</p></div>
</article>
</body></html>`

func TestExtractor_ExtractList(t *testing.T) {
	t.Parallel()

	t.Run("extracts entries with fields and magnets", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		repacks, err := e.ExtractList(listingPage)
		require.NoError(t, err)
		require.Len(t, repacks, 2)

		r := repacks[0]
		assert.Equal(t, "Some Game", r.Title)
		assert.Equal(t, "https://example.com/some-game/", r.URL)
		assert.Equal(t, "2024-03-01T10:00:00+00:00", repackdb.StringValue(r.Date))
		assert.Equal(t, "Action, RPG", repackdb.StringValue(r.GenresTags))
		assert.Equal(t, "Acme", repackdb.StringValue(r.Company))
		assert.Equal(t, "ENG/RUS", repackdb.StringValue(r.Languages))
		assert.Equal(t, "24.9 GB", repackdb.StringValue(r.OriginalSize))
		assert.Equal(t, "from 11.2 GB", repackdb.StringValue(r.RepackSize))

		require.Len(t, r.Magnets, 2)
		assert.Equal(t, "Source A", r.Magnets[0].Source)
		assert.Equal(t, "magnet:?xt=urn:btih:aaa", r.Magnets[0].URI)
		assert.Equal(t, "Source B", r.Magnets[1].Source)
		assert.Equal(t, "magnet:?xt=urn:btih:bbb", r.Magnets[1].URI)
	})

	t.Run("placeholder entry without anchor has no URL", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		repacks, err := e.ExtractList(listingPage)
		require.NoError(t, err)
		require.Len(t, repacks, 2)

		r := repacks[1]
		assert.Equal(t, "Upcoming Repacks", r.Title)
		assert.Empty(t, r.URL)
		assert.Equal(t, repackdb.EINVALID, repackdb.ErrorCode(r.Validate()))
	})

	t.Run("description skips download mirrors blocks", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		repacks, err := e.ExtractList(listingPage)
		require.NoError(t, err)

		desc := repackdb.StringValue(repacks[0].Description)
		assert.Contains(t, desc, "A short description of the game.")
		assert.NotContains(t, desc, "Download Mirrors")
	})

	t.Run("missing info block is a normal partial result", func(t *testing.T) {
		t.Parallel()

		page := `<article>
			<h2 class="entry-title"><a href="https://example.com/x/">X</a></h2>
			<div class="entry-content"><p>Just text, no info section.</p></div>
		</article>`

		e := goquery.NewExtractor()
		repacks, err := e.ExtractList(page)
		require.NoError(t, err)
		require.Len(t, repacks, 1)

		r := repacks[0]
		assert.Nil(t, r.GenresTags)
		assert.Nil(t, r.Company)
		assert.Nil(t, r.Languages)
		assert.Nil(t, r.OriginalSize)
		assert.Nil(t, r.RepackSize)
		assert.Empty(t, r.Magnets)
	})

	t.Run("date falls back to rendered text", func(t *testing.T) {
		t.Parallel()

		page := `<article>
			<h2 class="entry-title"><a href="https://example.com/x/">X</a></h2>
			<time class="entry-date">March 1, 2024</time>
		</article>`

		e := goquery.NewExtractor()
		repacks, err := e.ExtractList(page)
		require.NoError(t, err)
		require.Len(t, repacks, 1)
		assert.Equal(t, "March 1, 2024", repackdb.StringValue(repacks[0].Date))
	})

	t.Run("magnet anchor outside a list item gets empty label", func(t *testing.T) {
		t.Parallel()

		page := `<article>
			<h2 class="entry-title"><a href="https://example.com/x/">X</a></h2>
			<div class="entry-content">
				<p><a href="magnet:?xt=urn:btih:ccc">magnet</a></p>
			</div>
		</article>`

		e := goquery.NewExtractor()
		repacks, err := e.ExtractList(page)
		require.NoError(t, err)
		require.Len(t, repacks, 1)
		require.Len(t, repacks[0].Magnets, 1)
		assert.Empty(t, repacks[0].Magnets[0].Source)
	})

	t.Run("non-magnet schemes are dropped silently", func(t *testing.T) {
		t.Parallel()

		page := `<article>
			<h2 class="entry-title"><a href="https://example.com/x/">X</a></h2>
			<div class="entry-content">
				<ul><li>Host <a href="https://host.example/file">direct</a></li></ul>
			</div>
		</article>`

		e := goquery.NewExtractor()
		repacks, err := e.ExtractList(page)
		require.NoError(t, err)
		require.Len(t, repacks, 1)
		assert.Empty(t, repacks[0].Magnets)
	})

	t.Run("article without entry title is skipped", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		repacks, err := e.ExtractList(`<article><p>nothing here</p></article>`)
		require.NoError(t, err)
		assert.Empty(t, repacks)
	})

	t.Run("empty page yields zero entries", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		repacks, err := e.ExtractList(`<html><body><p>404</p></body></html>`)
		require.NoError(t, err)
		assert.Empty(t, repacks)
	})
}
