package scrape_test

import (
	"regexp"
	"testing"

	"github.com/gisti-refonte/refonte"
	"github.com/gisti-refonte/refonte/scrape"
	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("FirstOccurrenceWins", func(t *testing.T) {
		t.Parallel()

		// Two records share a URL; the one encountered first survives,
		// regardless of which title is "better".
		items := []*refonte.Item{
			{URL: "https://www.gisti.org/spip.php?article100", Title: "Foo"},
			{URL: "https://www.gisti.org/spip.php?article100", Title: "Bar"},
		}
		got := scrape.Build(items, scrape.Filter{})
		if assert.Len(t, got, 1) {
			assert.Equal(t, "Foo", got[0].Title)
		}
	})

	t.Run("PreservesOrder", func(t *testing.T) {
		t.Parallel()

		items := []*refonte.Item{
			{URL: "https://example.org/c", Title: "Charlie"},
			{URL: "https://example.org/a", Title: "Alpha"},
			{URL: "https://example.org/b", Title: "Bravo"},
		}
		got := scrape.Build(items, scrape.Filter{})
		if assert.Len(t, got, 3) {
			assert.Equal(t, "Charlie", got[0].Title)
			assert.Equal(t, "Alpha", got[1].Title)
			assert.Equal(t, "Bravo", got[2].Title)
		}
	})

	t.Run("DropsInvalidAndPlaceholder", func(t *testing.T) {
		t.Parallel()

		items := []*refonte.Item{
			nil,
			{URL: "", Title: "No URL"},
			{URL: "https://example.org/1", Title: ""},
			{URL: "https://example.org/2", Title: "Sans titre"},
			{URL: "https://example.org/3", Title: "Kept"},
		}
		got := scrape.Build(items, scrape.Filter{})
		if assert.Len(t, got, 1) {
			assert.Equal(t, "Kept", got[0].Title)
		}
	})
}

func TestFilter_Keep(t *testing.T) {
	t.Parallel()

	t.Run("MinTitleIsExclusive", func(t *testing.T) {
		t.Parallel()

		f := scrape.Filter{MinTitle: 5}
		assert.False(t, f.Keep(&refonte.Item{URL: "u", Title: "cinq!"}))  // exactly 5
		assert.True(t, f.Keep(&refonte.Item{URL: "u", Title: "six six"})) // > 5
	})

	t.Run("MinTitleCountsRunes", func(t *testing.T) {
		t.Parallel()

		f := scrape.Filter{MinTitle: 5}
		// 6 runes but more bytes; must pass.
		assert.True(t, f.Keep(&refonte.Item{URL: "u", Title: "éàçèùî"}))
	})

	t.Run("DenylistIsCaseInsensitive", func(t *testing.T) {
		t.Parallel()

		f := scrape.Filter{Denylist: []string{"faire un don"}}
		assert.False(t, f.Keep(&refonte.Item{URL: "u", Title: "Faire un don"}))
		assert.True(t, f.Keep(&refonte.Item{URL: "u", Title: "Faire un recours"}))
	})

	t.Run("ExcludePattern", func(t *testing.T) {
		t.Parallel()

		f := scrape.Filter{Exclude: regexp.MustCompile(`^20\d{2}`)}
		assert.False(t, f.Keep(&refonte.Item{URL: "u", Title: "2026 — calendrier"}))
		assert.True(t, f.Keep(&refonte.Item{URL: "u", Title: "Calendrier 2026"}))
	})
}

func TestPatterns(t *testing.T) {
	t.Parallel()

	t.Run("FindDate", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "12 février 2026", scrape.FindDate("Session du 12 février 2026 à Paris"))
		assert.Equal(t, "", scrape.FindDate("Session de février"))
	})

	t.Run("FindPrice", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "250 €", scrape.FindPrice("Tarif : 250 € par personne"))
		assert.Equal(t, "", scrape.FindPrice("Tarif sur demande"))
	})

	t.Run("FindDuration", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2 jours", scrape.FindDuration("Formation sur 2 jours"))
		assert.Equal(t, "1 jour", scrape.FindDuration("Durée : 1 jour"))
		assert.Equal(t, "", scrape.FindDuration("Durée variable"))
	})

	t.Run("FindCount", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 12, scrape.FindCount("asile (12)"))
		assert.Equal(t, 0, scrape.FindCount("asile"))
	})

	t.Run("DetectFormat", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "distanciel", scrape.DetectFormat("Webinaire : le droit d'asile"))
		assert.Equal(t, "distanciel", scrape.DetectFormat("Formation en ligne"))
		assert.Equal(t, "presentiel", scrape.DetectFormat("Le droit au séjour"))
	})
}
