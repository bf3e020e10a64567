package inject_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/gisti-refonte/refonte/inject"
	"github.com/stretchr/testify/assert"
)

func TestAnchor_Apply(t *testing.T) {
	t.Parallel()

	anchor := inject.MustAnchor("cards", `class="grid">\s*\n`, `</div>\s*\n\s*<!-- next`)

	doc := `<section>
  <div class="grid">
    <p>placeholder</p>
  </div>
  <!-- next section -->
</section>`

	t.Run("RewritesInterior", func(t *testing.T) {
		t.Parallel()

		out, outcome := anchor.Apply(doc, "    <p>real content</p>\n")
		assert.Equal(t, inject.OutcomeApplied, outcome)
		assert.Contains(t, out, "real content")
		assert.NotContains(t, out, "placeholder")
		// Markers survive byte-identical.
		assert.Contains(t, out, `<div class="grid">`)
		assert.Contains(t, out, "<!-- next section -->")
	})

	t.Run("Idempotent", func(t *testing.T) {
		t.Parallel()

		once, _ := anchor.Apply(doc, "    <p>real content</p>\n")
		twice, outcome := anchor.Apply(once, "    <p>real content</p>\n")
		assert.Equal(t, inject.OutcomeApplied, outcome)
		assert.Equal(t, once, twice)
	})

	t.Run("ReInjectionWithUpdatedBlock", func(t *testing.T) {
		t.Parallel()

		once, _ := anchor.Apply(doc, "    <p>v1</p>\n")
		updated, outcome := anchor.Apply(once, "    <p>v2</p>\n")
		assert.Equal(t, inject.OutcomeApplied, outcome)
		assert.Contains(t, updated, "v2")
		assert.NotContains(t, updated, "v1")
	})

	t.Run("NoOpOnMissingAnchor", func(t *testing.T) {
		t.Parallel()

		out, outcome := anchor.Apply("<p>unrelated document</p>", "block")
		assert.Equal(t, inject.OutcomeNoMatch, outcome)
		assert.Equal(t, "<p>unrelated document</p>", out)
	})

	t.Run("MultipleMatchesRewriteFirst", func(t *testing.T) {
		t.Parallel()

		double := doc + "\n" + doc
		out, outcome := anchor.Apply(double, "    <p>injected</p>\n")
		assert.Equal(t, inject.OutcomeMultiple, outcome)
		assert.Equal(t, 1, strings.Count(out, "injected"))
		assert.Equal(t, 1, strings.Count(out, "placeholder"))
	})

	t.Run("NonGreedyStopsAtFirstEndMarker", func(t *testing.T) {
		t.Parallel()

		// A second end marker later in the document must not be swallowed.
		long := doc + "\n<footer></div>\n<!-- next page --></footer>"
		out, _ := anchor.Apply(long, "x\n")
		assert.Contains(t, out, "<footer>")
	})
}

func TestReplace(t *testing.T) {
	t.Parallel()

	t.Run("ExpandsGroups", func(t *testing.T) {
		t.Parallel()

		re := regexp.MustCompile(`(Dernier numéro — )[^<]+`)
		out, ok := inject.Replace("<p>Dernier numéro — hiver 2023</p>", re, "${1}2025")
		assert.True(t, ok)
		assert.Equal(t, "<p>Dernier numéro — 2025</p>", out)
	})

	t.Run("FirstMatchOnly", func(t *testing.T) {
		t.Parallel()

		re := regexp.MustCompile(`n°(\d+)`)
		out, ok := inject.Replace("n°1 et n°2", re, "n°9")
		assert.True(t, ok)
		assert.Equal(t, "n°9 et n°2", out)
	})

	t.Run("NoMatchLeavesDocUnchanged", func(t *testing.T) {
		t.Parallel()

		re := regexp.MustCompile(`absent`)
		out, ok := inject.Replace("document", re, "x")
		assert.False(t, ok)
		assert.Equal(t, "document", out)
	})

	t.Run("LiteralKeepsDollarSignsInSourcedText", func(t *testing.T) {
		t.Parallel()

		// Unquoted, "$2" would expand to the second capture group and
		// "$US" to an (empty) named group.
		re := regexp.MustCompile(`(<h1>)[^<]+(</h1>)`)
		doc := "<h1>ancien</h1>"

		title := "Amendes de 100 $2 et des frais en $US"
		out, ok := inject.Replace(doc, re, "${1}"+inject.Literal(title)+"${2}")
		assert.True(t, ok)
		assert.Equal(t, "<h1>Amendes de 100 $2 et des frais en $US</h1>", out)
	})
}
