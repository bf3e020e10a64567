package inject_test

import (
	"strings"
	"testing"

	"github.com/gisti-refonte/refonte"
	"github.com/gisti-refonte/refonte/inject"
	"github.com/stretchr/testify/assert"
)

func TestArticleCard(t *testing.T) {
	t.Parallel()

	t.Run("EscapesSourcedText", func(t *testing.T) {
		t.Parallel()

		card := inject.ArticleCard(&refonte.Item{
			URL:      "u",
			Title:    `Expulsions <script>alert("x")</script>`,
			BodyText: "Corps & détails",
		}, 0)
		assert.NotContains(t, card, "<script>")
		assert.Contains(t, card, "&lt;script&gt;")
		assert.Contains(t, card, "Corps &amp; détails")
	})

	t.Run("TimeOnlyWhenDatePresent", func(t *testing.T) {
		t.Parallel()

		with := inject.ArticleCard(&refonte.Item{URL: "u", Title: "t", Date: "12 mai 2025"}, 0)
		assert.Contains(t, with, "<time>12 mai 2025</time>")

		without := inject.ArticleCard(&refonte.Item{URL: "u", Title: "t"}, 0)
		assert.NotContains(t, without, "<time>")
	})

	t.Run("OverlineRotatesWithoutBody", func(t *testing.T) {
		t.Parallel()

		it := &refonte.Item{URL: "u", Title: "t"}
		assert.Contains(t, inject.ArticleCard(it, 0), ">Analyse<")
		assert.Contains(t, inject.ArticleCard(it, 1), ">Communiqué<")
		assert.Contains(t, inject.ArticleCard(it, 2), ">Action<")
		assert.Contains(t, inject.ArticleCard(it, 3), ">Analyse<")
	})

	t.Run("BodyGetsArticleOverlineAndExcerpt", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("mot ", 100)
		card := inject.ArticleCard(&refonte.Item{URL: "u", Title: "t", BodyText: long}, 1)
		assert.Contains(t, card, ">Article<")
		assert.Contains(t, card, `class="card__text"`)

		// The excerpt is hard-capped; the raw body is 400 chars.
		start := strings.Index(card, `card__text">`) + len(`card__text">`)
		end := strings.Index(card[start:], "</p>")
		assert.LessOrEqual(t, len([]rune(card[start:start+end])), 180)
	})
}

func TestFormationMini(t *testing.T) {
	t.Parallel()

	t.Run("SplitsDate", func(t *testing.T) {
		t.Parallel()

		mini := inject.FormationMini(&refonte.Item{
			URL: "u", Title: "Le droit d'asile",
			Date: "12 février 2026", Duration: "2 jours", Price: "250 €",
		})
		assert.Contains(t, mini, `date-day">12<`)
		assert.Contains(t, mini, `date-month">févr.<`)
		assert.Contains(t, mini, "2 jours &middot; Paris &middot; 250 €")
	})

	t.Run("PlaceholderOnUnparseableDate", func(t *testing.T) {
		t.Parallel()

		mini := inject.FormationMini(&refonte.Item{URL: "u", Title: "t", Date: "prochainement"})
		assert.Contains(t, mini, `date-day">?<`)
		assert.Contains(t, mini, `date-month"><`)
	})

	t.Run("MetaAlwaysNamesParis", func(t *testing.T) {
		t.Parallel()

		mini := inject.FormationMini(&refonte.Item{URL: "u", Title: "t"})
		assert.Contains(t, mini, `__meta">Paris<`)
	})
}

func TestPubCard(t *testing.T) {
	t.Parallel()

	first := inject.PubCard(&refonte.Item{URL: "u", Title: "Étrangers sans droits ?"}, 0)
	assert.Contains(t, first, "n&deg;140")
	assert.Contains(t, first, "Étrangers sans droits ?")
	assert.Contains(t, first, "6 &euro;")

	third := inject.PubCard(&refonte.Item{URL: "u", Title: "t"}, 2)
	assert.Contains(t, third, "n&deg;138")
}

func TestFormationCard(t *testing.T) {
	t.Parallel()

	t.Run("FullRecord", func(t *testing.T) {
		t.Parallel()

		card := inject.FormationCard(&refonte.Item{
			URL: "u", Title: "Webinaire : le séjour",
			Description: "Panorama complet du droit au séjour.",
			Format:      "distanciel", Date: "12 février 2026",
			Duration: "2 jours", Price: "250 €",
		})
		assert.Contains(t, card, ">Distanciel<")
		assert.Contains(t, card, "formation-card__format--distanciel")
		assert.Contains(t, card, "Panorama complet")
		assert.Contains(t, card, "12 février 2026")
		assert.Contains(t, card, "2 jours")
		assert.Contains(t, card, `formation-card__price">250 €`)
		assert.Contains(t, card, "Places disponibles")
		assert.NotContains(t, card, ">2026<")
	})

	t.Run("DefaultsFillGaps", func(t *testing.T) {
		t.Parallel()

		card := inject.FormationCard(&refonte.Item{URL: "u", Title: "Le contentieux des visas"})
		assert.Contains(t, card, ">Présentiel<")
		assert.Contains(t, card, "formation-card__format--presentiel")
		assert.Contains(t, card, "Formation professionnelle continue par le GISTI.")
		assert.Contains(t, card, ">2026<")
		assert.Contains(t, card, "Paris 11e")
		assert.NotContains(t, card, "formation-card__price")
	})
}

func TestTagLink(t *testing.T) {
	t.Parallel()

	tag := inject.TagLink("Droit d'asile")
	assert.Contains(t, tag, `recherche.html?tag=droit-d&#39;asile`)
	assert.Contains(t, tag, `class="tag">Droit d&#39;asile</a>`)
}
