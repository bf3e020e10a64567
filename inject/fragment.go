package inject

import (
	"fmt"
	"html"
	"strings"

	"github.com/gisti-refonte/refonte"
)

// Fragment renderers are pure functions of one record (plus an index where
// layout rotates). All sourced text is escaped; fragments never contain
// anchor marker text.

const (
	excerptLimit       = 180
	formationDescLimit = 200

	// latestIssueNum is the issue number of the most recent Plein Droit;
	// cards count down from it in listing order.
	latestIssueNum = 140

	defaultFormationDesc = "Formation professionnelle continue par le GISTI."
)

// overlines rotate across featured cards that carry no excerpt.
var overlines = [3]string{"Analyse", "Communiqué", "Action"}

func esc(s string) string {
	return html.EscapeString(refonte.CleanText(s))
}

// ArticleCard renders a featured-article card for the homepage grid. Cards
// with body text get an excerpt and the generic "Article" overline; cards
// without rotate through the overline labels by position.
func ArticleCard(it *refonte.Item, index int) string {
	title := esc(it.Title)
	body := html.EscapeString(refonte.Truncate(refonte.CleanText(it.BodyText), excerptLimit))
	date := esc(it.Date)
	rubrique := esc(it.Rubrique)

	overline := "Article"
	if body == "" {
		overline = overlines[index%len(overlines)]
	}

	var meta []string
	if date != "" {
		meta = append(meta, "<time>"+date+"</time>")
	}
	if rubrique != "" {
		meta = append(meta, "<span>&middot;</span><span>"+rubrique+"</span>")
	}
	if len(meta) == 0 {
		meta = append(meta, "<span>gisti.org</span>")
	}

	excerpt := ""
	if body != "" {
		excerpt = fmt.Sprintf("              <p class=\"card__text\">%s</p>\n", body)
	}

	return fmt.Sprintf(`          <article class="card">
            <div class="card__body">
              <span class="card__overline">%s</span>
              <h3 class="card__title">
                <a href="article.html">%s</a>
              </h3>
%s              <div class="card__meta">
                %s
              </div>
            </div>
          </article>`, overline, title, excerpt, strings.Join(meta, "\n                "))
}

// FormationMini renders the compact date-block card for the homepage
// formations column. A date that does not split into at least day and month
// renders the "?" placeholder.
func FormationMini(it *refonte.Item) string {
	title := esc(it.Title)
	price := esc(it.Price)
	duration := esc(it.Duration)

	day, month := "?", ""
	if parts := strings.Fields(refonte.CleanText(it.Date)); len(parts) >= 2 {
		day = parts[0]
		month = refonte.Truncate(parts[1], 4) + "."
	}

	var meta []string
	if duration != "" {
		meta = append(meta, duration)
	}
	meta = append(meta, "Paris")
	if price != "" {
		meta = append(meta, price)
	}

	return fmt.Sprintf(`              <div class="formation-mini">
                <div class="formation-mini__date">
                  <span class="formation-mini__date-day">%s</span>
                  <span class="formation-mini__date-month">%s</span>
                </div>
                <div>
                  <p class="formation-mini__title">%s</p>
                  <p class="formation-mini__meta">%s</p>
                </div>
              </div>`, html.EscapeString(day), html.EscapeString(month), title, strings.Join(meta, " &middot; "))
}

// PubCard renders one Plein Droit issue card for the publications grid.
// Issue numbers count down from the latest by listing position.
func PubCard(it *refonte.Item, index int) string {
	title := esc(it.Title)
	num := latestIssueNum - index

	return fmt.Sprintf(`          <a href="publication-detail.html" class="pub-card" data-filter-item data-type="plein-droit" data-year="2025">
            <div class="pub-card__cover-placeholder">Plein Droit<br>n&deg;%d</div>
            <div class="pub-card__body">
              <span class="pub-card__type">Plein Droit</span>
              <h3 class="pub-card__title">%s</h3>
              <span class="pub-card__meta">n&deg;%d</span>
              <span class="pub-card__price">6 &euro;</span>
            </div>
          </a>`, num, title, num)
}

// FormationCard renders a full catalog card for formations.html, with
// placeholder details where the record has none.
func FormationCard(it *refonte.Item) string {
	title := esc(it.Title)
	desc := html.EscapeString(refonte.Truncate(refonte.CleanText(it.Description), formationDescLimit))
	if desc == "" {
		desc = defaultFormationDesc
	}
	price := esc(it.Price)
	duration := esc(it.Duration)
	date := esc(it.Date)

	format := it.Format
	if format == "" {
		format = "presentiel"
	}
	label := "Présentiel"
	if format == "distanciel" {
		label = "Distanciel"
	}

	var details []string
	if duration != "" {
		details = append(details, fmt.Sprintf(`<span class="formation-card__detail">%s</span>`, duration))
	}
	if date != "" {
		details = append(details, fmt.Sprintf(`<span class="formation-card__detail">%s</span>`, date))
	} else {
		details = append(details, `<span class="formation-card__detail">2026</span>`)
	}
	details = append(details, `<span class="formation-card__detail">Paris 11e</span>`)
	if price != "" {
		details = append(details, fmt.Sprintf(`<span class="formation-card__detail formation-card__price">%s</span>`, price))
	}

	var b strings.Builder
	for _, d := range details {
		b.WriteString("              ")
		b.WriteString(d)
		b.WriteString("\n")
	}

	return fmt.Sprintf(`          <div class="formation-card" data-filter-item>
            <div class="formation-card__header">
              <h3 class="formation-card__title">%s</h3>
              <span class="formation-card__format formation-card__format--%s">%s</span>
            </div>
            <p class="formation-card__desc">%s</p>
            <div class="formation-card__details">
%s              <span class="formation-card__places">Places disponibles</span>
            </div>
          </div>`, title, format, label, desc, b.String())
}

// TagLink renders one keyword tag for the article page tag list.
func TagLink(keyword string) string {
	slug := strings.ReplaceAll(strings.ToLower(refonte.CleanText(keyword)), " ", "-")
	return fmt.Sprintf(`              <a href="recherche.html?tag=%s" class="tag">%s</a>`,
		html.EscapeString(slug), esc(keyword))
}
