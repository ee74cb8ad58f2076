// Package page synthesizes the Liquid templates for a collection: the
// index page (hero, about block, per-section verse grids) and the
// companion full-text page. Both builders are pure string composition;
// identical inputs always produce identical output.
package page

import (
	"fmt"
	"strconv"
	"strings"

	"versekit/core/labels"
	"versekit/core/project"
	"versekit/core/section"
)

// GenerateIndexPage assembles the complete index.html Liquid template
// for a collection.
func GenerateIndexPage(key string, config project.CollectionConfig, sections []section.Section) string {
	title := config.Title(key)
	nameHi := config.NameHi
	icon := config.Icon
	if icon == "" {
		icon = labels.DefaultIcon
	}
	permalink := config.Permalink(key)

	var blocks []string
	for _, s := range sections {
		if s.IsLoop {
			blocks = append(blocks, loopSection(s.Prefix, key))
		} else {
			blocks = append(blocks, individualSection(s, key))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "---\nlayout: default\ntitle: %s\ncollection_key: %s\n---\n", title, key)
	b.WriteString("{% assign t_en = site.data.translations.en %}\n")
	b.WriteString("{% assign t_hi = site.data.translations.hi %}\n")
	fmt.Fprintf(&b, "{%% assign coll = site.data.collections.%s %%}\n\n", key)

	b.WriteString("<div class=\"hero-section\">\n")
	b.WriteString("    <div class=\"title-image-container\">\n")
	fmt.Fprintf(&b, "        <img src=\"{{ '/images/%s/modern-minimalist/title-page.png' | relative_url }}\" alt=\"%s Title Page\" class=\"title-page-image\" data-themed-image=\"title-page.png\">\n", key, title)
	b.WriteString("    </div>\n")
	b.WriteString("    <div class=\"quick-actions\">\n")
	fmt.Fprintf(&b, "        <a href=\"{{ '%sfull-text' | relative_url }}\" class=\"btn-primary\">📖 <span data-lang=\"en\">Read Complete %s</span><span data-lang=\"hi\">सम्पूर्ण %s पढ़ें</span></a>\n", permalink, title, nameHi)
	fmt.Fprintf(&b, "        <a href=\"{{ '/chalisa/book' | relative_url }}?collection=%s\" class=\"btn-secondary\">📕 <span data-lang=\"en\">Generate Book</span><span data-lang=\"hi\">पुस्तक बनाएं</span></a>\n", key)
	b.WriteString("    </div>\n")
	b.WriteString("    <div class=\"collection-meta\">\n")
	b.WriteString("        <span class=\"puranic-legend-compact\">📚 <span data-lang=\"en\">Some verses have Puranic stories</span><span data-lang=\"hi\">कुछ पदों में पौराणिक कथाएं हैं</span></span>\n")
	b.WriteString("    </div>\n")
	b.WriteString("</div>\n\n")

	b.WriteString(aboutSection(config))
	b.WriteString("\n")

	b.WriteString("<section class=\"verse-navigation\">\n")
	fmt.Fprintf(&b, "    <h2>%s <span data-lang=\"en\">%s</span><span data-lang=\"hi\">%s</span></h2>\n", icon, title, nameHi)
	b.WriteString(strings.Join(blocks, "\n"))
	b.WriteString("\n</section>\n")
	return b.String()
}

// aboutSection renders the collapsible description block. Each supplied
// paragraph becomes one <p>; a collection with no description in either
// language gets a single placeholder paragraph.
func aboutSection(config project.CollectionConfig) string {
	var b strings.Builder
	b.WriteString("<details class=\"about-section-compact\">\n")
	b.WriteString("    <summary><span class=\"about-arrow\">▶</span> <span data-lang=\"en\">About this collection</span><span data-lang=\"hi\">इस संग्रह के बारे में</span></summary>\n")
	b.WriteString("    <div class=\"about-content\">\n")
	if len(config.DescriptionEn) == 0 && len(config.DescriptionHi) == 0 {
		b.WriteString("        <p data-lang=\"en\"><!-- TODO: add description_en in _data/collections.yml --></p>\n")
		b.WriteString("        <p data-lang=\"hi\"><!-- TODO: add description_hi in _data/collections.yml --></p>\n")
	} else {
		for _, para := range config.DescriptionEn {
			fmt.Fprintf(&b, "        <p data-lang=\"en\">%s</p>\n", para)
		}
		for _, para := range config.DescriptionHi {
			fmt.Fprintf(&b, "        <p data-lang=\"hi\">%s</p>\n", para)
		}
	}
	b.WriteString("    </div>\n")
	b.WriteString("</details>\n")
	return b.String()
}

// loopSection renders a repeating block: one Liquid for-loop over every
// collection item whose URL carries the section prefix, sorted by the
// per-section ordinal rather than the global one.
func loopSection(prefix, key string) string {
	lbl := labels.Resolve(prefix)
	numEn := lbl.En + " {{ verse.section_verse_number }}"
	numHi := lbl.Hi + " {{ verse.section_verse_number }}"

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "    {%% assign %s_verses = site.verses | where: \"collection_key\", \"%s\" | where_exp: \"item\", \"item.url contains '%s-'\" | sort: \"section_verse_number\" %%}\n", prefix, key, prefix)
	fmt.Fprintf(&b, "    {%% assign %s_count = %s_verses | size %%}\n", prefix, prefix)
	fmt.Fprintf(&b, "    <h3>%s <span data-lang=\"en\">%s ({{ %s_count }} Verses)</span><span data-lang=\"hi\">%s ({{ %s_count }} पद)</span></h3>\n",
		lbl.Icon, lbl.En, prefix, lbl.Hi, prefix)
	b.WriteString("    <div class=\"verse-grid\">\n")
	fmt.Fprintf(&b, "        {%% for verse in %s_verses %%}\n", prefix)
	b.WriteString("        " + cardBlock("verse", numEn, numHi) + "\n")
	b.WriteString("        {% endfor %}\n")
	b.WriteString("    </div>")
	return b.String()
}

// individualSection renders one guarded lookup block per verse so a
// missing item is skipped rather than breaking the page.
func individualSection(s section.Section, key string) string {
	lbl := labels.Resolve(s.Prefix)
	en, hi := lbl.En, lbl.Hi

	count := len(s.VerseIDs)
	countEn := fmt.Sprintf("%d Verses", count)
	if count == 1 {
		countEn = "1 Verse"
	}
	countHi := fmt.Sprintf("%d पद", count)

	var cards []string
	for _, vid := range s.VerseIDs {
		varName := strings.ReplaceAll(vid, "-", "_")
		var numEn, numHi string
		if n, ok := section.VerseNumber(vid); ok {
			numEn = en + " " + strconv.Itoa(n)
			numHi = hi + " " + strconv.Itoa(n)
		} else if suffix := section.Suffix(vid); suffix != "" {
			q := labels.ResolveQualifier(suffix)
			numEn = q.En + " " + en
			numHi = q.Hi + " " + hi
		} else {
			numEn = en
			numHi = hi
		}

		var cb strings.Builder
		fmt.Fprintf(&cb, "        {%% assign %s = site.verses | where: \"collection_key\", \"%s\" | where_exp: \"item\", \"item.url contains '%s'\" | first %%}\n", varName, key, vid)
		fmt.Fprintf(&cb, "        {%% if %s %%}\n", varName)
		cb.WriteString("        " + cardBlock(varName, numEn, numHi) + "\n")
		cb.WriteString("        {% endif %}")
		cards = append(cards, cb.String())
	}

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "    <h3>%s <span data-lang=\"en\">%s (%s)</span><span data-lang=\"hi\">%s (%s)</span></h3>\n",
		lbl.Icon, en, countEn, hi, countHi)
	b.WriteString("    <div class=\"verse-grid\">\n")
	b.WriteString(strings.Join(cards, "\n"))
	b.WriteString("\n    </div>")
	return b.String()
}

// cardBlock renders one verse card. varName is the Liquid variable
// bound to the item being rendered.
func cardBlock(varName, numEn, numHi string) string {
	v := varName
	var b strings.Builder
	fmt.Fprintf(&b, "<a href=\"{{ %s.url | relative_url }}\" class=\"verse-card{%% if %s.puranic_context %%} has-puranic-context{%% endif %%}\">\n", v, v)
	fmt.Fprintf(&b, "            {%% if %s.image %%}\n", v)
	b.WriteString("            <div class=\"card-image\">\n")
	fmt.Fprintf(&b, "                <img src=\"{{ %s.image | relative_url }}\" alt=\"{{ %s.title_en }}\" loading=\"lazy\">\n", v, v)
	b.WriteString("            </div>\n")
	b.WriteString("            {% endif %}\n")
	b.WriteString("            <div class=\"card-content\">\n")
	b.WriteString("                <div class=\"verse-number\">\n")
	fmt.Fprintf(&b, "                    <span data-lang=\"en\">%s</span>\n", numEn)
	fmt.Fprintf(&b, "                    <span data-lang=\"hi\">%s</span>\n", numHi)
	b.WriteString("                </div>\n")
	b.WriteString("                <div class=\"verse-title\">\n")
	fmt.Fprintf(&b, "                    <span data-lang=\"en\">{{ %s.title_en }}</span>\n", v)
	fmt.Fprintf(&b, "                    <span data-lang=\"hi\">{{ %s.title_hi }}</span>\n", v)
	b.WriteString("                </div>\n")
	fmt.Fprintf(&b, "                {%% if %s.puranic_context %%}\n", v)
	b.WriteString("                <div class=\"puranic-badge\">\n")
	b.WriteString("                    <span class=\"badge-icon\">📚</span>\n")
	b.WriteString("                </div>\n")
	b.WriteString("                {% endif %}\n")
	b.WriteString("            </div>\n")
	b.WriteString("        </a>")
	return b.String()
}

// GenerateFullTextPage assembles the companion full-text.html template.
// It renders the whole collection as one continuous document with
// visibility toggles; it carries no section grouping.
func GenerateFullTextPage(key string, config project.CollectionConfig) string {
	title := config.Title(key)
	nameHi := config.NameHi
	permalink := config.Permalink(key)

	var b strings.Builder
	fmt.Fprintf(&b, "---\nlayout: default\ntitle: %s - Full Text\ncollection_key: %s\npermalink: %sfull-text\n---\n", title, key, permalink)
	fmt.Fprintf(&b, "{%% assign all_verses = site.verses | where: \"collection_key\", \"%s\" | sort: \"verse_number\" %%}\n\n", key)

	b.WriteString("<div class=\"full-text-page\">\n")
	b.WriteString("    <header class=\"full-text-header\">\n")
	fmt.Fprintf(&b, "        <h1><span data-lang=\"en\">%s - Full Text</span><span data-lang=\"hi\">सम्पूर्ण %s</span></h1>\n", title, nameHi)
	fmt.Fprintf(&b, "        <a href=\"{{ '%s' | relative_url }}\" class=\"back-link\">← <span data-lang=\"en\">Back to Index</span><span data-lang=\"hi\">सूची पर वापस</span></a>\n", permalink)
	b.WriteString("    </header>\n\n")

	b.WriteString("    <div class=\"text-controls\">\n")
	b.WriteString("        <label><input type=\"checkbox\" id=\"toggle-devanagari\" checked onchange=\"toggleSection('devanagari-content', this.checked)\"> <span data-lang=\"en\">Devanagari</span><span data-lang=\"hi\">देवनागरी</span></label>\n")
	b.WriteString("        <label><input type=\"checkbox\" id=\"toggle-transliteration\" checked onchange=\"toggleSection('transliteration-content', this.checked)\"> <span data-lang=\"en\">Transliteration</span><span data-lang=\"hi\">लिप्यंतरण</span></label>\n")
	b.WriteString("        <label><input type=\"checkbox\" id=\"toggle-translation\" checked onchange=\"toggleSection('translation-content', this.checked)\"> <span data-lang=\"en\">Translation</span><span data-lang=\"hi\">अनुवाद</span></label>\n")
	b.WriteString("        <label><input type=\"checkbox\" id=\"toggle-word-meanings\" onchange=\"toggleSection('word-meanings-content', this.checked)\"> <span data-lang=\"en\">Word Meanings</span><span data-lang=\"hi\">शब्दार्थ</span></label>\n")
	b.WriteString("        <button class=\"print-button\" onclick=\"window.print()\">🖨️ <span data-lang=\"en\">Print</span><span data-lang=\"hi\">प्रिंट</span></button>\n")
	b.WriteString("    </div>\n\n")

	b.WriteString("    <div class=\"full-text-body\">\n")
	b.WriteString("        {% for verse in all_verses %}\n")
	b.WriteString("        <article class=\"full-text-verse\">\n")
	b.WriteString("            <div class=\"devanagari-content\">{{ verse.devanagari }}</div>\n")
	b.WriteString("            <div class=\"transliteration-content\">{{ verse.transliteration }}</div>\n")
	b.WriteString("            <div class=\"translation-content\">{{ verse.translation_en }}</div>\n")
	b.WriteString("            <div class=\"word-meanings-content\" style=\"display: none;\">{{ verse.word_meanings }}</div>\n")
	b.WriteString("        </article>\n")
	b.WriteString("        {% endfor %}\n")
	b.WriteString("    </div>\n")
	b.WriteString("</div>\n\n")

	b.WriteString("<script>\n")
	b.WriteString("function toggleSection(className, visible) {\n")
	b.WriteString("    document.querySelectorAll('.' + className).forEach(function (el) {\n")
	b.WriteString("        el.style.display = visible ? '' : 'none';\n")
	b.WriteString("    });\n")
	b.WriteString("}\n")
	b.WriteString("</script>\n")
	return b.String()
}
