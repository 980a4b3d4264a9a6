package service

import (
	"regexp"
	"strings"
)

var (
	displayFormulaRe = regexp.MustCompile(`\\\[([\s\S]*?)\\\]`)
	inlineFormulaRe  = regexp.MustCompile(`\$([^$]+)\$`)

	textCommandRe = regexp.MustCompile(`\\text\{([^}]*)\}`)
	subscriptRe   = regexp.MustCompile(`_\{?(\d+)\}?`)
	superscriptRe = regexp.MustCompile(`\^(?:\{([^}]*)\}|([0-9+\-]))`)
	arrowRe       = regexp.MustCompile(`\\(?:longrightarrow|xrightarrow|rightarrow|to)`)
)

var subscripts = strings.NewReplacer(
	"0", "₀", "1", "₁", "2", "₂", "3", "₃", "4", "₄",
	"5", "₅", "6", "₆", "7", "₇", "8", "₈", "9", "₉",
)

var superscripts = strings.NewReplacer(
	"0", "⁰", "1", "¹", "2", "²", "3", "³", "4", "⁴",
	"5", "⁵", "6", "⁶", "7", "⁷", "8", "⁸", "9", "⁹",
	"+", "⁺", "-", "⁻",
)

// FormatFormulas заменяет формулы вида \[...\] и $...$ на блоки кода Markdown,
// переводя индексы и степени в символы Unicode
func FormatFormulas(text string) string {
	text = replaceGroup(displayFormulaRe, text, formulaBlock)
	text = replaceGroup(inlineFormulaRe, text, formulaBlock)
	return text
}

func formulaBlock(expr string) string {
	expr = textCommandRe.ReplaceAllString(expr, "$1")
	expr = replaceGroup(subscriptRe, expr, subscripts.Replace)
	expr = superscriptRe.ReplaceAllStringFunc(expr, func(m string) string {
		sub := superscriptRe.FindStringSubmatch(m)
		return superscripts.Replace(sub[1] + sub[2])
	})
	expr = arrowRe.ReplaceAllString(expr, "→")
	expr = strings.ReplaceAll(expr, `\equiv`, "≡")
	expr = strings.NewReplacer("{", "", "}", "", `\,`, "").Replace(expr)
	return "```\n" + strings.TrimSpace(expr) + "\n```"
}

// replaceGroup заменяет каждое совпадение результатом fn от первой группы
func replaceGroup(re *regexp.Regexp, s string, fn func(string) string) string {
	return re.ReplaceAllStringFunc(s, func(m string) string {
		return fn(re.FindStringSubmatch(m)[1])
	})
}
