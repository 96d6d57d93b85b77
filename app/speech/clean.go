// Package speech turns model output into text a TTS voice can read aloud,
// and recognizes small talk that should never hit the retrieval pipeline.
package speech

import (
	"regexp"
	"strings"
)

// Compiled once; CleanForSpeech runs on every reply.
var (
	boldRe      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe    = regexp.MustCompile(`\*(.*?)\*`)
	underlineRe = regexp.MustCompile(`_(.*?)_`)
	codeRe      = regexp.MustCompile("`(.*?)`")

	numberedItemRe  = regexp.MustCompile(`\n\d+\. `)
	numberedStartRe = regexp.MustCompile(`^\d+\. `)
	bulletStartRe   = regexp.MustCompile(`(?m)^\s*[-•*+]\s*`)
	bulletInlineRe  = regexp.MustCompile(`\n\s*[-•*+]\s*`)

	noteRe      = regexp.MustCompile(`(?i)\bNote:\s*`)
	importantRe = regexp.MustCompile(`(?i)\bImportant:\s*`)
	rememberRe  = regexp.MustCompile(`(?i)\bRemember:\s*`)

	percentRe = regexp.MustCompile(`\b(\d+)\s*%`)
	slashRe   = regexp.MustCompile(`\s*/\s*`)
	dashRe    = regexp.MustCompile(`\s*-\s*`)

	symbolRe     = regexp.MustCompile("[#$%&@^`~|\\\\\\[\\]{}()<>\"']")
	punctRe      = regexp.MustCompile(`[+=!?.,;:]`)
	newlineRe    = regexp.MustCompile(`\n+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanForSpeech strips formatting that a voice would read aloud: markdown
// markers, list bullets, structural labels, symbols and separators. Numbered
// and bulleted lists are rewritten into flowing sentences with spoken
// connectors. The rewrite order matters: connectors are inserted before the
// punctuation strip, so they come out as plain words, matching the rest of
// the sentence.
func CleanForSpeech(text string) string {
	// markdown emphasis and code spans
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = underlineRe.ReplaceAllString(text, "$1")
	text = codeRe.ReplaceAllString(text, "$1")

	// numbered lists become connected sentences
	text = numberedItemRe.ReplaceAllString(text, ". Next, ")
	text = numberedStartRe.ReplaceAllString(text, "First, ")

	// bullet lists likewise; inline items first, then the leading bullet
	text = bulletInlineRe.ReplaceAllString(text, ". Also, ")
	text = bulletStartRe.ReplaceAllString(text, "")

	// structural labels read badly verbatim
	text = noteRe.ReplaceAllString(text, "Please note that ")
	text = importantRe.ReplaceAllString(text, "This is important: ")
	text = rememberRe.ReplaceAllString(text, "Remember that ")

	// spoken forms before the symbol strip eats the raw characters
	text = percentRe.ReplaceAllString(text, "$1 percent")
	text = slashRe.ReplaceAllString(text, " or ")

	// symbols and punctuation a TTS voice reads aloud
	text = symbolRe.ReplaceAllString(text, "")
	text = punctRe.ReplaceAllString(text, "")
	text = dashRe.ReplaceAllString(text, " ")

	text = newlineRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
