package bundle

import (
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Summarize counts rules, at-rules, leftover @import rules and comments in css.
// The counts are informational and never change build output.
func Summarize(content string) Stats {
	var stats Stats

	lexer := css.NewLexer(parse.NewInputString(content))

	// True between an at-keyword and the `;` or `{` that ends its prelude
	inAtPrelude := false

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal - just break
			break
		}

		switch tt {
		case css.AtKeywordToken:
			stats.AtRules++
			if string(text) == "@import" {
				stats.Imports++
			}
			inAtPrelude = true
		case css.SemicolonToken:
			inAtPrelude = false
		case css.LeftBraceToken:
			if inAtPrelude {
				inAtPrelude = false
				continue
			}
			stats.Rules++
		case css.CommentToken:
			stats.Comments++
		}
	}

	return stats
}
