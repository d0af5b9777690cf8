package scanner

const (
	space     = ' '
	tab       = '\t'
	pound     = '#'
	backslash = '\\'
	nl        = '\n'

	ellipsis = "..."
)

func isSeparator(input []rune, at int) bool {
	if at >= len(input) {
		return false
	}
	if input[at] == tab {
		return true
	}
	return input[at] == space && at+1 < len(input) && input[at+1] == space
}

func isEscapedComment(input []rune, at int) bool {
	return at+1 < len(input) && input[at] == backslash && input[at+1] == pound
}
