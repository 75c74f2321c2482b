package plang

import "strings"

// WrapComment renders lines as a comment in the language's own syntax.
// The result ends with a single trailing newline.
func (lang ProgrammingLang) WrapComment(lines []string) string {
	var sb strings.Builder
	switch lang.CommentStyle {
	case CommentBlock:
		sb.WriteString("/*\n")
		for _, line := range lines {
			sb.WriteString(" * ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString(" */\n")
	case CommentDocstring:
		sb.WriteString(`"""` + "\n")
		for _, line := range lines {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString(`"""` + "\n")
	default:
		prefix := lang.LinePrefix
		if prefix == "" {
			prefix = "//"
		}
		for _, line := range lines {
			sb.WriteString(prefix)
			sb.WriteString(" ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
