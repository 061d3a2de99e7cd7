package gamedb

import (
	"regexp"
	"strconv"
	"strings"
)

// The scripting-table blob is a flat text of bracketed numeric-keyed blocks:
//
//	[501] = {
//		identifiedDescriptionName = { "line", "line" },
//		unidentifiedDescriptionName = { "..." },
//	},
//
// Block and array spans are located by matching brace pairs with depth
// counting, so nested braces inside a block cannot truncate it.

const identifiedKey = "identifiedDescriptionName"

var colorEscape = regexp.MustCompile(`\^[0-9A-Fa-f]{6}`)

// ParseDescriptions builds the id -> cleaned description table from the
// scripting-table source text. Ids without identified description lines are
// omitted.
func ParseDescriptions(src string) map[int]string {
	descriptions := make(map[int]string)

	for i := 0; i < len(src); i++ {
		if src[i] != '[' {
			continue
		}

		j := i + 1
		for j < len(src) && src[j] >= '0' && src[j] <= '9' {
			j++
		}
		if j == i+1 || j >= len(src) || src[j] != ']' {
			continue
		}
		id, err := strconv.Atoi(src[i+1 : j])
		if err != nil {
			continue
		}

		k := skipSpaces(src, j+1)
		if k >= len(src) || src[k] != '=' {
			continue
		}
		k = skipSpaces(src, k+1)
		if k >= len(src) || src[k] != '{' {
			continue
		}

		end, ok := matchBrace(src, k)
		if !ok {
			end = len(src)
		}

		if desc, ok := identifiedDescription(src[k+1 : end]); ok {
			descriptions[id] = desc
		}

		i = end
	}

	return descriptions
}

// identifiedDescription extracts the cleaned identified description from one
// block, explicitly rejecting the "unidentified" variant even when it
// precedes the identified one in source order.
func identifiedDescription(block string) (string, bool) {
	idx := 0
	for {
		p := strings.Index(block[idx:], identifiedKey)
		if p < 0 {
			return "", false
		}
		p += idx
		idx = p + len(identifiedKey)

		if p >= 2 && block[p-2:p] == "un" {
			continue
		}

		k := skipSpaces(block, p+len(identifiedKey))
		if k >= len(block) || block[k] != '=' {
			continue
		}
		k = skipSpaces(block, k+1)
		if k >= len(block) || block[k] != '{' {
			continue
		}

		end, ok := matchBrace(block, k)
		if !ok {
			end = len(block)
		}

		lines := cleanLines(quotedStrings(block[k+1 : end]))
		if len(lines) == 0 {
			return "", false
		}
		return strings.Join(lines, "\n"), true
	}
}

// matchBrace returns the index of the brace closing the one at open. Quoted
// strings are skipped so braces inside description text do not affect depth.
func matchBrace(s string, open int) (int, bool) {
	depth := 0
	inString := false
	for i := open; i < len(s); i++ {
		c := s[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// quotedStrings returns the contents of every double-quoted string in s.
func quotedStrings(s string) []string {
	var out []string
	for i := 0; i < len(s); i++ {
		if s[i] != '"' {
			continue
		}
		var sb strings.Builder
		j := i + 1
		for ; j < len(s); j++ {
			if s[j] == '\\' && j+1 < len(s) {
				sb.WriteByte(s[j+1])
				j++
				continue
			}
			if s[j] == '"' {
				break
			}
			sb.WriteByte(s[j])
		}
		out = append(out, sb.String())
		i = j
	}
	return out
}

// cleanLines strips ^RRGGBB color escapes and underscore separator artifacts,
// and drops empty or ellipsis-only lines.
func cleanLines(lines []string) []string {
	var clean []string
	for _, line := range lines {
		line = colorEscape.ReplaceAllString(line, "")
		line = strings.ReplaceAll(line, "_", "")
		line = strings.TrimSpace(line)
		if line == "" || line == "..." {
			continue
		}
		clean = append(clean, line)
	}
	return clean
}

func skipSpaces(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
			i++
		default:
			return i
		}
	}
	return i
}
