package bem

import "strings"

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

// Classes splits a class attribute value into its tokens, in document order.
func Classes(class string) []string {
	return strings.FieldsFunc(class, isSpace)
}

func HasClass(class, token string) bool {
	for _, c := range Classes(class) {
		if c == token {
			return true
		}
	}
	return false
}

// AddClass returns class with token appended, unless already present.
func AddClass(class, token string) string {
	tokens := Classes(class)
	for _, c := range tokens {
		if c == token {
			return strings.Join(tokens, " ")
		}
	}
	return strings.Join(append(tokens, token), " ")
}

// RemoveClass returns class without any occurrence of token.
func RemoveClass(class, token string) string {
	tokens := Classes(class)
	kept := tokens[:0]
	for _, c := range tokens {
		if c != token {
			kept = append(kept, c)
		}
	}
	return strings.Join(kept, " ")
}
