// Package bem is a library of functions implementing the block-element-modifier
// class naming convention on top of a widget's DOM subtree.
//
// A block is identified by its name W. An element of the block carries the
// class W__elem. A modifier is a class derived from a prefix (the block name
// or an element class): prefix_mod for a flag modifier, prefix_mod_val
// otherwise.
package bem

import "strings"

const (
	ElemSeparator = "__"
	ModSeparator  = "_"
)

// BuildElementClass returns the class of the element elem of block.
func BuildElementClass(block, elem string) string {
	return block + ElemSeparator + elem
}

// BuildModifierClass returns the class of modifier mod on prefix.
// An empty val denotes a flag modifier.
func BuildModifierClass(prefix, mod, val string) string {
	if val == "" {
		return prefix + ModSeparator + mod
	}
	return prefix + ModSeparator + mod + ModSeparator + val
}

func BuildElementModifierClass(block, elem, mod, val string) string {
	return BuildModifierClass(BuildElementClass(block, elem), mod, val)
}

// isName reports whether s matches [a-z0-9-]+, ignoring case.
func isName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return false
		}
	}
	return true
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// MatchElement reports whether token is an element class of block and returns
// the element name. It is equivalent to the expression (?i)^block__([a-z0-9-]+)$.
func MatchElement(block, token string) (string, bool) {
	p := block + ElemSeparator
	if !hasPrefixFold(token, p) {
		return "", false
	}
	name := token[len(p):]
	if !isName(name) {
		return "", false
	}
	return name, true
}

// MatchModifier reports whether token is a modifier class of prefix.
// It is equivalent to (?i)^prefix_([a-z0-9-]+)(?=_([a-z0-9-]+)$|$): names
// never contain the separator so a token splits in at most two parts.
// val is empty for a flag modifier.
func MatchModifier(prefix, token string) (mod, val string, ok bool) {
	p := prefix + ModSeparator
	if !hasPrefixFold(token, p) {
		return "", "", false
	}
	rest := token[len(p):]
	i := strings.Index(rest, ModSeparator)
	if i < 0 {
		if !isName(rest) {
			return "", "", false
		}
		return rest, "", true
	}
	mod, val = rest[:i], rest[i+len(ModSeparator):]
	if !isName(mod) || !isName(val) {
		return "", "", false
	}
	return mod, val, true
}
