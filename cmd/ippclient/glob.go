/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Printer name patterns
 */

package main

import (
	"unicode"
)

// nameMatch matches printer name against the shell-style pattern,
// case-insensitively.
//
// Pattern syntax:
//
//	*   - matches any sequence of characters, including empty
//	?   - matches exactly one character
//	\c  - matches c literally
//
// On success, the count of literally matched characters is returned,
// so the more specific match has the larger weight. On failure, -1
// is returned.
func nameMatch(name, pattern string) int {
	return nameMatchRunes([]rune(name), []rune(pattern), 0)
}

// nameMatchRunes does the actual work of nameMatch
func nameMatchRunes(name, pattern []rune, weight int) int {
	for len(pattern) != 0 {
		switch pattern[0] {
		case '*':
			for len(pattern) != 0 && pattern[0] == '*' {
				pattern = pattern[1:]
			}

			if len(pattern) == 0 {
				return weight
			}

			best := -1
			for i := 0; i <= len(name); i++ {
				w := nameMatchRunes(name[i:], pattern, weight)
				if w > best {
					best = w
				}
			}
			return best

		case '?':
			if len(name) == 0 {
				return -1
			}

		default:
			c := pattern[0]
			if c == '\\' && len(pattern) > 1 {
				pattern = pattern[1:]
				c = pattern[0]
			}

			if len(name) == 0 || unicode.ToLower(c) != unicode.ToLower(name[0]) {
				return -1
			}
			weight++
		}

		name = name[1:]
		pattern = pattern[1:]
	}

	if len(name) != 0 {
		return -1
	}

	return weight
}
