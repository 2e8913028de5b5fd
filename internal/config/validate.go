package config

import (
	"fmt"
	"strings"
	"unicode"
)

// MaxDepthLimit caps parse.max_depth.
const MaxDepthLimit = 4096

// reserved are markers with a fixed meaning that italic and bold cannot reuse.
var reserved = []string{
	"`", "=", "==", "//", "/*", "*/", "~", "~~", "-", "--", "---",
	"{", "}", "[", "]", "!", "@[", "#[", "#", ".", ":", "::", "\\",
}

// Validate checks value ranges and the sugar delimiters.
func (c *Config) Validate() error {
	if c.Parse.MaxDepth < 1 || c.Parse.MaxDepth > MaxDepthLimit {
		return fmt.Errorf("parse.max_depth must be between 1 and %d, got %d", MaxDepthLimit, c.Parse.MaxDepth)
	}
	if c.Parse.MaxErrors < 0 {
		return fmt.Errorf("parse.max_errors must not be negative, got %d", c.Parse.MaxErrors)
	}
	mode, err := ParseColorMode(string(c.Output.Color))
	if err != nil {
		return fmt.Errorf("output.color: %w", err)
	}
	c.Output.Color = mode

	seen := make(map[string]string)
	check := func(key string, delims []string) error {
		for _, d := range delims {
			if err := checkDelimiter(d); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			if other, dup := seen[d]; dup {
				return fmt.Errorf("%s: delimiter %q is already used by %s", key, d, other)
			}
			seen[d] = key
		}
		return nil
	}
	if err := check("parse.italic", c.Parse.Italic); err != nil {
		return err
	}
	return check("parse.bold", c.Parse.Bold)
}

func checkDelimiter(d string) error {
	if d == "" {
		return fmt.Errorf("empty delimiter")
	}
	for _, r := range d {
		if unicode.IsSpace(r) || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return fmt.Errorf("delimiter %q must consist of punctuation", d)
		}
	}
	for _, r := range reserved {
		if d == r {
			return fmt.Errorf("delimiter %q is reserved", d)
		}
	}
	if strings.HasPrefix(d, "//") || strings.HasPrefix(d, "/*") || strings.HasPrefix(d, "*/") {
		return fmt.Errorf("delimiter %q starts a comment marker", d)
	}
	return nil
}
