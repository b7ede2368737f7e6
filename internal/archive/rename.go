package archive

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/korean"
)

// RenameRule replaces every match of Pattern in a member path with
// Replacement.
type RenameRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// RenameTable is an ordered list of rename rules. Rules are applied in
// order, each to the output of the previous one.
type RenameTable []RenameRule

// DefaultRenameTable maps directory names containing 원천 (source data) to
// "images" and names containing 라벨 (labels) to "labels".
func DefaultRenameTable() RenameTable {
	return RenameTable{
		{Pattern: regexp.MustCompile(`[0-9.가-힣a-z() ]+원천[0-9.가-힣a-z() ]+`), Replacement: "images"},
		{Pattern: regexp.MustCompile(`[0-9.가-힣a-z() ]+라벨[0-9.가-힣a-z() ]+`), Replacement: "labels"},
	}
}

// Apply lowercases name and runs every rule over it.
func (t RenameTable) Apply(name string) string {
	name = strings.ToLower(name)
	for _, rule := range t {
		name = rule.Pattern.ReplaceAllString(name, rule.Replacement)
	}
	return name
}

// DecodeName converts an EUC-KR encoded member name to UTF-8.
func DecodeName(raw string) (string, error) {
	name, err := korean.EUCKR.NewDecoder().String(raw)
	if err != nil {
		return "", fmt.Errorf("cannot decode member name %q as EUC-KR: %w", raw, err)
	}
	return name, nil
}
