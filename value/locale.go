package value

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// localeCaser wraps the two case-folding directions String.prototype's
// locale-aware methods need (spec.md §6.7 Math/Prototype Glue; see
// SPEC_FULL.md §4 domain-stack entry for golang.org/x/text/cases).
var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

// ToLocaleUpperCase backs String.prototype.toLocaleUpperCase using real
// Unicode case folding rather than a hand-rolled ASCII table.
func (s *String) ToLocaleUpperCase() *String {
	return NewString(upperCaser.String(s.Go()))
}

// ToLocaleLowerCase backs String.prototype.toLocaleLowerCase.
func (s *String) ToLocaleLowerCase() *String {
	return NewString(lowerCaser.String(s.Go()))
}
