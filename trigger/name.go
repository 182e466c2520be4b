package trigger

import (
	"regexp"
	"sort"
	"strings"

	"github.com/milk9111/backtrack/maps"
)

// Kind classifies a trigger name once at build time so queries never re-match
// patterns.
type Kind int

const (
	KindPlain Kind = iota
	KindInteractable
	KindTransition
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "sensor"
	case KindInteractable:
		return "interactableSensor"
	case KindTransition:
		return "transition"
	}
	return "unknown"
}

var (
	plainPattern        = regexp.MustCompile(`^sensor\d+$`)
	interactablePattern = regexp.MustCompile(`^interactableSensor\d+$`)
	transitionPattern   = regexp.MustCompile(`^transition\d+$`)
)

// Name is a classified logical trigger name. One name may span several
// physics shapes.
type Name struct {
	Raw  string
	Kind Kind
}

// Classify matches s against the recognized trigger-name patterns.
func Classify(s string) (Name, bool) {
	switch {
	case plainPattern.MatchString(s):
		return Name{Raw: s, Kind: KindPlain}, true
	case interactablePattern.MatchString(s):
		return Name{Raw: s, Kind: KindInteractable}, true
	case transitionPattern.MatchString(s):
		return Name{Raw: s, Kind: KindTransition}, true
	}
	return Name{}, false
}

// NamesFromObject extracts every trigger name an authored object carries: its
// own name if it matches a pattern, plus any boolean property set true whose
// key matches. A shape may carry more than one name; enter/exit fires
// independently per name.
func NamesFromObject(obj maps.Object) []Name {
	var out []Name
	seen := map[string]bool{}
	if n, ok := Classify(obj.Name); ok {
		out = append(out, n)
		seen[n.Raw] = true
	}
	keys := make([]string, 0, len(obj.Props))
	for k := range obj.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if seen[k] {
			continue
		}
		if v, ok := obj.Props.Bool(k); !ok || !v {
			continue
		}
		if n, ok := Classify(k); ok {
			out = append(out, n)
			seen[k] = true
		}
	}
	return out
}

// RequiredKeyFromObject reads the optional "key" property gating an
// interactable trigger. Empty means any key is accepted.
func RequiredKeyFromObject(obj maps.Object) string {
	s, ok := obj.Props.String("key")
	if !ok {
		return ""
	}
	return strings.ToLower(s)
}
