package pattern

import (
	"regexp"
	"strings"

	"cohortid/internal/utils"
)

// Kind identifies which extraction strategy a compiled pattern uses.
type Kind int

const (
	KindDirectory Kind = iota // {parent}, {dirname}, {dir}, {id}/*
	KindFilename              // {filename}: last segment minus extension
	KindBasename              // {basename}: last segment verbatim
	KindParentWrapped         // {parent:<inner>}
	KindStemWrapped           // {stem:<inner>}
	KindIDTemplate            // literal text containing {id}, matched on the filename
	KindRawRegex              // anything else, matched on the full path
)

// String returns a human-readable representation of the pattern kind
func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "Directory"
	case KindFilename:
		return "Filename"
	case KindBasename:
		return "Basename"
	case KindParentWrapped:
		return "ParentWrapped"
	case KindStemWrapped:
		return "StemWrapped"
	case KindIDTemplate:
		return "IDTemplate"
	case KindRawRegex:
		return "RawRegex"
	default:
		return "Unknown"
	}
}

// Pattern is a compiled participant-ID pattern. A Pattern is immutable after
// Compile and safe to reuse across any number of paths.
type Pattern struct {
	Text string // The original pattern text

	kind       Kind
	inner      *Pattern       // Inner pattern for {parent:...}/{stem:...}
	innerWhole bool           // Inner pattern was exactly {id}
	re         *regexp.Regexp // Compiled regex (nil if not regex-based or invalid)
	idGroup    int            // Capture group index holding the ID
	valid      bool
	errText    string // Error message if invalid
}

// Compile parses a pattern string into its tagged variant. It never returns
// an error: a malformed regex yields a Pattern that is invalid and matches
// nothing, since users may be mid-typing when patterns are compiled.
func Compile(text string) *Pattern {
	p := &Pattern{Text: text, valid: true}

	switch text {
	case "{parent}", "{dirname}", "{dir}", "{id}/*":
		p.kind = KindDirectory
		return p
	case "{filename}":
		p.kind = KindFilename
		return p
	case "{basename}":
		p.kind = KindBasename
		return p
	}

	if inner, ok := wrappedInner(text, "{parent:"); ok {
		p.kind = KindParentWrapped
		p.setInner(inner)
		return p
	}

	if inner, ok := wrappedInner(text, "{stem:"); ok {
		p.kind = KindStemWrapped
		p.setInner(inner)
		return p
	}

	if strings.Contains(text, "{id}") {
		p.kind = KindIDTemplate
		re, err := compileTemplate(text)
		if err != nil {
			// Template expansion only emits escaped literals, so this
			// should not happen; treat it like any other bad regex.
			p.markInvalid(err.Error())
			return p
		}
		p.re = re
		p.idGroup = 1
		return p
	}

	p.kind = KindRawRegex
	re, err := regexp.Compile(text)
	if err != nil {
		p.markInvalid(err.Error())
		return p
	}
	p.re = re
	p.idGroup = rawIDGroup(re)
	return p
}

// Valid reports whether the pattern compiled successfully.
func (p *Pattern) Valid() bool {
	return p.valid
}

// Kind returns the extraction strategy the pattern compiled to.
func (p *Pattern) Kind() Kind {
	return p.kind
}

// ErrText returns the compilation error message, or "" for valid patterns.
func (p *Pattern) ErrText() string {
	return p.errText
}

func (p *Pattern) markInvalid(msg string) {
	p.valid = false
	p.errText = msg
	utils.Warning("invalid pattern %q: %s", p.Text, msg)
}

func (p *Pattern) setInner(inner string) {
	if inner == "{id}" {
		p.innerWhole = true
		return
	}
	p.inner = Compile(inner)
	if !p.inner.valid {
		p.valid = false
		p.errText = p.inner.errText
	}
}

// wrappedInner returns the inner pattern of a {parent:...} or {stem:...}
// wrapper, or ok=false when text is not wrapped by the given prefix.
func wrappedInner(text, prefix string) (string, bool) {
	if !strings.HasPrefix(text, prefix) || !strings.HasSuffix(text, "}") {
		return "", false
	}
	return text[len(prefix) : len(text)-1], true
}

// compileTemplate turns a literal pattern containing {id} into a regex.
// The capturing class depends on the literal delimiter that follows {id}:
// "_" drops underscore, "-" drops hyphen, "." drops both (dot is never in
// the class). A trailing literal "*" becomes ".*".
func compileTemplate(text string) (*regexp.Regexp, error) {
	idx := strings.Index(text, "{id}")
	prefix := text[:idx]
	suffix := text[idx+len("{id}"):]

	trailing := false
	if strings.HasSuffix(suffix, "*") {
		suffix = suffix[:len(suffix)-1]
		trailing = true
	}

	var b strings.Builder
	b.WriteString(regexp.QuoteMeta(prefix))
	b.WriteString("(")
	b.WriteString(classFor(suffix))
	b.WriteString("+)")
	b.WriteString(regexp.QuoteMeta(suffix))
	if trailing {
		b.WriteString(".*")
	}
	return regexp.Compile(b.String())
}

// classFor picks the ID character class based on the literal character
// immediately following {id}. Only the documented delimiters are special;
// everything else gets the default class.
func classFor(suffix string) string {
	if suffix == "" {
		return `[A-Za-z0-9_-]`
	}
	switch suffix[0] {
	case '_':
		return `[A-Za-z0-9-]`
	case '-':
		return `[A-Za-z0-9_]`
	case '.':
		return `[A-Za-z0-9]`
	default:
		return `[A-Za-z0-9_-]`
	}
}

// rawIDGroup resolves which capture group carries the ID for a raw regex:
// the group named "id" when present, else group 1, else the whole match.
// Go's regexp accepts both the (?P<id>...) and (?<id>...) spellings, so no
// rewriting of the pattern text is needed.
func rawIDGroup(re *regexp.Regexp) int {
	for i, name := range re.SubexpNames() {
		if name == "id" {
			return i
		}
	}
	if re.NumSubexp() >= 1 {
		return 1
	}
	return 0
}
