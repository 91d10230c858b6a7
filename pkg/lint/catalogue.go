package lint

// RuleID identifies a rule in the fixed catalogue.
type RuleID string

// Fixers rewrite text.
const (
	HardTabs            RuleID = "HARD_TABS"
	TrailingWhitespace  RuleID = "TRAILING_WHITESPACE"
	HashSpacingMissing  RuleID = "HASH_SPACING_MISSING"
	HashSpacingExtra    RuleID = "HASH_SPACING_EXTRA"
	HeaderLeftAlign     RuleID = "HEADER_LEFT_ALIGN"
	FirstLineHeader     RuleID = "FIRST_LINE_HEADER"
	HeaderStyle         RuleID = "HEADER_STYLE"
	OrderedListPrefix   RuleID = "ORDERED_LIST_PREFIX"
	BareURL             RuleID = "BARE_URL"
	TablePipeStyle      RuleID = "TABLE_PIPE_STYLE"
	BlanksAroundHeaders RuleID = "BLANKS_AROUND_HEADERS"
	BlanksAroundLists   RuleID = "BLANKS_AROUND_LISTS"
	MultipleBlanks      RuleID = "MULTIPLE_BLANKS"
	FileEndNewline      RuleID = "FILE_END_NEWLINE"
	FencedCodeLanguage  RuleID = "FENCED_CODE_LANGUAGE"
)

// Detectors only report.
const (
	LineLength               RuleID = "LINE_LENGTH"
	DuplicateHeading         RuleID = "DUPLICATE_HEADING"
	MultipleTopLevelHeadings RuleID = "MULTIPLE_TOP_LEVEL_HEADINGS"
	InlineHTML               RuleID = "INLINE_HTML"
	LinkFragment             RuleID = "LINK_FRAGMENT"
	TableMultilineCell       RuleID = "TABLE_MULTILINE_CELL"
	EmphasisAsHeading        RuleID = "EMPHASIS_AS_HEADING"
)

// FixerOrder is the order fixers run in. Each fixer sees the output of the
// ones before it: tabs are expanded before trailing whitespace is stripped,
// and blank lines are inserted around headings and lists before runs of
// blank lines are collapsed.
//
//nolint:gochecknoglobals // Fixed catalogue.
var FixerOrder = []RuleID{
	HardTabs,
	TrailingWhitespace,
	HashSpacingMissing,
	HashSpacingExtra,
	HeaderLeftAlign,
	FirstLineHeader,
	HeaderStyle,
	OrderedListPrefix,
	BareURL,
	TablePipeStyle,
	BlanksAroundHeaders,
	BlanksAroundLists,
	MultipleBlanks,
	FileEndNewline,
	FencedCodeLanguage,
}

// DetectorOrder is the order detectors run in.
//
//nolint:gochecknoglobals // Fixed catalogue.
var DetectorOrder = []RuleID{
	LineLength,
	DuplicateHeading,
	MultipleTopLevelHeadings,
	InlineHTML,
	LinkFragment,
	TableMultilineCell,
	EmphasisAsHeading,
}

// Kind says whether a rule rewrites text or only reports.
type Kind int

const (
	KindUnknown Kind = iota
	KindFixer
	KindDetector
)

func (k Kind) String() string {
	switch k {
	case KindFixer:
		return "fixer"
	case KindDetector:
		return "detector"
	default:
		return "unknown"
	}
}

// Kind returns the catalogue kind of id, or KindUnknown for ids outside the catalogue.
func (id RuleID) Kind() Kind {
	for _, f := range FixerOrder {
		if f == id {
			return KindFixer
		}
	}
	for _, d := range DetectorOrder {
		if d == id {
			return KindDetector
		}
	}
	return KindUnknown
}

// Known reports whether id is part of the catalogue.
func (id RuleID) Known() bool {
	return id.Kind() != KindUnknown
}
