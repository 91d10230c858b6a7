// Package rules provides the built-in rules for gomdfmt.
//
// # Fixers
//
// Fixers rewrite the document and run in the catalogue's fixed order:
//
//   - HARD_TABS (MD010): expand tabs to spaces_per_tab spaces (default 4)
//   - TRAILING_WHITESPACE (MD009): strip trailing whitespace
//   - HASH_SPACING_MISSING (MD018): add the space after an ATX marker
//   - HASH_SPACING_EXTRA (MD019): collapse spaces after an ATX marker
//   - HEADER_LEFT_ALIGN (MD023): move indented headings to column 1
//   - FIRST_LINE_HEADER (MD041): promote the first line to a heading
//   - HEADER_STYLE (MD003): make headings consistently ATX or Setext
//   - ORDERED_LIST_PREFIX (MD029): renumber ordered lists from 1
//   - BARE_URL (MD034): wrap bare and soft-wrapped URLs in angle brackets
//   - TABLE_PIPE_STYLE (MD055): pad table cells with single spaces
//   - BLANKS_AROUND_HEADERS (MD022): surround headings with blank lines
//   - BLANKS_AROUND_LISTS (MD032): surround lists with blank lines
//   - MULTIPLE_BLANKS (MD012): collapse runs of blank lines
//   - FILE_END_NEWLINE (MD047): end the file with exactly one newline
//   - FENCED_CODE_LANGUAGE (MD040): tag bare code fences (opt-in)
//
// # Detectors
//
// Detectors read the original document and report issues:
//
//   - LINE_LENGTH (MD013)
//   - DUPLICATE_HEADING (MD024)
//   - MULTIPLE_TOP_LEVEL_HEADINGS (MD025)
//   - INLINE_HTML (MD033)
//   - LINK_FRAGMENT (MD051)
//   - TABLE_MULTILINE_CELL (MD056)
//   - EMPHASIS_AS_HEADING (MD036)
//
// Front matter is never touched. Fenced code is left alone too, with two
// exceptions: TRAILING_WHITESPACE strips code lines unless
// ignore_code_blocks is set, and HARD_TABS expands tabs in code when
// code_blocks is set.
package rules
