package tui

// HelpText is shown by the '?' dialog.
const HelpText = `Kernels & Operating Systems Timeline  v{{VERSION}}

A curated timeline of kernels and operating systems, grouped by decade.

NAVIGATION
  ↑/↓ or k/j      Move between entries
  g / G           First / last entry
  Enter / Space   Expand or collapse details
  PgUp / PgDn     Scroll the details panel

SEARCH
  /               Search names, descriptions, highlights and versions
  Enter           Keep the query and return to the list
  Esc             Clear the query

FILTER CHIPS
  t / f           Focus the Types / Families bar (Tab cycles)
  ←/→             Move between chips
  Space / Enter   Toggle the chip under the cursor

  When every chip is on, the first click isolates that chip.
  Clicking the isolated chip again turns every chip back on.
  Otherwise clicks add or remove chips, so you can combine them.

YEAR RANGE
  [ / ]           Move the start year back / forward
  { / }           Move the end year back / forward
  < / >           Widen the start / end by ten years
  An entry is shown when its active years overlap the range.

OTHER
  r               Reset all filters
  e               Export the filtered list as JSON to the working directory
  ?               Toggle this help
  q               Quit

Press Esc or ? to close.`
