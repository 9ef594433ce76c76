package timeline

import (
	"fmt"
	"strings"

	"ostimeline/internal/model"
)

// ReportOptions controls GenerateReport.
type ReportOptions struct {
	Verbose bool
	// Related resolves cross references for verbose output. May be nil.
	Related func(model.Entry) []model.Entry
}

// Describe summarises the active filters in one line.
func Describe(st State) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("years %d–%d", st.Range.From, st.Range.To))

	if st.AllTypes() {
		parts = append(parts, "all types")
	} else {
		parts = append(parts, "types: "+joinOrNone(st.Types.Ordered(model.Types)))
	}
	if st.AllFamilies() {
		parts = append(parts, "all families")
	} else {
		parts = append(parts, "families: "+joinOrNone(st.Families.Ordered(model.Families)))
	}
	if q := strings.TrimSpace(st.Query); q != "" {
		parts = append(parts, fmt.Sprintf("query %q", q))
	}
	return strings.Join(parts, " · ")
}

// GenerateReport renders the grouped timeline as plain text.
func GenerateReport(buckets []Bucket, st State, opts ReportOptions) string {
	var sb strings.Builder

	total := 0
	for _, b := range buckets {
		total += len(b.Entries)
	}

	sb.WriteString("Kernels & Operating Systems Timeline\n")
	sb.WriteString("====================================\n")
	sb.WriteString(Describe(st))
	sb.WriteString(fmt.Sprintf("\n%d items\n", total))

	if len(buckets) == 0 {
		sb.WriteString("\nNo results. Try widening filters.\n")
		return sb.String()
	}

	for _, b := range buckets {
		sb.WriteString(fmt.Sprintf("\n%ds\n", b.Decade))
		sb.WriteString(strings.Repeat("-", 5) + "\n")
		for _, e := range b.Entries {
			sb.WriteString(fmt.Sprintf("%-9s %s  [%s · %s]\n", e.Span(), e.Name, e.Type, e.Family))
			if opts.Verbose {
				writeDetails(&sb, e, opts.Related)
			}
		}
	}
	return sb.String()
}

func writeDetails(sb *strings.Builder, e model.Entry, related func(model.Entry) []model.Entry) {
	const indent = "          "

	platforms := make([]string, len(e.Platform))
	for i, p := range e.Platform {
		platforms[i] = string(p)
	}
	sb.WriteString(indent + "Platforms: " + strings.Join(platforms, ", ") + "\n")
	sb.WriteString(indent + e.Description + "\n")

	for _, h := range e.Highlights {
		sb.WriteString(indent + "• " + h + "\n")
	}
	for _, v := range e.Versions {
		line := fmt.Sprintf("%s%s (%d)", indent, v.Version, v.Year)
		if v.Notes != "" {
			line += " — " + v.Notes
		}
		sb.WriteString(line + "\n")
	}
	if related != nil {
		var names []string
		for _, r := range related(e) {
			names = append(names, r.Name)
		}
		if len(names) > 0 {
			sb.WriteString(indent + model.IconRelated + " " + strings.Join(names, ", ") + "\n")
		}
	}
}

func joinOrNone[T ~string](values []T) string {
	if len(values) == 0 {
		return "none"
	}
	return joinValues(values)
}
