package admissibility

import (
	"fmt"
	"strings"

	"exhibit/internal/audit"
)

// Summarize renders a decision for direct surfacing to a requestor, without
// further interpretation: approvals show the scope, everything else shows a
// bulleted list of what is missing or violated.
func Summarize(record *audit.Request) string {
	if record.Status == audit.StatusApproved {
		return record.ApprovalScope
	}

	var b strings.Builder
	switch record.Status {
	case audit.StatusRejected:
		b.WriteString("Document rejected for legal analysis.\n")
	case audit.StatusInsufficient:
		b.WriteString("Document has insufficient supporting sources.\n")
	}

	if len(record.MissingSources) > 0 {
		b.WriteString("Missing sources:\n")
		for _, src := range record.MissingSources {
			fmt.Fprintf(&b, "  - %s\n", src)
		}
	}
	if len(record.ViolatedArticles) > 0 {
		b.WriteString("Violated articles:\n")
		for _, article := range record.ViolatedArticles {
			fmt.Fprintf(&b, "  - %s\n", article)
		}
	}
	if record.RejectionReason != "" && len(record.ViolatedArticles) == 0 {
		fmt.Fprintf(&b, "Reason: %s\n", record.RejectionReason)
	}
	return strings.TrimRight(b.String(), "\n")
}
