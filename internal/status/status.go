// Package status maps between the short internal milestone status codes used
// by API clients and the canonical French labels stored in the database. The
// mapping is deliberately permissive: values that are already canonical, and
// values it does not recognize at all, pass through unchanged. Enforcement of
// the closed label set happens at the repository boundary, not here.
package status

// The four canonical labels, exactly as constrained by the
// investor_milestones.status column.
const (
	Paid       = "Payé"
	Unpaid     = "Pas payé"
	Cancelled  = "Annulé"
	InProgress = "En cours"
)

var codeToLabel = map[string]string{
	"payee":     Paid,
	"pas_payee": Unpaid,
	"annule":    Cancelled,
	"en_cours":  InProgress,
}

var labelToCode = map[string]string{
	Paid:       "payee",
	Unpaid:     "pas_payee",
	Cancelled:  "annule",
	InProgress: "en_cours",
}

// ToLabel resolves a status value to its canonical label. Canonical labels
// and unknown values are returned as-is.
func ToLabel(v string) string {
	if _, ok := labelToCode[v]; ok {
		return v
	}
	if label, ok := codeToLabel[v]; ok {
		return label
	}
	return v
}

// ToCode resolves a status value to its internal short code. Codes and
// unknown values are returned as-is.
func ToCode(v string) string {
	if _, ok := codeToLabel[v]; ok {
		return v
	}
	if code, ok := labelToCode[v]; ok {
		return code
	}
	return v
}

// IsCanonical reports whether v is one of the four exact labels.
func IsCanonical(v string) bool {
	_, ok := labelToCode[v]
	return ok
}

// Labels returns the canonical label set in display order.
func Labels() []string {
	return []string{Paid, Unpaid, Cancelled, InProgress}
}
