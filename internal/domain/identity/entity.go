package identity

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
)

// VirtualPrefix marks identities derived from an unresolved imported name.
const VirtualPrefix = "virtual-"

// Method records which rule resolved a row to an identity.
type Method string

const (
	MethodTaxID   Method = "tax_id"
	MethodAlias   Method = "alias"
	MethodVirtual Method = "virtual"
)

// AliasMapping ties a raw imported name to a real employee.
type AliasMapping struct {
	ID             string
	RawName        string
	NormalizedName string
	EmployeeID     string
	CreatedAt      time.Time
}

// Resolution is the outcome of resolving one import row.
type Resolution struct {
	EmployeeID string
	RawName    string
	Method     Method
}

// VirtualIdentity is a view over records keyed to a virtual identity; it has no storage of its own.
type VirtualIdentity struct {
	ID          string
	RawNames    []string
	RecordCount int
	FirstDate   time.Time
	LastDate    time.Time
}

// NormalizeName folds case and diacritics and drops punctuation, so two
// spellings share an alias exactly when they share a VirtualID.
func NormalizeName(raw string) string {
	return strings.Join(utils.NameWords(raw), " ")
}

// VirtualID derives the stable placeholder identity for a raw name.
// Names that normalize equally share one identity.
func VirtualID(raw string) string {
	slug := utils.Slug(raw)
	if slug == "" {
		return ""
	}
	return VirtualPrefix + slug
}

func IsVirtual(id string) bool {
	return strings.HasPrefix(id, VirtualPrefix)
}
