package identity

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/employee"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/identity"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
)

// taxIDPattern matches an 11 digit tax id with optional separators, e.g. 20-12345678-9.
var taxIDPattern = regexp.MustCompile(`\b\d{2}[-.\s]?\d{7,8}[-.\s]?\d\b`)

// FindTaxID returns the tax id found in text, or "" when none is present.
func FindTaxID(text string) string {
	return taxIDPattern.FindString(text)
}

// Resolver maps imported names and tax ids to employee identities. It holds
// the employee roster as of its creation; aliases are looked up live.
type Resolver struct {
	employees []employee.Employee
	aliases   identity.AliasRepository
}

func NewResolver(ctx context.Context, employees employee.EmployeeRepository, aliases identity.AliasRepository) (*Resolver, error) {
	roster, err := employees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	return &Resolver{employees: roster, aliases: aliases}, nil
}

// MatchTaxID finds the single employee whose stored tax id contains the digits
// of taxID. No match or more than one match both return false.
func (r *Resolver) MatchTaxID(taxID string) (string, bool) {
	digits := utils.DigitsOnly(taxID)
	if digits == "" {
		return "", false
	}

	var found string
	for _, e := range r.employees {
		stored := utils.DigitsOnly(e.TaxID)
		if stored == "" || !strings.Contains(stored, digits) {
			continue
		}
		if found != "" && found != e.ID {
			return "", false
		}
		found = e.ID
	}
	return found, found != ""
}

// Resolve applies tax id, then alias, then virtual identity. taxEmployeeID is
// the employee already matched from the row's tax id context, if any.
func (r *Resolver) Resolve(ctx context.Context, rawName, taxEmployeeID string) (identity.Resolution, error) {
	if taxEmployeeID != "" {
		return identity.Resolution{EmployeeID: taxEmployeeID, RawName: rawName, Method: identity.MethodTaxID}, nil
	}

	normalized := identity.NormalizeName(rawName)
	if normalized == "" {
		return identity.Resolution{}, identity.ErrUnresolvable
	}

	mapping, err := r.aliases.GetByNormalizedName(ctx, normalized)
	if err != nil {
		return identity.Resolution{}, fmt.Errorf("failed to look up alias: %w", err)
	}
	if mapping != nil {
		return identity.Resolution{EmployeeID: mapping.EmployeeID, RawName: rawName, Method: identity.MethodAlias}, nil
	}

	virtualID := identity.VirtualID(rawName)
	if virtualID == "" {
		return identity.Resolution{}, identity.ErrUnresolvable
	}
	return identity.Resolution{EmployeeID: virtualID, RawName: rawName, Method: identity.MethodVirtual}, nil
}
