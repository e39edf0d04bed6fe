// File: contract/contract.go

// Package contract derives the public call surface of each message variant:
// the snake_case operation name, its no-wait twin, and the response type
// taken from the variant's resp field. Derivation is a pure function of the
// variant and is total once the unit has passed analysis.
package contract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hollyfield/stagecraft/decl"
)

// NoWaitSuffix distinguishes the fire-and-forget form of an operation.
const NoWaitSuffix = "_no_wait"

// ErrDuplicateOperationName reports two variants collapsing onto the same
// derived operation name. It surfaces here rather than in analysis because
// it needs the full cross-variant view.
var ErrDuplicateOperationName = errors.New("duplicate operation name")

// VariantContract is the immutable derived surface of one variant.
type VariantContract struct {
	Variant      string // source variant identifier, kept opaque
	OpName       string // wait-form operation, snake_case
	NoWaitName   string // OpName + NoWaitSuffix
	ResponseType string // resp field type with any optional wrapper stripped
}

// Derive computes the contract for a single variant. The variant must carry
// a resp field (guaranteed after analysis); Derive panics otherwise since
// that indicates a skipped gate, not a user error.
func Derive(v decl.Variant) VariantContract {
	resp := v.Field(decl.ResponseField)
	if resp == nil {
		panic(fmt.Sprintf("contract: variant %s has no %s field", v.Name, decl.ResponseField))
	}
	op := SnakeCase(v.Name)
	return VariantContract{
		Variant:      v.Name,
		OpName:       op,
		NoWaitName:   op + NoWaitSuffix,
		ResponseType: UnwrapType(resp.Type),
	}
}

// DeriveAll derives every variant of an accepted message type and checks the
// derived names for collisions across variants.
func DeriveAll(msg decl.MessageType) ([]VariantContract, error) {
	contracts := make([]VariantContract, 0, len(msg.Variants))
	seen := make(map[string]string, len(msg.Variants))
	for _, v := range msg.Variants {
		c := Derive(v)
		if prev, ok := seen[c.OpName]; ok {
			return nil, fmt.Errorf("%w: %s and %s both derive %q",
				ErrDuplicateOperationName, prev, c.Variant, c.OpName)
		}
		seen[c.OpName] = c.Variant
		contracts = append(contracts, c)
	}
	return contracts, nil
}

// UnwrapType strips one layer of optional-wrapper spelling from a declared
// type. The resp field is slot-like at run time no matter how the user wrote
// it, so callers always see the bare type.
func UnwrapType(t string) string {
	t = strings.TrimSpace(t)
	if rest, ok := strings.CutPrefix(t, "*"); ok {
		return strings.TrimSpace(rest)
	}
	for _, wrapper := range []string{"Option<", "Optional<", "Option[", "Optional["} {
		inner, ok := strings.CutPrefix(t, wrapper)
		if !ok || inner == "" {
			continue
		}
		if close := inner[len(inner)-1]; close == '>' || close == ']' {
			return strings.TrimSpace(inner[:len(inner)-1])
		}
	}
	return t
}
