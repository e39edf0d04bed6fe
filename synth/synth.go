// File: synth/synth.go

// Package synth assembles the output model of an accepted actor unit: the
// shapes of the handle, worker and response-slot-augmented message type,
// plus one wait/no-wait operation pair per variant. Synthesize never fails,
// since analysis and derivation have already guaranteed its preconditions,
// and a rejected unit never reaches it, so no output exists for invalid
// input.
package synth

import (
	"github.com/hollyfield/stagecraft/analyze"
	"github.com/hollyfield/stagecraft/contract"
	"github.com/hollyfield/stagecraft/decl"
	"github.com/hollyfield/stagecraft/stage"
)

// HandlePrefix is prepended to the processor name to form the handle type
// name, matching the Actor<Processor> convention of the original surface.
const HandlePrefix = "Actor"

// OpDecl is one derived operation of the public call surface.
type OpDecl struct {
	Name         string // snake_case, unique across the unit
	Variant      string
	Wait         bool
	ResponseType string // meaningful for the wait form only
}

// VariantDecl is one variant of the augmented message type: the declared
// data fields with resp split out as a slot of the response type.
type VariantDecl struct {
	Name         string
	DataFields   []decl.Field // declared fields minus resp, in order
	ResponseType string
}

// OutputModel is everything the consuming build step needs to materialize
// the actor: type shapes and the operation set. It also spawns the runtime
// embodiment directly via Spawn.
type OutputModel struct {
	ActorName  string // processor type name
	HandleName string // HandlePrefix + ActorName
	WorkerName string // the processor itself, bound to the consumer end
	Message    string // augmented message type name
	Variants   []VariantDecl
	Ops        []OpDecl
}

// Synthesize produces the output model for an accepted unit and its derived
// contracts. The contracts must come from the same unit's message type.
func Synthesize(acc *analyze.Accepted, contracts []contract.VariantContract) *OutputModel {
	m := &OutputModel{
		ActorName:  acc.Processor.Name,
		HandleName: HandlePrefix + acc.Processor.Name,
		WorkerName: acc.Processor.Name,
		Message:    acc.Message.Name,
	}

	byVariant := make(map[string]contract.VariantContract, len(contracts))
	for _, c := range contracts {
		byVariant[c.Variant] = c
	}

	for _, v := range acc.Message.Variants {
		c := byVariant[v.Name]
		vd := VariantDecl{Name: v.Name, ResponseType: c.ResponseType}
		for _, f := range v.Fields {
			if f.Name != decl.ResponseField {
				vd.DataFields = append(vd.DataFields, f)
			}
		}
		m.Variants = append(m.Variants, vd)

		m.Ops = append(m.Ops,
			OpDecl{Name: c.OpName, Variant: c.Variant, Wait: true, ResponseType: c.ResponseType},
			OpDecl{Name: c.NoWaitName, Variant: c.Variant, Wait: false},
		)
	}
	return m
}

// Assemble runs the whole front half of the engine: analysis, contract
// derivation and synthesis. Any reject surfaces as the error and no model is
// produced; acceptance is atomic.
func Assemble(unit decl.Unit) (*OutputModel, error) {
	return AssembleBound(unit, nil)
}

// AssembleBound is Assemble with an explicit processor/message binding.
func AssembleBound(unit decl.Unit, binding *analyze.Binding) (*OutputModel, error) {
	acc, err := analyze.AnalyzeBound(unit, binding)
	if err != nil {
		return nil, err
	}
	contracts, err := contract.DeriveAll(acc.Message)
	if err != nil {
		return nil, err
	}
	return Synthesize(acc, contracts), nil
}

// StageOps converts the operation set to the runtime's table form.
func (m *OutputModel) StageOps() []stage.Op {
	ops := make([]stage.Op, 0, len(m.Ops))
	for _, op := range m.Ops {
		ops = append(ops, stage.Op{Name: op.Name, Variant: op.Variant, Wait: op.Wait})
	}
	return ops
}

// Spawn materializes the model as a running actor: mailbox, worker goroutine
// around the given processor, and the returned handle.
func (m *OutputModel) Spawn(proc stage.Processor, opts stage.Options) *stage.Handle {
	return stage.Spawn(m.ActorName, m.StageOps(), proc, opts)
}

// SpawnIn is Spawn under a registry, returning the assigned actor id.
func (m *OutputModel) SpawnIn(sys *stage.System, proc stage.Processor, opts stage.Options) (string, *stage.Handle, error) {
	return sys.Spawn("", m.StageOps(), proc, opts)
}
