// File: decl/decl.go

// Package decl holds the typed view of one candidate actor unit as supplied
// by an upstream front end: a processor type, a tagged message type, and a
// handler binding. It is pure data; the packages analyze, contract and synth
// give it meaning.
//
// Type names inside the model are opaque strings. The engine never resolves
// them against a real type system; it only compares them for equality and
// unwraps the optional-wrapper spellings listed in UnwrapType.
package decl

// Field is one named field of a variant or processor type.
type Field struct {
	Name string
	Type string
}

// Param is one parameter of a method-like member.
type Param struct {
	Name string
	Type string
	// Exclusive marks a by-exclusive-reference parameter (&mut / *T-style).
	Exclusive bool
}

// Method is a method-like member of a processor type.
type Method struct {
	Name   string
	Params []Param
	Async  bool
}

// ProcessorType is the state-owning type a worker will wrap. Its data fields
// are carried for completeness but never inspected beyond existence.
type ProcessorType struct {
	Name    string
	Fields  []Field
	Methods []Method
}

// Variant is one named alternative shape of a message type.
type Variant struct {
	Name   string
	Fields []Field
}

// MessageType is a tagged union of variants.
type MessageType struct {
	Name     string
	Variants []Variant
}

// HandlerBinding names the method on a processor that handles messages.
type HandlerBinding struct {
	Processor string
	Method    string
}

// Unit is one candidate actor unit handed to the analyzer. Processors and
// Messages may each hold any number of declarations; the analyzer decides
// which (if any) form a valid pairing.
type Unit struct {
	Processors []ProcessorType
	Messages   []MessageType
	Handler    *HandlerBinding
}

// ResponseField is the mandatory per-variant field carrying the reply.
const ResponseField = "resp"

// HandlerName is the conventional name of the message handler method.
const HandlerName = "process"

// MessageSuffix links a message type to its processor by naming convention.
const MessageSuffix = "Msg"

// Method looks up a method by name, or nil.
func (p *ProcessorType) Method(name string) *Method {
	for i := range p.Methods {
		if p.Methods[i].Name == name {
			return &p.Methods[i]
		}
	}
	return nil
}

// Field looks up a field by name, or nil.
func (v *Variant) Field(name string) *Field {
	for i := range v.Fields {
		if v.Fields[i].Name == name {
			return &v.Fields[i]
		}
	}
	return nil
}

// Variant looks up a variant by name, or nil.
func (m *MessageType) Variant(name string) *Variant {
	for i := range m.Variants {
		if m.Variants[i].Name == name {
			return &m.Variants[i]
		}
	}
	return nil
}
