// File: analyze/analyze.go

// Package analyze decides whether a candidate declaration unit qualifies as
// a generatable actor. Rules run in a fixed order and the first failure wins;
// acceptance is atomic, so a rejected unit yields no accepted pair at all.
package analyze

import (
	"github.com/hollyfield/stagecraft/decl"
)

// Accepted is the validated processor/message pairing handed to the deriver
// and synthesizer. Once returned, downstream stages may assume every rule in
// this package holds.
type Accepted struct {
	Processor decl.ProcessorType
	Message   decl.MessageType
	Handler   decl.HandlerBinding
}

// Binding pairs a processor and a message type explicitly by name, replacing
// the "Msg"-suffix convention with a declarative reference. When supplied,
// pairing is validated structurally and no string-suffix matching happens.
type Binding struct {
	Processor string
	Message   string
}

// Analyze gates a candidate unit. On success it returns the single accepted
// pairing; on failure a *RejectError naming the rule and subject.
func Analyze(unit decl.Unit) (*Accepted, error) {
	return AnalyzeBound(unit, nil)
}

// AnalyzeBound is Analyze with an optional explicit Binding. A nil binding
// falls back to the suffix convention: the message type named
// Processor.Name + "Msg" belongs to that processor.
func AnalyzeBound(unit decl.Unit, binding *Binding) (*Accepted, error) {
	proc, msg, err := pair(unit, binding)
	if err != nil {
		return nil, err
	}

	handler := proc.Method(decl.HandlerName)
	if handler == nil || !handlerShape(handler, msg.Name) {
		return nil, reject(ErrMissingHandler, proc.Name)
	}

	if len(msg.Variants) == 0 {
		return nil, reject(ErrEmptyMessageType, msg.Name)
	}

	for i := range msg.Variants {
		v := &msg.Variants[i]
		if len(v.Fields) == 0 || v.Field(decl.ResponseField) == nil {
			return nil, reject(ErrMissingResponseField, v.Name)
		}
	}

	return &Accepted{
		Processor: *proc,
		Message:   *msg,
		Handler:   decl.HandlerBinding{Processor: proc.Name, Method: decl.HandlerName},
	}, nil
}

// pair finds exactly one processor/message pairing, explicit or by suffix.
func pair(unit decl.Unit, binding *Binding) (*decl.ProcessorType, *decl.MessageType, error) {
	if binding != nil {
		proc := findProcessor(unit, binding.Processor)
		msg := findMessage(unit, binding.Message)
		if proc == nil || msg == nil {
			return nil, nil, reject(ErrAmbiguousOrMissingPair, binding.Processor)
		}
		return proc, msg, nil
	}

	type match struct {
		proc *decl.ProcessorType
		msg  *decl.MessageType
	}
	var found []match
	for i := range unit.Processors {
		p := &unit.Processors[i]
		want := p.Name + decl.MessageSuffix
		if m := findMessage(unit, want); m != nil {
			found = append(found, match{proc: p, msg: m})
		}
	}
	if len(found) != 1 {
		return nil, nil, reject(ErrAmbiguousOrMissingPair, "")
	}
	return found[0].proc, found[0].msg, nil
}

// handlerShape checks the handler takes the paired message type by exclusive
// reference and is declared asynchronous.
func handlerShape(m *decl.Method, msgName string) bool {
	if !m.Async {
		return false
	}
	for _, p := range m.Params {
		if p.Type == msgName && p.Exclusive {
			return true
		}
	}
	return false
}

func findProcessor(unit decl.Unit, name string) *decl.ProcessorType {
	for i := range unit.Processors {
		if unit.Processors[i].Name == name {
			return &unit.Processors[i]
		}
	}
	return nil
}

func findMessage(unit decl.Unit, name string) *decl.MessageType {
	for i := range unit.Messages {
		if unit.Messages[i].Name == name {
			return &unit.Messages[i]
		}
	}
	return nil
}
