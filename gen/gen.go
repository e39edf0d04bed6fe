// File: gen/gen.go

// Package gen renders an OutputModel as source text for a target language.
// Rendering is pure text production: deterministic ordering, no compilation,
// no reflection. The Go generator emits the same shapes the runtime enforces
// dynamically (message interface plus one struct per variant, a handle
// owning the send side, a worker loop on the receive side, and a wait /
// no-wait method pair per operation) so a build step can bake an actor into
// static code instead of spawning it through synth.Spawn.
package gen

import (
	"fmt"
	"strings"

	"github.com/hollyfield/stagecraft/synth"
)

// Generator renders one target language. Implementations must be
// deterministic: the same model renders to the same bytes.
type Generator interface {
	// Language names the target, e.g. "go".
	Language() string
	// FileExtension is the output extension without the dot.
	FileExtension() string
	// GenerateFile renders the complete output file for a model into the
	// named package (or module/namespace, per language).
	GenerateFile(m *synth.OutputModel, pkg string) string
}

// GoGenerator renders idiomatic Go. Variant structs implement a private
// marker interface standing in for the tagged union; the resp field becomes
// an unexported reply channel of the response type, so only the generated
// call wrappers can touch it. In Go the wrong-variant condition is
// unrepresentable: each wrapper takes its own variant struct, so the check
// the dynamic runtime performs at call time happens at compile time here.
type GoGenerator struct{}

func (GoGenerator) Language() string      { return "go" }
func (GoGenerator) FileExtension() string { return "go" }

// GenerateFile renders the full actor file for the model.
func (g GoGenerator) GenerateFile(m *synth.OutputModel, pkg string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "// Code generated by stagecraft; DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	b.WriteString("import (\n\t\"context\"\n\t\"errors\"\n\t\"sync\"\n)\n\n")

	b.WriteString("var (\n")
	b.WriteString("\tErrSendFailed    = errors.New(\"send failed\")\n")
	b.WriteString("\tErrMailboxClosed = errors.New(\"mailbox closed\")\n")
	b.WriteString(")\n\n")

	g.writeMessage(&b, m)
	g.writeHandle(&b, m)
	g.writeWorker(&b, m)
	g.writeOps(&b, m)

	return b.String()
}

// writeMessage emits the tagged message type: a marker interface plus one
// struct per variant with the resp field rewritten to a reply channel.
func (g GoGenerator) writeMessage(b *strings.Builder, m *synth.OutputModel) {
	marker := "is" + m.Message
	fmt.Fprintf(b, "// %s is the tagged message type consumed by the %s worker.\n", m.Message, m.ActorName)
	fmt.Fprintf(b, "type %s interface {\n\t%s()\n}\n\n", m.Message, marker)

	for _, v := range m.Variants {
		fmt.Fprintf(b, "// %s carries one %q request.\n", v.Name, v.Name)
		fmt.Fprintf(b, "type %s struct {\n", v.Name)
		for _, f := range v.DataFields {
			fmt.Fprintf(b, "\t%s %s\n", ExportName(f.Name), f.Type)
		}
		fmt.Fprintf(b, "\tresp chan %s\n", v.ResponseType)
		fmt.Fprintf(b, "}\n\n")
		fmt.Fprintf(b, "func (%s) %s() {}\n\n", v.Name, marker)
	}
}

func (g GoGenerator) writeHandle(b *strings.Builder, m *synth.OutputModel) {
	fmt.Fprintf(b, "const %sMailboxSize = 1024\n\n", lowerFirst(m.HandleName))
	fmt.Fprintf(b, "// %s is the cloneable handle to a running %s actor.\n", m.HandleName, m.ActorName)
	fmt.Fprintf(b, "type %s struct {\n\tmailbox  chan %s\n\tstop     chan struct{}\n\tstopOnce *sync.Once\n\tdone     <-chan struct{}\n}\n\n", m.HandleName, m.Message)

	fmt.Fprintf(b, "// New%s spawns the worker loop around w and returns the handle bound\n", m.HandleName)
	fmt.Fprintf(b, "// to the producer end of its mailbox.\n")
	fmt.Fprintf(b, "func New%s(w *%s) *%s {\n", m.HandleName, m.WorkerName, m.HandleName)
	fmt.Fprintf(b, "\tmailbox := make(chan %s, %sMailboxSize)\n", m.Message, lowerFirst(m.HandleName))
	fmt.Fprintf(b, "\tstop := make(chan struct{})\n")
	fmt.Fprintf(b, "\tdone := make(chan struct{})\n")
	fmt.Fprintf(b, "\tgo func() {\n\t\tdefer close(done)\n\t\tw.run(context.Background(), mailbox, stop)\n\t}()\n")
	fmt.Fprintf(b, "\treturn &%s{mailbox: mailbox, stop: stop, stopOnce: new(sync.Once), done: done}\n}\n\n", m.HandleName)

	fmt.Fprintf(b, "// Stop signals the worker to drain messages already queued and exit.\n")
	fmt.Fprintf(b, "// Idempotent; sends after the worker exits fail with ErrSendFailed.\n")
	fmt.Fprintf(b, "func (h *%s) Stop() {\n\th.stopOnce.Do(func() { close(h.stop) })\n\t<-h.done\n}\n\n", m.HandleName)

	fmt.Fprintf(b, "func (h *%s) send(msg %s) error {\n", m.HandleName, m.Message)
	fmt.Fprintf(b, "\tselect {\n\tcase <-h.done:\n\t\treturn ErrSendFailed\n\tcase h.mailbox <- msg:\n\t\treturn nil\n\t}\n}\n\n")
}

// writeWorker emits the dispatch loop: one message at a time, and after each
// handler invocation the reply channel is closed so an un-replied wait call
// errors out instead of hanging. A stop signal drains the backlog before the
// worker exits, the same way the dynamic runtime drains on last-close.
func (g GoGenerator) writeWorker(b *strings.Builder, m *synth.OutputModel) {
	fmt.Fprintf(b, "func (w *%s) run(ctx context.Context, mailbox <-chan %s, stop <-chan struct{}) {\n", m.WorkerName, m.Message)
	fmt.Fprintf(b, "\tfor {\n\t\tselect {\n\t\tcase <-stop:\n")
	fmt.Fprintf(b, "\t\t\tfor {\n\t\t\t\tselect {\n\t\t\t\tcase msg := <-mailbox:\n\t\t\t\t\tw.dispatch(ctx, msg)\n\t\t\t\tdefault:\n\t\t\t\t\treturn\n\t\t\t\t}\n\t\t\t}\n")
	fmt.Fprintf(b, "\t\tcase msg := <-mailbox:\n\t\t\tw.dispatch(ctx, msg)\n\t\t}\n\t}\n}\n\n")

	fmt.Fprintf(b, "func (w *%s) dispatch(ctx context.Context, msg %s) {\n", m.WorkerName, m.Message)
	fmt.Fprintf(b, "\tw.process(ctx, msg)\n")
	fmt.Fprintf(b, "\tswitch v := msg.(type) {\n")
	for _, v := range m.Variants {
		fmt.Fprintf(b, "\tcase %s:\n\t\tif v.resp != nil {\n\t\t\tclose(v.resp)\n\t\t}\n", v.Name)
	}
	fmt.Fprintf(b, "\t}\n}\n\n")
}

func (g GoGenerator) writeOps(b *strings.Builder, m *synth.OutputModel) {
	for _, op := range m.Ops {
		name := ExportName(op.Name)
		if op.Wait {
			fmt.Fprintf(b, "// %s sends a %s message and waits for the reply (operation %q).\n", name, op.Variant, op.Name)
			fmt.Fprintf(b, "func (h *%s) %s(msg %s) (%s, error) {\n", m.HandleName, name, op.Variant, op.ResponseType)
			fmt.Fprintf(b, "\tout := make(chan %s, 1)\n", op.ResponseType)
			fmt.Fprintf(b, "\tmsg.resp = out\n")
			fmt.Fprintf(b, "\tif err := h.send(msg); err != nil {\n\t\treturn *new(%s), err\n\t}\n", op.ResponseType)
			fmt.Fprintf(b, "\tv, ok := <-out\n")
			fmt.Fprintf(b, "\tif !ok {\n\t\treturn *new(%s), ErrMailboxClosed\n\t}\n", op.ResponseType)
			fmt.Fprintf(b, "\treturn v, nil\n}\n\n")
		} else {
			fmt.Fprintf(b, "// %s sends a %s message without waiting for a reply (operation %q).\n", name, op.Variant, op.Name)
			fmt.Fprintf(b, "func (h *%s) %s(msg %s) error {\n", m.HandleName, name, op.Variant)
			fmt.Fprintf(b, "\tmsg.resp = nil\n")
			fmt.Fprintf(b, "\treturn h.send(msg)\n}\n\n")
		}
	}
}

// ExportName turns a snake_case operation or field name into an exported Go
// identifier: msg_one_no_wait -> MsgOneNoWait.
func ExportName(snake string) string {
	parts := strings.Split(snake, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
