// File: gen/gen_test.go
package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollyfield/stagecraft/decl"
	"github.com/hollyfield/stagecraft/synth"
)

func calcModel(t *testing.T) *synth.OutputModel {
	t.Helper()
	unit := decl.Unit{
		Processors: []decl.ProcessorType{{
			Name: "Calc",
			Methods: []decl.Method{{
				Name:   "process",
				Async:  true,
				Params: []decl.Param{{Name: "msg", Type: "CalcMsg", Exclusive: true}},
			}},
		}},
		Messages: []decl.MessageType{{
			Name: "CalcMsg",
			Variants: []decl.Variant{
				{Name: "MsgOne", Fields: []decl.Field{{Name: "value", Type: "int"}, {Name: "resp", Type: "int"}}},
				{Name: "MsgTwo", Fields: []decl.Field{{Name: "value", Type: "float64"}, {Name: "resp", Type: "float64"}}},
			},
		}},
	}
	m, err := synth.Assemble(unit)
	require.NoError(t, err)
	return m
}

func TestGoGenerator_File(t *testing.T) {
	src := GoGenerator{}.GenerateFile(calcModel(t), "calc")

	assert.Contains(t, src, "// Code generated by stagecraft; DO NOT EDIT.")
	assert.Contains(t, src, "package calc\n")

	// Tagged message type: marker interface plus one struct per variant,
	// with resp rewritten to a reply channel of the unwrapped type.
	assert.Contains(t, src, "type CalcMsg interface {\n\tisCalcMsg()\n}")
	assert.Contains(t, src, "type MsgOne struct {\n\tValue int\n\tresp chan int\n}")
	assert.Contains(t, src, "type MsgTwo struct {\n\tValue float64\n\tresp chan float64\n}")
	assert.Contains(t, src, "func (MsgOne) isCalcMsg() {}")

	// Handle, constructor and worker loop.
	assert.Contains(t, src, "type ActorCalc struct {")
	assert.Contains(t, src, "func NewActorCalc(w *Calc) *ActorCalc {")
	assert.Contains(t, src, "func (w *Calc) run(ctx context.Context, mailbox <-chan CalcMsg, stop <-chan struct{}) {")
	assert.Contains(t, src, "func (w *Calc) dispatch(ctx context.Context, msg CalcMsg) {")
	assert.Contains(t, src, "w.process(ctx, msg)")

	// Stopping drains the backlog before the worker exits, mirroring the
	// runtime's drain-on-last-close.
	assert.Contains(t, src, "// Stop signals the worker to drain messages already queued and exit.")
	assert.Contains(t, src, "case <-stop:\n\t\t\tfor {\n\t\t\t\tselect {\n\t\t\t\tcase msg := <-mailbox:\n\t\t\t\t\tw.dispatch(ctx, msg)\n\t\t\t\tdefault:\n\t\t\t\t\treturn\n\t\t\t\t}\n\t\t\t}")

	// One wait/no-wait pair per variant, exported from the derived op names.
	assert.Contains(t, src, "func (h *ActorCalc) MsgOne(msg MsgOne) (int, error) {")
	assert.Contains(t, src, "func (h *ActorCalc) MsgOneNoWait(msg MsgOne) error {")
	assert.Contains(t, src, "func (h *ActorCalc) MsgTwo(msg MsgTwo) (float64, error) {")
	assert.Contains(t, src, "func (h *ActorCalc) MsgTwoNoWait(msg MsgTwo) error {")

	// Failure surface mirrors the runtime's.
	assert.Contains(t, src, `ErrSendFailed    = errors.New("send failed")`)
	assert.Contains(t, src, `ErrMailboxClosed = errors.New("mailbox closed")`)
}

func TestGoGenerator_Deterministic(t *testing.T) {
	m := calcModel(t)
	g := GoGenerator{}
	assert.Equal(t, g.GenerateFile(m, "calc"), g.GenerateFile(m, "calc"))
}

func TestGoGenerator_Metadata(t *testing.T) {
	g := GoGenerator{}
	assert.Equal(t, "go", g.Language())
	assert.Equal(t, "go", g.FileExtension())
}

func TestExportName(t *testing.T) {
	cases := map[string]string{
		"msg_one":         "MsgOne",
		"msg_one_no_wait": "MsgOneNoWait",
		"a":               "A",
		"v2_update":       "V2Update",
	}
	for in, want := range cases {
		assert.Equal(t, want, ExportName(in), "ExportName(%q)", in)
	}
}
