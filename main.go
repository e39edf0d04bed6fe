package main

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/net/websocket"

	"github.com/hollyfield/stagecraft/decl"
	"github.com/hollyfield/stagecraft/server"
	"github.com/hollyfield/stagecraft/stage"
	"github.com/hollyfield/stagecraft/synth"
)

// calcUnit is a small calculator actor: MsgOne adds 100, MsgTwo multiplies
// by 10.
func calcUnit() decl.Unit {
	return decl.Unit{
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
}

func calcProcessor() stage.Processor {
	return stage.ProcessorFunc(func(_ context.Context, msg *stage.Message) {
		switch msg.Variant {
		case "MsgOne":
			v, _ := msg.Field("value").(int)
			msg.Reply(v + 100)
		case "MsgTwo":
			v, _ := msg.Field("value").(float64)
			msg.Reply(v * 10)
		}
	})
}

func main() {
	model, err := synth.Assemble(calcUnit())
	if err != nil {
		panic(err)
	}

	sys := stage.NewSystem("demo")
	id, handle, err := model.SpawnIn(sys, calcProcessor(), stage.Options{})
	if err != nil {
		panic(err)
	}

	fmt.Println("Actor started:")
	fmt.Println(" ", id, "ops:", handle.Ops())

	wsServer := server.New(handle)
	http.Handle("/subscribe", websocket.Handler(wsServer.HandleSubscribe()))

	panic(http.ListenAndServe(":3001", nil))
}
