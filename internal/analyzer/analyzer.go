// Package analyzer resolves names, types, overloads, operator aliases, and
// control flow across the scope tree internal/hoist builds (spec.md §2, the
// largest single component of this module at roughly 30% of its budget).
package analyzer

import (
	"github.com/funvibe/angelscript-front/internal/diagnostics"
	"github.com/funvibe/angelscript-front/internal/highlight"
	"github.com/funvibe/angelscript-front/internal/hoist"
	"github.com/funvibe/angelscript-front/internal/symbols"
)

// Analyzer walks every queued body from a hoist.Result, emitting diagnostics
// in AST-walk order and recording resolved symbols on each scope's
// Referenced list as it goes. Highlights starts empty and the walk adds no
// highlight classifications to it.
type Analyzer struct {
	Diagnostics *diagnostics.Sink
	Highlights  *highlight.List
}

// New builds an Analyzer with empty sinks.
func New() *Analyzer {
	return &Analyzer{Diagnostics: diagnostics.NewSink(), Highlights: highlight.NewList()}
}

// Analyze walks every Script-level variable initializer and every
// function/method/accessor body queued by hoist.Run (spec.md §4.4: "For
// each Script or StatBlock, the analyzer walks declarations in source
// order").
func (a *Analyzer) Analyze(result *hoist.Result) {
	for _, gv := range result.GlobalVarInits {
		a.analyzeGlobalVarInit(gv)
	}
	for _, task := range result.AnalyzeQueue {
		a.analyzeTask(task)
	}
}

// analyzeGlobalVarInit checks one Script-level declarator's initializer and,
// if its declared type was 'auto', back-patches the symbol hoist.Run already
// declared with the resolved initializer type — the same auto-resolution
// rule applied to function-body locals in analyzeVarInit.
func (a *Analyzer) analyzeGlobalVarInit(gv hoist.GlobalVarInit) {
	resolved := a.analyzeVarInit(gv.Decl, gv.Type, gv.Scope)
	if gv.Type.Tag != symbols.Auto {
		return
	}
	if sym, ok := gv.Scope.FindLocal(gv.Decl.Name.Text); ok {
		if v, ok := sym.(*symbols.Variable); ok {
			v.Type = resolved
		}
	}
}

func (a *Analyzer) analyzeTask(task hoist.Task) {
	ctrl := a.analyzeStatBlock(task.Body, task.ReturnType, task.Scope)
	if task.ReturnType.Tag != symbols.Void && !ctrl.alwaysReturns {
		a.Diagnostics.Addf(diagnostics.Type, "A010", task.Body.End,
			"Not all code paths return a value in '"+task.Label+"'.")
	}
}
