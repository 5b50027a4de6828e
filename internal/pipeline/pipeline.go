// Package pipeline drives a Source through the Lexer -> Parser -> Binder
// -> Checker stages, collecting diagnostics from each. Standard()
// returns a value implementing source.Pipeline so Project.CheckAll can
// run it without importing any of the four stage packages itself.
package pipeline

import (
	"github.com/ledalang/leda/internal/ast"
	"github.com/ledalang/leda/internal/binder"
	"github.com/ledalang/leda/internal/checker"
	"github.com/ledalang/leda/internal/diagnostics"
	"github.com/ledalang/leda/internal/parser"
	"github.com/ledalang/leda/internal/source"
)

// Processor is one stage of the pipeline: it consumes and mutates a
// Context, returning the diagnostics it raised.
type Processor interface {
	Process(ctx *Context) []diagnostics.Diagnostic
}

// Context threads a Source and its parse tree through the pipeline's
// stages; later stages read the tree the parser stage left behind.
type Context struct {
	Source *source.Source
	Tree   *ast.Block
}

// Pipeline is an ordered sequence of Processors, run over one Source.
// It implements source.Pipeline, so a *Pipeline can be handed straight
// to source.NewProject.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline running processors in order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order against src, continuing even after
// an earlier stage reports diagnostics (later stages may still find
// independent issues, and an LSP-style caller wants every diagnostic
// from one pass, not just the first stage's).
func (p *Pipeline) Run(src *source.Source) []diagnostics.Diagnostic {
	ctx := &Context{Source: src}
	var diags []diagnostics.Diagnostic
	for _, proc := range p.processors {
		diags = append(diags, proc.Process(ctx)...)
	}
	return diags
}

// Standard builds the Lexer->Parser->Binder->Checker pipeline used by
// Project.CheckAll.
func Standard() *Pipeline {
	return New(parseStage{}, bindStage{}, checkStage{})
}

// parseStage runs the lexer (internally, via the parser's token stream)
// and parser, leaving the resulting tree on ctx for later stages.
type parseStage struct{}

func (parseStage) Process(ctx *Context) []diagnostics.Diagnostic {
	block, diags := parser.Parse(ctx.Source.Code)
	ctx.Tree = block
	ctx.Source.Root = block
	return diags
}

type bindStage struct{}

func (bindStage) Process(ctx *Context) []diagnostics.Diagnostic {
	if ctx.Tree == nil {
		return nil
	}
	return binder.Bind(ctx.Source, ctx.Tree)
}

type checkStage struct{}

func (checkStage) Process(ctx *Context) []diagnostics.Diagnostic {
	if ctx.Tree == nil {
		return nil
	}
	return checker.Check(ctx.Source, ctx.Tree)
}
