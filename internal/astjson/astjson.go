// Package astjson decodes the JSON wire form of a Compiscript parse tree
// into internal/ast nodes. internal/parser and internal/lexer are external
// collaborators (spec.md §1, §6) this repo does not reimplement, so
// cmd/compiscript needs some concrete file format to stand in for "a parse
// tree produced by a grammar-driven parser" until a real front end exists.
// JSON is the natural stdlib fit for that: it's pure data interchange with
// no domain semantics of its own, so there is nothing here for any
// ecosystem parsing/serialization library in the pack to add over
// encoding/json — ast.Node is tagged with a "kind" discriminator per
// funxy/internal/modules' own module-manifest JSON loading style.
package astjson

import (
	"encoding/json"
	"fmt"

	"github.com/dsolis/compiscript/internal/ast"
	"github.com/dsolis/compiscript/internal/token"
)

// DecodeProgram parses the JSON wire form of a full parse tree.
func DecodeProgram(data []byte) (*ast.Program, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("astjson: decode program: %w", err)
	}
	if env.Kind != "Program" {
		return nil, fmt.Errorf("astjson: root kind must be \"Program\", got %q", env.Kind)
	}
	stmts, err := decodeStatements(env.Statements)
	if err != nil {
		return nil, err
	}
	return &ast.Program{Tok: env.token(), Statements: stmts}, nil
}

// envelope is the single JSON shape every node decodes through: a "kind"
// discriminator plus every field any node kind might use, left blank
// (omitted) otherwise.
type envelope struct {
	Kind string `json:"kind"`
	Pos  *pos   `json:"pos,omitempty"`
	Text string `json:"text,omitempty"`

	// declarations / statements
	Name       string            `json:"name,omitempty"`
	Type       *envelope         `json:"type,omitempty"`
	Init       *envelope         `json:"init,omitempty"`
	Params     []envelope        `json:"params,omitempty"`
	ReturnType *envelope         `json:"returnType,omitempty"`
	Body       *envelope         `json:"body,omitempty"`
	Parent     string            `json:"parent,omitempty"`
	Fields     []envelope        `json:"fields,omitempty"`
	Methods    []envelope        `json:"methods,omitempty"`
	Statements []envelope        `json:"statements,omitempty"`
	Cond       *envelope         `json:"cond,omitempty"`
	Then       *envelope         `json:"then,omitempty"`
	Else       *envelope         `json:"else,omitempty"`
	Step       *envelope         `json:"step,omitempty"`
	VarName    string            `json:"varName,omitempty"`
	Iterable   *envelope         `json:"iterable,omitempty"`
	Value      *envelope         `json:"value,omitempty"`
	IsDefault  bool              `json:"isDefault,omitempty"`
	Cases      []envelope        `json:"cases,omitempty"`
	Expr       *envelope         `json:"expr,omitempty"`

	// type refs / params
	ArrayDepth int `json:"arrayDepth,omitempty"`

	// expressions
	LiteralKind string     `json:"literalKind,omitempty"`
	Op          string     `json:"op,omitempty"`
	Left        *envelope  `json:"left,omitempty"`
	Right       *envelope  `json:"right,omitempty"`
	Operand     *envelope  `json:"operand,omitempty"`
	Callee      *envelope  `json:"callee,omitempty"`
	Args        []envelope `json:"args,omitempty"`
	Object      *envelope  `json:"object,omitempty"`
	Field       string     `json:"field,omitempty"`
	Array       *envelope  `json:"array,omitempty"`
	Idx         *envelope  `json:"idx,omitempty"`
	ClassName   string     `json:"className,omitempty"`
	Elements    []envelope `json:"elements,omitempty"`
	Target      *envelope  `json:"target,omitempty"`

	// Literal.Value: exactly one of these set, per LiteralKind
	IntValue    *int64   `json:"intValue,omitempty"`
	FloatValue  *float64 `json:"floatValue,omitempty"`
	StringValue *string  `json:"stringValue,omitempty"`
	BoolValue   *bool    `json:"boolValue,omitempty"`
}

type pos struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (e *envelope) token() token.Token {
	t := token.Token{Lexeme: e.Text}
	if e.Pos != nil {
		t.Pos = token.Position{Line: e.Pos.Line, Column: e.Pos.Column}
	}
	return t
}

func decodeStatements(envs []envelope) ([]ast.Statement, error) {
	out := make([]ast.Statement, 0, len(envs))
	for i := range envs {
		s, err := decodeStatement(&envs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeExpressions(envs []envelope) ([]ast.Expression, error) {
	out := make([]ast.Expression, 0, len(envs))
	for i := range envs {
		e, err := decodeExpression(&envs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func decodeTypeRef(e *envelope) (*ast.TypeRef, error) {
	if e == nil {
		return nil, nil
	}
	return &ast.TypeRef{Tok: e.token(), Name: e.Name, ArrayDepth: e.ArrayDepth}, nil
}

func decodeParams(envs []envelope) ([]*ast.Param, error) {
	out := make([]*ast.Param, 0, len(envs))
	for i := range envs {
		e := &envs[i]
		typ, err := decodeTypeRef(e.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.Param{Tok: e.token(), Name: e.Name, Type: typ})
	}
	return out, nil
}

func decodeBlock(e *envelope) (*ast.Block, error) {
	if e == nil {
		return nil, nil
	}
	stmts, err := decodeStatements(e.Statements)
	if err != nil {
		return nil, err
	}
	return &ast.Block{Tok: e.token(), Statements: stmts}, nil
}

func decodeFields(envs []envelope) ([]*ast.FieldDecl, error) {
	out := make([]*ast.FieldDecl, 0, len(envs))
	for i := range envs {
		e := &envs[i]
		typ, err := decodeTypeRef(e.Type)
		if err != nil {
			return nil, err
		}
		var init ast.Expression
		if e.Init != nil {
			init, err = decodeExpression(e.Init)
			if err != nil {
				return nil, err
			}
		}
		out = append(out, &ast.FieldDecl{Tok: e.token(), Name: e.Name, Type: typ, Init: init})
	}
	return out, nil
}

func decodeMethods(envs []envelope) ([]*ast.MethodDecl, error) {
	out := make([]*ast.MethodDecl, 0, len(envs))
	for i := range envs {
		e := &envs[i]
		params, err := decodeParams(e.Params)
		if err != nil {
			return nil, err
		}
		retType, err := decodeTypeRef(e.ReturnType)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(e.Body)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.MethodDecl{Tok: e.token(), Name: e.Name, Params: params, ReturnType: retType, Body: body})
	}
	return out, nil
}

func decodeCases(envs []envelope) ([]*ast.Case, error) {
	out := make([]*ast.Case, 0, len(envs))
	for i := range envs {
		e := &envs[i]
		var value ast.Expression
		var err error
		if e.Value != nil {
			value, err = decodeExpression(e.Value)
			if err != nil {
				return nil, err
			}
		}
		stmts, err := decodeStatements(e.Statements)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.Case{Tok: e.token(), Value: value, IsDefault: e.IsDefault, Statements: stmts})
	}
	return out, nil
}

func decodeStatement(e *envelope) (ast.Statement, error) {
	switch e.Kind {
	case "VarDecl":
		typ, err := decodeTypeRef(e.Type)
		if err != nil {
			return nil, err
		}
		var init ast.Expression
		if e.Init != nil {
			init, err = decodeExpression(e.Init)
			if err != nil {
				return nil, err
			}
		}
		return &ast.VarDecl{Tok: e.token(), Name: e.Name, Type: typ, Init: init}, nil
	case "ConstDecl":
		typ, err := decodeTypeRef(e.Type)
		if err != nil {
			return nil, err
		}
		init, err := decodeExpression(e.Init)
		if err != nil {
			return nil, err
		}
		return &ast.ConstDecl{Tok: e.token(), Name: e.Name, Type: typ, Init: init}, nil
	case "FuncDecl":
		params, err := decodeParams(e.Params)
		if err != nil {
			return nil, err
		}
		retType, err := decodeTypeRef(e.ReturnType)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(e.Body)
		if err != nil {
			return nil, err
		}
		return &ast.FuncDecl{Tok: e.token(), Name: e.Name, Params: params, ReturnType: retType, Body: body}, nil
	case "ClassDecl":
		fields, err := decodeFields(e.Fields)
		if err != nil {
			return nil, err
		}
		methods, err := decodeMethods(e.Methods)
		if err != nil {
			return nil, err
		}
		return &ast.ClassDecl{Tok: e.token(), Name: e.Name, Parent: e.Parent, Fields: fields, Methods: methods}, nil
	case "Block":
		return decodeBlock(e)
	case "If":
		cond, err := decodeExpression(e.Cond)
		if err != nil {
			return nil, err
		}
		then, err := decodeBlock(e.Then)
		if err != nil {
			return nil, err
		}
		var elseStmt ast.Statement
		if e.Else != nil {
			elseStmt, err = decodeStatement(e.Else)
			if err != nil {
				return nil, err
			}
		}
		return &ast.If{Tok: e.token(), Cond: cond, Then: then, Else: elseStmt}, nil
	case "While":
		cond, err := decodeExpression(e.Cond)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(e.Body)
		if err != nil {
			return nil, err
		}
		return &ast.While{Tok: e.token(), Cond: cond, Body: body}, nil
	case "DoWhile":
		body, err := decodeBlock(e.Body)
		if err != nil {
			return nil, err
		}
		cond, err := decodeExpression(e.Cond)
		if err != nil {
			return nil, err
		}
		return &ast.DoWhile{Tok: e.token(), Body: body, Cond: cond}, nil
	case "For":
		var initStmt ast.Statement
		var err error
		if e.Init != nil {
			initStmt, err = decodeStatement(e.Init)
			if err != nil {
				return nil, err
			}
		}
		var cond ast.Expression
		if e.Cond != nil {
			cond, err = decodeExpression(e.Cond)
			if err != nil {
				return nil, err
			}
		}
		var step ast.Expression
		if e.Step != nil {
			step, err = decodeExpression(e.Step)
			if err != nil {
				return nil, err
			}
		}
		body, err := decodeBlock(e.Body)
		if err != nil {
			return nil, err
		}
		return &ast.For{Tok: e.token(), Init: initStmt, Cond: cond, Step: step, Body: body}, nil
	case "Foreach":
		iterable, err := decodeExpression(e.Iterable)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(e.Body)
		if err != nil {
			return nil, err
		}
		return &ast.Foreach{Tok: e.token(), VarName: e.VarName, Iterable: iterable, Body: body}, nil
	case "Switch":
		value, err := decodeExpression(e.Value)
		if err != nil {
			return nil, err
		}
		cases, err := decodeCases(e.Cases)
		if err != nil {
			return nil, err
		}
		return &ast.Switch{Tok: e.token(), Value: value, Cases: cases}, nil
	case "Break":
		return &ast.Break{Tok: e.token()}, nil
	case "Continue":
		return &ast.Continue{Tok: e.token()}, nil
	case "Return":
		var value ast.Expression
		var err error
		if e.Value != nil {
			value, err = decodeExpression(e.Value)
			if err != nil {
				return nil, err
			}
		}
		return &ast.Return{Tok: e.token(), Value: value}, nil
	case "ExprStmt":
		expr, err := decodeExpression(e.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Tok: e.token(), Expr: expr}, nil
	case "Print":
		value, err := decodeExpression(e.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Print{Tok: e.token(), Value: value}, nil
	default:
		return nil, fmt.Errorf("astjson: unknown statement kind %q", e.Kind)
	}
}

func decodeExpression(e *envelope) (ast.Expression, error) {
	switch e.Kind {
	case "Literal":
		kind, value, err := decodeLiteral(e)
		if err != nil {
			return nil, err
		}
		return &ast.Literal{Tok: e.token(), Kind: kind, Value: value}, nil
	case "Identifier":
		return &ast.Identifier{Tok: e.token(), Name: e.Name}, nil
	case "Binary":
		left, err := decodeExpression(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(e.Right)
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Tok: e.token(), Op: ast.BinaryOp(e.Op), Left: left, Right: right}, nil
	case "Unary":
		operand, err := decodeExpression(e.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Tok: e.token(), Op: ast.UnaryOp(e.Op), Operand: operand}, nil
	case "Call":
		callee, err := decodeExpression(e.Callee)
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(e.Args)
		if err != nil {
			return nil, err
		}
		return &ast.Call{Tok: e.token(), Callee: callee, Args: args}, nil
	case "Member":
		obj, err := decodeExpression(e.Object)
		if err != nil {
			return nil, err
		}
		return &ast.Member{Tok: e.token(), Object: obj, Field: e.Field}, nil
	case "Index":
		arr, err := decodeExpression(e.Array)
		if err != nil {
			return nil, err
		}
		idx, err := decodeExpression(e.Idx)
		if err != nil {
			return nil, err
		}
		return &ast.Index{Tok: e.token(), Array: arr, Idx: idx}, nil
	case "This":
		return &ast.This{Tok: e.token()}, nil
	case "New":
		args, err := decodeExpressions(e.Args)
		if err != nil {
			return nil, err
		}
		return &ast.New{Tok: e.token(), ClassName: e.ClassName, Args: args}, nil
	case "ArrayLit":
		elems, err := decodeExpressions(e.Elements)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayLit{Tok: e.token(), Elements: elems}, nil
	case "Assign":
		target, err := decodeExpression(e.Target)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpression(e.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Tok: e.token(), Target: target, Value: value}, nil
	case "Ternary":
		cond, err := decodeExpression(e.Cond)
		if err != nil {
			return nil, err
		}
		then, err := decodeExpression(e.Then)
		if err != nil {
			return nil, err
		}
		elseExpr, err := decodeExpression(e.Else)
		if err != nil {
			return nil, err
		}
		return &ast.Ternary{Tok: e.token(), Cond: cond, Then: then, Else: elseExpr}, nil
	default:
		return nil, fmt.Errorf("astjson: unknown expression kind %q", e.Kind)
	}
}

func decodeLiteral(e *envelope) (ast.LiteralKind, interface{}, error) {
	switch e.LiteralKind {
	case "int":
		if e.IntValue == nil {
			return 0, nil, fmt.Errorf("astjson: Literal kind \"int\" missing intValue")
		}
		return ast.IntLit, *e.IntValue, nil
	case "float":
		if e.FloatValue == nil {
			return 0, nil, fmt.Errorf("astjson: Literal kind \"float\" missing floatValue")
		}
		return ast.FloatLit, *e.FloatValue, nil
	case "string":
		if e.StringValue == nil {
			return 0, nil, fmt.Errorf("astjson: Literal kind \"string\" missing stringValue")
		}
		return ast.StringLit, *e.StringValue, nil
	case "bool":
		if e.BoolValue == nil {
			return 0, nil, fmt.Errorf("astjson: Literal kind \"bool\" missing boolValue")
		}
		return ast.BoolLit, *e.BoolValue, nil
	case "null":
		return ast.NullLit, nil, nil
	default:
		return 0, nil, fmt.Errorf("astjson: unknown literalKind %q", e.LiteralKind)
	}
}
