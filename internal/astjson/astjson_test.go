package astjson_test

import (
	"testing"

	"github.com/dsolis/compiscript/internal/ast"
	"github.com/dsolis/compiscript/internal/astjson"
)

func TestDecodeProgram_RootMustBeProgram(t *testing.T) {
	_, err := astjson.DecodeProgram([]byte(`{"kind":"VarDecl"}`))
	if err == nil {
		t.Fatal("expected an error for a non-Program root")
	}
}

func TestDecodeProgram_VarDeclWithTypeAndInit(t *testing.T) {
	program, err := astjson.DecodeProgram([]byte(`{
		"kind":"Program",
		"statements":[
			{"kind":"VarDecl","name":"x","type":{"name":"integer"},
			 "init":{"kind":"Literal","literalKind":"int","intValue":10}}
		]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	decl, ok := program.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", program.Statements[0])
	}
	if decl.Name != "x" || decl.Type.Name != "integer" {
		t.Errorf("unexpected VarDecl: %+v", decl)
	}
	lit, ok := decl.Init.(*ast.Literal)
	if !ok || lit.Kind != ast.IntLit || lit.Value.(int64) != 10 {
		t.Errorf("unexpected init literal: %+v", decl.Init)
	}
}

func TestDecodeProgram_ArrayDepthOnTypeRef(t *testing.T) {
	program, err := astjson.DecodeProgram([]byte(`{
		"kind":"Program",
		"statements":[
			{"kind":"VarDecl","name":"a","type":{"name":"integer","arrayDepth":1},
			 "init":{"kind":"ArrayLit","elements":[]}}
		]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decl := program.Statements[0].(*ast.VarDecl)
	if decl.Type.ArrayDepth != 1 {
		t.Errorf("expected arrayDepth 1, got %d", decl.Type.ArrayDepth)
	}
}

func TestDecodeProgram_ClassDeclWithFieldsAndMethods(t *testing.T) {
	program, err := astjson.DecodeProgram([]byte(`{
		"kind":"Program",
		"statements":[
			{"kind":"ClassDecl","name":"Counter","parent":"",
			 "fields":[{"name":"v","type":{"name":"integer"}}],
			 "methods":[{"name":"inc","params":[],"returnType":{"name":"void"},
			   "body":{"kind":"Block","statements":[]}}]}
		]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cls := program.Statements[0].(*ast.ClassDecl)
	if cls.Name != "Counter" || len(cls.Fields) != 1 || cls.Fields[0].Name != "v" {
		t.Errorf("unexpected class fields: %+v", cls.Fields)
	}
	if len(cls.Methods) != 1 || cls.Methods[0].Name != "inc" {
		t.Errorf("unexpected class methods: %+v", cls.Methods)
	}
}

func TestDecodeProgram_IfWithElseIf(t *testing.T) {
	program, err := astjson.DecodeProgram([]byte(`{
		"kind":"Program",
		"statements":[
			{"kind":"If","cond":{"kind":"Literal","literalKind":"bool","boolValue":true},
			 "then":{"kind":"Block","statements":[]},
			 "else":{"kind":"If","cond":{"kind":"Literal","literalKind":"bool","boolValue":false},
			   "then":{"kind":"Block","statements":[]}}}
		]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outer := program.Statements[0].(*ast.If)
	inner, ok := outer.Else.(*ast.If)
	if !ok {
		t.Fatalf("expected else-if to decode as a nested *ast.If, got %T", outer.Else)
	}
	if inner.Then == nil {
		t.Error("expected the nested if to have a then-block")
	}
}

func TestDecodeProgram_SwitchWithDefaultCase(t *testing.T) {
	program, err := astjson.DecodeProgram([]byte(`{
		"kind":"Program",
		"statements":[
			{"kind":"Switch","value":{"kind":"Identifier","name":"x"},
			 "cases":[
			   {"value":{"kind":"Literal","literalKind":"int","intValue":1},"statements":[]},
			   {"isDefault":true,"statements":[]}
			 ]}
		]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sw := program.Statements[0].(*ast.Switch)
	if len(sw.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(sw.Cases))
	}
	if sw.Cases[0].IsDefault {
		t.Error("expected the first case not to be the default")
	}
	if !sw.Cases[1].IsDefault {
		t.Error("expected the second case to be the default")
	}
}

func TestDecodeProgram_BinaryAndUnaryOperators(t *testing.T) {
	program, err := astjson.DecodeProgram([]byte(`{
		"kind":"Program",
		"statements":[
			{"kind":"ExprStmt","expr":{"kind":"Binary","op":"+",
			  "left":{"kind":"Unary","op":"-","operand":{"kind":"Literal","literalKind":"int","intValue":1}},
			  "right":{"kind":"Literal","literalKind":"int","intValue":2}}}
		]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stmt := program.Statements[0].(*ast.ExprStmt)
	bin, ok := stmt.Expr.(*ast.Binary)
	if !ok || bin.Op != "+" {
		t.Fatalf("unexpected expr: %+v", stmt.Expr)
	}
	un, ok := bin.Left.(*ast.Unary)
	if !ok || un.Op != "-" {
		t.Errorf("unexpected left operand: %+v", bin.Left)
	}
}

func TestDecodeProgram_MemberAndIndexAndNew(t *testing.T) {
	program, err := astjson.DecodeProgram([]byte(`{
		"kind":"Program",
		"statements":[
			{"kind":"ExprStmt","expr":{"kind":"Member",
			  "object":{"kind":"Index","array":{"kind":"Identifier","name":"a"},
			            "idx":{"kind":"Literal","literalKind":"int","intValue":0}},
			  "field":"v"}},
			{"kind":"ExprStmt","expr":{"kind":"New","className":"Counter",
			  "args":[{"kind":"Literal","literalKind":"int","intValue":1}]}}
		]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	member := program.Statements[0].(*ast.ExprStmt).Expr.(*ast.Member)
	if member.Field != "v" {
		t.Errorf("unexpected member field: %q", member.Field)
	}
	idx, ok := member.Object.(*ast.Index)
	if !ok {
		t.Fatalf("expected *ast.Index, got %T", member.Object)
	}
	if idx.Idx.(*ast.Literal).Value.(int64) != 0 {
		t.Errorf("unexpected index: %+v", idx.Idx)
	}

	newExpr := program.Statements[1].(*ast.ExprStmt).Expr.(*ast.New)
	if newExpr.ClassName != "Counter" || len(newExpr.Args) != 1 {
		t.Errorf("unexpected New: %+v", newExpr)
	}
}

func TestDecodeProgram_TernaryAndAssign(t *testing.T) {
	program, err := astjson.DecodeProgram([]byte(`{
		"kind":"Program",
		"statements":[
			{"kind":"ExprStmt","expr":{"kind":"Assign",
			  "target":{"kind":"Identifier","name":"x"},
			  "value":{"kind":"Ternary",
			    "cond":{"kind":"Literal","literalKind":"bool","boolValue":true},
			    "then":{"kind":"Literal","literalKind":"int","intValue":1},
			    "else":{"kind":"Literal","literalKind":"int","intValue":2}}}}
		]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assign := program.Statements[0].(*ast.ExprStmt).Expr.(*ast.Assign)
	if assign.Target.(*ast.Identifier).Name != "x" {
		t.Errorf("unexpected assign target: %+v", assign.Target)
	}
	if _, ok := assign.Value.(*ast.Ternary); !ok {
		t.Errorf("expected a ternary value, got %T", assign.Value)
	}
}

func TestDecodeProgram_UnknownStatementKindIsAnError(t *testing.T) {
	_, err := astjson.DecodeProgram([]byte(`{"kind":"Program","statements":[{"kind":"Bogus"}]}`))
	if err == nil {
		t.Fatal("expected an error for an unknown statement kind")
	}
}

func TestDecodeProgram_UnknownExpressionKindIsAnError(t *testing.T) {
	_, err := astjson.DecodeProgram([]byte(`{"kind":"Program","statements":[
		{"kind":"ExprStmt","expr":{"kind":"Bogus"}}
	]}`))
	if err == nil {
		t.Fatal("expected an error for an unknown expression kind")
	}
}

func TestDecodeProgram_LiteralMissingValueFieldIsAnError(t *testing.T) {
	_, err := astjson.DecodeProgram([]byte(`{"kind":"Program","statements":[
		{"kind":"ExprStmt","expr":{"kind":"Literal","literalKind":"int"}}
	]}`))
	if err == nil {
		t.Fatal("expected an error for a Literal missing its intValue")
	}
}

func TestDecodeProgram_NullLiteralNeedsNoValueField(t *testing.T) {
	program, err := astjson.DecodeProgram([]byte(`{"kind":"Program","statements":[
		{"kind":"ExprStmt","expr":{"kind":"Literal","literalKind":"null"}}
	]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lit := program.Statements[0].(*ast.ExprStmt).Expr.(*ast.Literal)
	if lit.Kind != ast.NullLit {
		t.Errorf("expected NullLit, got %v", lit.Kind)
	}
}

func TestDecodeProgram_ForeachFields(t *testing.T) {
	program, err := astjson.DecodeProgram([]byte(`{"kind":"Program","statements":[
		{"kind":"Foreach","varName":"x","iterable":{"kind":"Identifier","name":"a"},
		 "body":{"kind":"Block","statements":[]}}
	]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fe := program.Statements[0].(*ast.Foreach)
	if fe.VarName != "x" {
		t.Errorf("unexpected VarName: %q", fe.VarName)
	}
	if fe.Iterable.(*ast.Identifier).Name != "a" {
		t.Errorf("unexpected iterable: %+v", fe.Iterable)
	}
}
