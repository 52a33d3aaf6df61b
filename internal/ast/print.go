package ast

import (
	"encoding/json"
	"fmt"
)

// PrintProgram produces a deterministic JSON representation of a Program.
func PrintProgram(prog *Program) string {
	if prog == nil {
		return "null"
	}
	data, err := json.MarshalIndent(simplifyProgram(prog), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// Print produces a deterministic JSON representation of an AST node.
// Used for golden snapshot testing; omits position info for reproducibility.
func Print(node Node) string {
	if node == nil {
		return "null"
	}
	data, err := json.MarshalIndent(simplify(node), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// Compact returns a compact single-line JSON representation.
func Compact(node Node) string {
	data, err := json.Marshal(simplify(node))
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

func simplifyProgram(prog *Program) interface{} {
	m := map[string]interface{}{"kind": "Program"}
	if len(prog.Statements) > 0 {
		m["statements"] = simplifyStmtSlice(prog.Statements)
	}
	return m
}

func simplify(node interface{}) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		return simplifyProgram(n)

	// Expressions
	case *Literal:
		m := map[string]interface{}{"kind": literalKindString(n.Kind)}
		if n.Value != nil {
			m["value"] = n.Value
		}
		return m

	case *Identifier:
		return map[string]interface{}{"kind": "Identifier", "name": n.Name}

	case *BinaryOp:
		return map[string]interface{}{
			"kind":  "BinaryOp",
			"op":    n.Op,
			"left":  simplify(n.Left),
			"right": simplify(n.Right),
		}

	case *UnaryOp:
		return map[string]interface{}{
			"kind": "UnaryOp",
			"op":   n.Op,
			"expr": simplify(n.Expr),
		}

	case *List:
		m := map[string]interface{}{"kind": "List"}
		if len(n.Elements) > 0 {
			m["elements"] = simplifyExprSlice(n.Elements)
		}
		return m

	case *Tuple:
		m := map[string]interface{}{"kind": "Tuple"}
		if len(n.Elements) > 0 {
			m["elements"] = simplifyExprSlice(n.Elements)
		}
		return m

	case *Call:
		m := map[string]interface{}{"kind": "Call", "func": simplify(n.Func)}
		if len(n.Args) > 0 {
			m["args"] = simplifyExprSlice(n.Args)
		}
		return m

	case *If:
		m := map[string]interface{}{
			"kind":      "If",
			"condition": simplify(n.Condition),
			"then":      simplify(n.Then),
		}
		if n.Else != nil {
			m["else"] = simplify(n.Else)
		}
		return m

	case *Block:
		m := map[string]interface{}{"kind": "Block"}
		if len(n.Statements) > 0 {
			m["statements"] = simplifyStmtSlice(n.Statements)
		}
		if n.Result != nil {
			m["result"] = simplify(n.Result)
		}
		return m

	case *Case:
		m := map[string]interface{}{
			"kind":    "Case",
			"pattern": simplify(n.Pattern),
			"body":    simplify(n.Body),
		}
		if n.Guard != nil {
			m["guard"] = simplify(n.Guard)
		}
		return m

	case *Match:
		m := map[string]interface{}{"kind": "Match", "scrutinee": simplify(n.Scrutinee)}
		if len(n.Cases) > 0 {
			m["cases"] = simplifyCaseSlice(n.Cases)
		}
		return m

	case *Bind:
		return map[string]interface{}{"kind": "Bind", "name": n.Name, "value": simplify(n.Value)}

	case *With:
		m := map[string]interface{}{"kind": "With", "body": simplify(n.Body)}
		if len(n.Binds) > 0 {
			binds := make([]interface{}, len(n.Binds))
			for i, b := range n.Binds {
				binds[i] = simplify(b)
			}
			m["binds"] = binds
		}
		if len(n.Else) > 0 {
			m["else"] = simplifyCaseSlice(n.Else)
		}
		return m

	case *Param:
		m := map[string]interface{}{"kind": "Param", "name": n.Name}
		if n.Type != nil {
			m["typeAnnotation"] = simplify(n.Type)
		}
		return m

	case *Lambda:
		m := map[string]interface{}{"kind": "Lambda", "body": simplify(n.Body)}
		if len(n.Params) > 0 {
			m["params"] = simplifyParamSlice(n.Params)
		}
		return m

	case *ForLoop:
		return map[string]interface{}{
			"kind":     "ForLoop",
			"name":     n.Name,
			"iterable": simplify(n.Iterable),
			"body":     simplify(n.Body),
		}

	case *Index:
		return map[string]interface{}{
			"kind":   "Index",
			"object": simplify(n.Object),
			"index":  simplify(n.Index),
		}

	case *Dot:
		return map[string]interface{}{
			"kind":   "Dot",
			"object": simplify(n.Object),
			"field":  n.Field,
		}

	case *Range:
		return map[string]interface{}{
			"kind":      "Range",
			"start":     simplify(n.Start),
			"end":       simplify(n.End),
			"inclusive": n.Inclusive,
		}

	case *MapLiteral:
		m := map[string]interface{}{"kind": "MapLiteral"}
		if len(n.Entries) > 0 {
			entries := make([]interface{}, len(n.Entries))
			for i, e := range n.Entries {
				entries[i] = map[string]interface{}{
					"key":   simplify(e.Key),
					"value": simplify(e.Value),
				}
			}
			m["entries"] = entries
		}
		return m

	case *ListComprehension:
		m := map[string]interface{}{
			"kind":     "ListComprehension",
			"body":     simplify(n.Body),
			"name":     n.Name,
			"iterable": simplify(n.Iterable),
		}
		if n.Cond != nil {
			m["cond"] = simplify(n.Cond)
		}
		return m

	case *InterpolatedString:
		m := map[string]interface{}{"kind": "InterpolatedString", "textParts": n.TextParts}
		if len(n.Parts) > 0 {
			m["parts"] = simplifyExprSlice(n.Parts)
		}
		return m

	case *Try:
		return map[string]interface{}{"kind": "Try", "expr": simplify(n.Expr)}

	case *RecordFieldInit:
		return map[string]interface{}{"name": n.Name, "value": simplify(n.Value)}

	case *Record:
		m := map[string]interface{}{"kind": "Record"}
		if len(n.Fields) > 0 {
			m["fields"] = simplifyRecordFields(n.Fields)
		}
		return m

	case *RecordUpdate:
		m := map[string]interface{}{"kind": "RecordUpdate", "base": simplify(n.Base)}
		if len(n.Fields) > 0 {
			m["fields"] = simplifyRecordFields(n.Fields)
		}
		return m

	case *Spawn:
		return map[string]interface{}{"kind": "Spawn", "body": simplify(n.Body)}

	case *Send:
		return map[string]interface{}{
			"kind":    "Send",
			"channel": simplify(n.Channel),
			"value":   simplify(n.Value),
		}

	case *Receive:
		return map[string]interface{}{"kind": "Receive", "channel": simplify(n.Channel)}

	// Statements
	case *Let:
		m := map[string]interface{}{
			"kind":    "Let",
			"pattern": simplify(n.Pattern),
			"value":   simplify(n.Value),
		}
		if n.Annotation != nil {
			m["annotation"] = simplify(n.Annotation)
		}
		return m

	case *ExprStmt:
		return map[string]interface{}{"kind": "ExprStmt", "expr": simplify(n.Expr)}

	case *FuncDecl:
		m := map[string]interface{}{"kind": "FuncDecl", "name": n.Name, "body": simplify(n.Body)}
		if len(n.Params) > 0 {
			m["params"] = simplifyParamSlice(n.Params)
		}
		if n.ReturnType != nil {
			m["returnType"] = simplify(n.ReturnType)
		}
		return m

	case *VariantCase:
		m := map[string]interface{}{"name": n.Name}
		if len(n.Fields) > 0 {
			m["fields"] = simplifyTypeExprSlice(n.Fields)
		}
		return m

	case *VariantType:
		m := map[string]interface{}{"kind": "VariantType"}
		if len(n.Cases) > 0 {
			cases := make([]interface{}, len(n.Cases))
			for i, c := range n.Cases {
				cases[i] = simplify(c)
			}
			m["cases"] = cases
		}
		return m

	case *RecordTypeField:
		return map[string]interface{}{"name": n.Name, "type": simplify(n.Type)}

	case *RecordTypeDef:
		m := map[string]interface{}{"kind": "RecordTypeDef"}
		if len(n.Fields) > 0 {
			fields := make([]interface{}, len(n.Fields))
			for i, f := range n.Fields {
				fields[i] = simplify(f)
			}
			m["fields"] = fields
		}
		return m

	case *TypeDecl:
		m := map[string]interface{}{"kind": "TypeDecl", "name": n.Name}
		if len(n.TypeParams) > 0 {
			m["typeParams"] = n.TypeParams
		}
		if n.Definition != nil {
			m["definition"] = simplify(n.Definition)
		}
		return m

	case *ReservedStmt:
		return map[string]interface{}{"kind": "Reserved", "reservedKind": n.Kind}

	// Patterns
	case *WildcardPattern:
		return map[string]interface{}{"kind": "Wildcard"}

	case *TuplePattern:
		m := map[string]interface{}{"kind": "Tuple"}
		if len(n.Elements) > 0 {
			m["elements"] = simplifyPatternSlice(n.Elements)
		}
		return m

	case *ConstructorPattern:
		m := map[string]interface{}{"kind": "Constructor", "name": n.Name}
		if len(n.SubPatterns) > 0 {
			m["subPatterns"] = simplifyPatternSlice(n.SubPatterns)
		}
		return m

	case *RestPattern:
		return map[string]interface{}{"kind": "Rest", "name": n.Name}

	// Type expressions
	case *NamedType:
		m := map[string]interface{}{"kind": "Named", "name": n.Name}
		if len(n.Args) > 0 {
			m["args"] = simplifyTypeExprSlice(n.Args)
		}
		return m

	case *FuncTypeExpr:
		m := map[string]interface{}{"kind": "Func", "result": simplify(n.Result)}
		if len(n.Params) > 0 {
			m["params"] = simplifyTypeExprSlice(n.Params)
		}
		return m

	case *TupleTypeExpr:
		m := map[string]interface{}{"kind": "Tuple"}
		if len(n.Elements) > 0 {
			m["elements"] = simplifyTypeExprSlice(n.Elements)
		}
		return m

	default:
		return map[string]interface{}{
			"kind":  fmt.Sprintf("%T", node),
			"_note": "not yet handled by printer",
		}
	}
}

func simplifyRecordFields(fields []RecordFieldInit) []interface{} {
	result := make([]interface{}, len(fields))
	for i, f := range fields {
		result[i] = simplify(&f)
	}
	return result
}

func simplifyStmtSlice(stmts []Stmt) []interface{} {
	result := make([]interface{}, len(stmts))
	for i, s := range stmts {
		result[i] = simplify(s)
	}
	return result
}

func simplifyExprSlice(exprs []Expr) []interface{} {
	result := make([]interface{}, len(exprs))
	for i, e := range exprs {
		result[i] = simplify(e)
	}
	return result
}

func simplifyPatternSlice(patterns []Pattern) []interface{} {
	result := make([]interface{}, len(patterns))
	for i, p := range patterns {
		result[i] = simplify(p)
	}
	return result
}

func simplifyTypeExprSlice(types []TypeExpr) []interface{} {
	result := make([]interface{}, len(types))
	for i, t := range types {
		result[i] = simplify(t)
	}
	return result
}

func simplifyParamSlice(params []*Param) []interface{} {
	result := make([]interface{}, len(params))
	for i, p := range params {
		result[i] = simplify(p)
	}
	return result
}

func simplifyCaseSlice(cases []*Case) []interface{} {
	result := make([]interface{}, len(cases))
	for i, c := range cases {
		result[i] = simplify(c)
	}
	return result
}

func literalKindString(kind LiteralKind) string {
	switch kind {
	case IntLit:
		return "Int"
	case FloatLit:
		return "Float"
	case StringLit:
		return "String"
	case BoolLit:
		return "Bool"
	default:
		return "Unknown"
	}
}
