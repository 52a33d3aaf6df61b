package ast

import (
	"encoding/json"
	"fmt"
)

// Decoding support: the parser is out of scope (§1), so cmd/typecheck
// decodes a JSON fixture into these AST nodes in place of a real parser
// (§6.2). Each node is tagged with a "kind" field naming the Go type;
// decodeNode dispatches on it.

type envelope struct {
	Kind string          `json:"kind"`
	Pos  Pos             `json:"pos"`
	Rest json.RawMessage `json:"-"`
}

// DecodeProgram decodes a JSON fixture into a Program.
func DecodeProgram(data []byte) (*Program, error) {
	var raw struct {
		Statements []json.RawMessage `json:"statements"`
		Pos        Pos               `json:"pos"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode program: %w", err)
	}
	stmts := make([]Stmt, len(raw.Statements))
	for i, s := range raw.Statements {
		stmt, err := DecodeStmt(s)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i, err)
		}
		stmts[i] = stmt
	}
	return &Program{Statements: stmts, Pos: raw.Pos}, nil
}

func kindOf(data json.RawMessage) (string, error) {
	// Decode into a map so only the exact lowercase "kind" key counts:
	// struct decoding folds case, and a node's own "Kind" field would
	// otherwise overwrite the dispatch tag.
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return "", err
	}
	var kind string
	if raw, ok := m["kind"]; ok {
		if err := json.Unmarshal(raw, &kind); err != nil {
			return "", err
		}
	}
	if kind == "" {
		return "", fmt.Errorf("missing \"kind\" field in %s", string(data))
	}
	return kind, nil
}

// DecodeExpr decodes one JSON-encoded expression node.
func DecodeExpr(data json.RawMessage) (Expr, error) {
	if data == nil || string(data) == "null" {
		return nil, nil
	}
	kind, err := kindOf(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "Literal":
		var n struct {
			Pos   Pos
			Kind  string
			Value interface{}
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		lk, err := literalKindFromString(n.Kind)
		if err != nil {
			return nil, err
		}
		return &Literal{Kind: lk, Value: n.Value, Pos: n.Pos}, nil
	case "Identifier":
		var n struct {
			Pos  Pos
			Name string
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		return &Identifier{Name: n.Name, Pos: n.Pos}, nil
	case "BinaryOp":
		var n struct {
			Pos         Pos
			Op          string
			Left, Right json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		left, err := DecodeExpr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := DecodeExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryOp{Left: left, Op: n.Op, Right: right, Pos: n.Pos}, nil
	case "UnaryOp":
		var n struct {
			Pos  Pos
			Op   string
			Expr json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		inner, err := DecodeExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Op: n.Op, Expr: inner, Pos: n.Pos}, nil
	case "List":
		var n struct {
			Pos      Pos
			Elements []json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		elems, err := decodeExprSlice(n.Elements)
		if err != nil {
			return nil, err
		}
		return &List{Elements: elems, Pos: n.Pos}, nil
	case "Tuple":
		var n struct {
			Pos      Pos
			Elements []json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		elems, err := decodeExprSlice(n.Elements)
		if err != nil {
			return nil, err
		}
		return &Tuple{Elements: elems, Pos: n.Pos}, nil
	case "Call":
		var n struct {
			Pos  Pos
			Func json.RawMessage
			Args []json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		fn, err := DecodeExpr(n.Func)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprSlice(n.Args)
		if err != nil {
			return nil, err
		}
		return &Call{Func: fn, Args: args, Pos: n.Pos}, nil
	case "If":
		var n struct {
			Pos                    Pos
			Condition, Then, Else json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		cond, err := DecodeExpr(n.Condition)
		if err != nil {
			return nil, err
		}
		then, err := DecodeExpr(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := DecodeExpr(n.Else)
		if err != nil {
			return nil, err
		}
		return &If{Condition: cond, Then: then, Else: els, Pos: n.Pos}, nil
	case "Block":
		var n struct {
			Pos        Pos
			Statements []json.RawMessage
			Result     json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		stmts := make([]Stmt, len(n.Statements))
		for i, s := range n.Statements {
			st, err := DecodeStmt(s)
			if err != nil {
				return nil, err
			}
			stmts[i] = st
		}
		result, err := DecodeExpr(n.Result)
		if err != nil {
			return nil, err
		}
		return &Block{Statements: stmts, Result: result, Pos: n.Pos}, nil
	case "Match":
		var n struct {
			Pos       Pos
			Scrutinee json.RawMessage
			Cases     []json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		scrut, err := DecodeExpr(n.Scrutinee)
		if err != nil {
			return nil, err
		}
		cases, err := decodeCases(n.Cases)
		if err != nil {
			return nil, err
		}
		return &Match{Scrutinee: scrut, Cases: cases, Pos: n.Pos}, nil
	case "Bind":
		var n struct {
			Pos   Pos
			Name  string
			Value json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		val, err := DecodeExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return &Bind{Name: n.Name, Value: val, Pos: n.Pos}, nil
	case "With":
		var n struct {
			Pos   Pos
			Binds []json.RawMessage
			Body  json.RawMessage
			Else  []json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		binds := make([]*Bind, len(n.Binds))
		for i, b := range n.Binds {
			e, err := DecodeExpr(b)
			if err != nil {
				return nil, err
			}
			bind, ok := e.(*Bind)
			if !ok {
				return nil, fmt.Errorf("with: expected Bind, got %T", e)
			}
			binds[i] = bind
		}
		body, err := DecodeExpr(n.Body)
		if err != nil {
			return nil, err
		}
		elseArms, err := decodeCases(n.Else)
		if err != nil {
			return nil, err
		}
		return &With{Binds: binds, Body: body, Else: elseArms, Pos: n.Pos}, nil
	case "Lambda":
		var n struct {
			Pos    Pos
			Params []rawParam
			Body   json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		params, err := decodeParams(n.Params)
		if err != nil {
			return nil, err
		}
		body, err := DecodeExpr(n.Body)
		if err != nil {
			return nil, err
		}
		return &Lambda{Params: params, Body: body, Pos: n.Pos}, nil
	case "ForLoop":
		var n struct {
			Pos      Pos
			Name     string
			Iterable json.RawMessage
			Body     json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		iter, err := DecodeExpr(n.Iterable)
		if err != nil {
			return nil, err
		}
		body, err := DecodeExpr(n.Body)
		if err != nil {
			return nil, err
		}
		return &ForLoop{Name: n.Name, Iterable: iter, Body: body, Pos: n.Pos}, nil
	case "Index":
		var n struct {
			Pos          Pos
			Object, Index json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		obj, err := DecodeExpr(n.Object)
		if err != nil {
			return nil, err
		}
		idx, err := DecodeExpr(n.Index)
		if err != nil {
			return nil, err
		}
		return &Index{Object: obj, Index: idx, Pos: n.Pos}, nil
	case "Dot":
		var n struct {
			Pos    Pos
			Object json.RawMessage
			Field  string
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		obj, err := DecodeExpr(n.Object)
		if err != nil {
			return nil, err
		}
		return &Dot{Object: obj, Field: n.Field, Pos: n.Pos}, nil
	case "Range":
		var n struct {
			Pos       Pos
			Start, End json.RawMessage
			Inclusive bool
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		start, err := DecodeExpr(n.Start)
		if err != nil {
			return nil, err
		}
		end, err := DecodeExpr(n.End)
		if err != nil {
			return nil, err
		}
		return &Range{Start: start, End: end, Inclusive: n.Inclusive, Pos: n.Pos}, nil
	case "MapLiteral":
		var n struct {
			Pos     Pos
			Entries []struct {
				Key   json.RawMessage
				Value json.RawMessage
			}
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		entries := make([]MapEntry, len(n.Entries))
		for i, e := range n.Entries {
			k, err := DecodeExpr(e.Key)
			if err != nil {
				return nil, err
			}
			v, err := DecodeExpr(e.Value)
			if err != nil {
				return nil, err
			}
			entries[i] = MapEntry{Key: k, Value: v}
		}
		return &MapLiteral{Entries: entries, Pos: n.Pos}, nil
	case "ListComprehension":
		var n struct {
			Pos      Pos
			Body     json.RawMessage
			Name     string
			Iterable json.RawMessage
			Cond     json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		body, err := DecodeExpr(n.Body)
		if err != nil {
			return nil, err
		}
		iter, err := DecodeExpr(n.Iterable)
		if err != nil {
			return nil, err
		}
		cond, err := DecodeExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		return &ListComprehension{Body: body, Name: n.Name, Iterable: iter, Cond: cond, Pos: n.Pos}, nil
	case "InterpolatedString":
		var n struct {
			Pos       Pos
			TextParts []string
			Parts     []json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		parts, err := decodeExprSlice(n.Parts)
		if err != nil {
			return nil, err
		}
		return &InterpolatedString{TextParts: n.TextParts, Parts: parts, Pos: n.Pos}, nil
	case "Try":
		var n struct {
			Pos  Pos
			Expr json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		inner, err := DecodeExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &Try{Expr: inner, Pos: n.Pos}, nil
	case "Record":
		fields, pos, err := decodeRecordFields(data)
		if err != nil {
			return nil, err
		}
		return &Record{Fields: fields, Pos: pos}, nil
	case "RecordUpdate":
		var n struct {
			Pos  Pos
			Base json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		base, err := DecodeExpr(n.Base)
		if err != nil {
			return nil, err
		}
		fields, _, err := decodeRecordFields(data)
		if err != nil {
			return nil, err
		}
		return &RecordUpdate{Base: base, Fields: fields, Pos: n.Pos}, nil
	case "Spawn":
		var n struct {
			Pos  Pos
			Body json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		body, err := DecodeExpr(n.Body)
		if err != nil {
			return nil, err
		}
		return &Spawn{Body: body, Pos: n.Pos}, nil
	case "Send":
		var n struct {
			Pos            Pos
			Channel, Value json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		ch, err := DecodeExpr(n.Channel)
		if err != nil {
			return nil, err
		}
		val, err := DecodeExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return &Send{Channel: ch, Value: val, Pos: n.Pos}, nil
	case "Receive":
		var n struct {
			Pos     Pos
			Channel json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		ch, err := DecodeExpr(n.Channel)
		if err != nil {
			return nil, err
		}
		return &Receive{Channel: ch, Pos: n.Pos}, nil
	default:
		return nil, fmt.Errorf("unknown expression kind %q", kind)
	}
}

func decodeRecordFields(data json.RawMessage) ([]RecordFieldInit, Pos, error) {
	var n struct {
		Pos    Pos
		Fields []struct {
			Name  string
			Value json.RawMessage
		}
	}
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, Pos{}, err
	}
	fields := make([]RecordFieldInit, len(n.Fields))
	for i, f := range n.Fields {
		v, err := DecodeExpr(f.Value)
		if err != nil {
			return nil, Pos{}, err
		}
		fields[i] = RecordFieldInit{Name: f.Name, Value: v}
	}
	return fields, n.Pos, nil
}

func decodeExprSlice(raw []json.RawMessage) ([]Expr, error) {
	out := make([]Expr, len(raw))
	for i, r := range raw {
		e, err := DecodeExpr(r)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func decodeCases(raw []json.RawMessage) ([]*Case, error) {
	cases := make([]*Case, len(raw))
	for i, r := range raw {
		var n struct {
			Pos     Pos
			Pattern json.RawMessage
			Guard   json.RawMessage
			Body    json.RawMessage
		}
		if err := json.Unmarshal(r, &n); err != nil {
			return nil, err
		}
		pat, err := DecodePattern(n.Pattern)
		if err != nil {
			return nil, err
		}
		guard, err := DecodeExpr(n.Guard)
		if err != nil {
			return nil, err
		}
		body, err := DecodeExpr(n.Body)
		if err != nil {
			return nil, err
		}
		cases[i] = &Case{Pattern: pat, Guard: guard, Body: body, Pos: n.Pos}
	}
	return cases, nil
}

type rawParam struct {
	Name string
	Type json.RawMessage
	Pos  Pos
}

func decodeParams(raw []rawParam) ([]*Param, error) {
	params := make([]*Param, len(raw))
	for i, p := range raw {
		t, err := DecodeTypeExpr(p.Type)
		if err != nil {
			return nil, err
		}
		params[i] = &Param{Name: p.Name, Type: t, Pos: p.Pos}
	}
	return params, nil
}

// DecodePattern decodes one JSON-encoded pattern node.
func DecodePattern(data json.RawMessage) (Pattern, error) {
	if data == nil || string(data) == "null" {
		return nil, nil
	}
	kind, err := kindOf(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "Identifier":
		var n struct {
			Pos  Pos
			Name string
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		return &Identifier{Name: n.Name, Pos: n.Pos}, nil
	case "Wildcard":
		var n struct{ Pos Pos }
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		return &WildcardPattern{Pos: n.Pos}, nil
	case "Literal":
		e, err := DecodeExpr(data)
		if err != nil {
			return nil, err
		}
		return e.(*Literal), nil
	case "Tuple":
		var n struct {
			Pos      Pos
			Elements []json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		elems, err := decodePatternSlice(n.Elements)
		if err != nil {
			return nil, err
		}
		return &TuplePattern{Elements: elems, Pos: n.Pos}, nil
	case "Constructor":
		var n struct {
			Pos         Pos
			Name        string
			SubPatterns []json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		sub, err := decodePatternSlice(n.SubPatterns)
		if err != nil {
			return nil, err
		}
		return &ConstructorPattern{Name: n.Name, SubPatterns: sub, Pos: n.Pos}, nil
	case "Rest":
		var n struct {
			Pos  Pos
			Name string
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		return &RestPattern{Name: n.Name, Pos: n.Pos}, nil
	default:
		return nil, fmt.Errorf("unknown pattern kind %q", kind)
	}
}

func decodePatternSlice(raw []json.RawMessage) ([]Pattern, error) {
	out := make([]Pattern, len(raw))
	for i, r := range raw {
		p, err := DecodePattern(r)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// DecodeTypeExpr decodes one JSON-encoded type-expression node.
func DecodeTypeExpr(data json.RawMessage) (TypeExpr, error) {
	if data == nil || string(data) == "null" {
		return nil, nil
	}
	kind, err := kindOf(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "Named":
		var n struct {
			Pos  Pos
			Name string
			Args []json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		args := make([]TypeExpr, len(n.Args))
		for i, a := range n.Args {
			t, err := DecodeTypeExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = t
		}
		return &NamedType{Name: n.Name, Args: args, Pos: n.Pos}, nil
	case "Func":
		var n struct {
			Pos    Pos
			Params []json.RawMessage
			Result json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		params := make([]TypeExpr, len(n.Params))
		for i, p := range n.Params {
			t, err := DecodeTypeExpr(p)
			if err != nil {
				return nil, err
			}
			params[i] = t
		}
		result, err := DecodeTypeExpr(n.Result)
		if err != nil {
			return nil, err
		}
		return &FuncTypeExpr{Params: params, Result: result, Pos: n.Pos}, nil
	case "Tuple":
		var n struct {
			Pos      Pos
			Elements []json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		elems := make([]TypeExpr, len(n.Elements))
		for i, e := range n.Elements {
			t, err := DecodeTypeExpr(e)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return &TupleTypeExpr{Elements: elems, Pos: n.Pos}, nil
	default:
		return nil, fmt.Errorf("unknown type-expression kind %q", kind)
	}
}

// DecodeStmt decodes one JSON-encoded statement node.
func DecodeStmt(data json.RawMessage) (Stmt, error) {
	kind, err := kindOf(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "Let":
		var n struct {
			Pos        Pos
			Pattern    json.RawMessage
			Annotation json.RawMessage
			Value      json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		pat, err := DecodePattern(n.Pattern)
		if err != nil {
			return nil, err
		}
		ann, err := DecodeTypeExpr(n.Annotation)
		if err != nil {
			return nil, err
		}
		val, err := DecodeExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return &Let{Pattern: pat, Annotation: ann, Value: val, Pos: n.Pos}, nil
	case "ExprStmt":
		var n struct {
			Pos  Pos
			Expr json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		e, err := DecodeExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{Expr: e, Pos: n.Pos}, nil
	case "FuncDecl":
		var n struct {
			Pos        Pos
			Name       string
			Params     []rawParam
			ReturnType json.RawMessage
			Body       json.RawMessage
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		params, err := decodeParams(n.Params)
		if err != nil {
			return nil, err
		}
		ret, err := DecodeTypeExpr(n.ReturnType)
		if err != nil {
			return nil, err
		}
		body, err := DecodeExpr(n.Body)
		if err != nil {
			return nil, err
		}
		return &FuncDecl{Name: n.Name, Params: params, ReturnType: ret, Body: body, Pos: n.Pos}, nil
	case "TypeDecl":
		return decodeTypeDecl(data)
	case "Reserved":
		var n struct {
			Pos  Pos
			Kind string
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		return &ReservedStmt{Kind: n.Kind, Pos: n.Pos}, nil
	default:
		return nil, fmt.Errorf("unknown statement kind %q", kind)
	}
}

func decodeTypeDecl(data json.RawMessage) (Stmt, error) {
	var n struct {
		Pos        Pos
		Name       string
		TypeParams []string
		Variant    *struct {
			Cases []struct {
				Name   string
				Fields []json.RawMessage
				Pos    Pos
			}
			Pos Pos
		}
		Record *struct {
			Fields []struct {
				Name string
				Type json.RawMessage
				Pos  Pos
			}
			Pos Pos
		}
	}
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}

	var def TypeDef
	switch {
	case n.Variant != nil:
		cases := make([]*VariantCase, len(n.Variant.Cases))
		for i, c := range n.Variant.Cases {
			fields := make([]TypeExpr, len(c.Fields))
			for j, f := range c.Fields {
				t, err := DecodeTypeExpr(f)
				if err != nil {
					return nil, err
				}
				fields[j] = t
			}
			cases[i] = &VariantCase{Name: c.Name, Fields: fields, Pos: c.Pos}
		}
		def = &VariantType{Cases: cases, Pos: n.Variant.Pos}
	case n.Record != nil:
		fields := make([]*RecordTypeField, len(n.Record.Fields))
		for i, f := range n.Record.Fields {
			t, err := DecodeTypeExpr(f.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = &RecordTypeField{Name: f.Name, Type: t, Pos: f.Pos}
		}
		def = &RecordTypeDef{Fields: fields, Pos: n.Record.Pos}
	}

	return &TypeDecl{Name: n.Name, TypeParams: n.TypeParams, Definition: def, Pos: n.Pos}, nil
}

func literalKindFromString(s string) (LiteralKind, error) {
	switch s {
	case "Int":
		return IntLit, nil
	case "Float":
		return FloatLit, nil
	case "String":
		return StringLit, nil
	case "Bool":
		return BoolLit, nil
	default:
		return 0, fmt.Errorf("unknown literal kind %q", s)
	}
}
