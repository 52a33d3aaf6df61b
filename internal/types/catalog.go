package types

import "strings"

// sigFactory produces a fresh instance of a built-in's type at every
// lookup, which is what lets two separate uses of the same polymorphic
// signature (e.g. two calls to List.len) get independent variables
// (§4.5).
type sigFactory func() Type

// topLevel is the catalog of bare top-level identifiers: print/println,
// string/list/file utilities, and the Result/Option value constructors.
var topLevel map[string]sigFactory

// modules is the catalog of Module.function and Nested.Module.function
// signatures, keyed first by module path then by function name.
var modules map[string]map[string]sigFactory

func init() {
	topLevel = buildTopLevel()
	modules = buildModules()
}

// LookupBuiltin resolves a bare identifier against the top-level catalog,
// instantiating a fresh signature on every call.
func LookupBuiltin(name string) (Type, bool) {
	f, ok := topLevel[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// LookupModuleFunc resolves (module, function) against the module
// catalog, instantiating a fresh signature on every call.
func LookupModuleFunc(module, function string) (Type, bool) {
	fns, ok := modules[module]
	if !ok {
		return nil, false
	}
	f, ok := fns[function]
	if !ok {
		return nil, false
	}
	return f(), true
}

// KnownModules reports the module names the catalog recognizes (§4.5).
func KnownModules() []string {
	names := make([]string, 0, len(modules))
	for m := range modules {
		names = append(names, m)
	}
	return names
}

// ModuleFunctionNames reports the known function names of module, for
// suggestion-hint purposes.
func ModuleFunctionNames(module string) []string {
	fns, ok := modules[module]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(fns))
	for n := range fns {
		names = append(names, n)
	}
	return names
}

// TopLevelNames reports every bare top-level identifier the catalog
// recognizes, for suggestion-hint purposes.
func TopLevelNames() []string {
	names := make([]string, 0, len(topLevel))
	for n := range topLevel {
		names = append(names, n)
	}
	return names
}

// BuildModulePath walks a dotted identifier chain A.B.C.name and returns
// either the module path ("A.B.C") and the final name, or ok=false when
// the chain does not resolve to one of the known module paths (§4.5). The
// caller supplies the dotted chain already split into segments (the AST's
// Dot-expression walker is responsible for extracting these from
// `obj.field` chains).
func BuildModulePath(segments []string) (module, name string, ok bool) {
	if len(segments) < 2 {
		return "", "", false
	}
	name = segments[len(segments)-1]
	module = strings.Join(segments[:len(segments)-1], ".")
	if _, known := modules[module]; !known {
		return "", "", false
	}
	return module, name, true
}

func buildTopLevel() map[string]sigFactory {
	polyUnaryUnit := func() Type { return Fn(TUnit{}, NewVar("a")) }

	return map[string]sigFactory{
		"print":   polyUnaryUnit,
		"println": polyUnaryUnit,

		// string utilities
		"str_len":         func() Type { return Fn(TInt{}, TString{}) },
		"str_concat":      func() Type { return Fn(TString{}, TString{}, TString{}) },
		"str_eq":          func() Type { return Fn(TBool{}, TString{}, TString{}) },
		"str_starts_with": func() Type { return Fn(TBool{}, TString{}, TString{}) },
		"str_ends_with":   func() Type { return Fn(TBool{}, TString{}, TString{}) },
		"str_contains":    func() Type { return Fn(TBool{}, TString{}, TString{}) },
		"str_slice":       func() Type { return Fn(TString{}, TString{}, TInt{}, TInt{}) },
		"str_trim":        func() Type { return Fn(TString{}, TString{}) },
		"str_trim_start":  func() Type { return Fn(TString{}, TString{}) },
		"str_trim_end":    func() Type { return Fn(TString{}, TString{}) },
		"str_to_upper":    func() Type { return Fn(TString{}, TString{}) },
		"str_to_lower":    func() Type { return Fn(TString{}, TString{}) },
		"str_replace":     func() Type { return Fn(TString{}, TString{}, TString{}, TString{}) },
		"str_repeat":      func() Type { return Fn(TString{}, TString{}, TInt{}) },
		"str_is_empty":    func() Type { return Fn(TBool{}, TString{}) },

		// list utilities
		"list_len": func() Type {
			a := NewVar("a")
			return Fn(TInt{}, ListType(a))
		},
		"list_get": func() Type {
			a := NewVar("a")
			return Fn(a, ListType(a), TInt{})
		},
		"list_push": func() Type {
			a := NewVar("a")
			return Fn(ListType(a), ListType(a), a)
		},
		"list_reverse": func() Type {
			a := NewVar("a")
			return Fn(ListType(a), ListType(a))
		},
		"list_concat": func() Type {
			a := NewVar("a")
			return Fn(ListType(a), ListType(a), ListType(a))
		},
		"list_head": func() Type {
			a := NewVar("a")
			return Fn(OptionType(a), ListType(a))
		},
		"list_tail": func() Type {
			a := NewVar("a")
			return Fn(ListType(a), ListType(a))
		},
		"list_is_empty": func() Type {
			a := NewVar("a")
			return Fn(TBool{}, ListType(a))
		},

		// file utilities
		"read_file":   func() Type { return Fn(ResultType(TString{}, TString{}), TString{}) },
		"write_file":  func() Type { return Fn(ResultType(TUnit{}, TString{}), TString{}, TString{}) },
		"append_file": func() Type { return Fn(ResultType(TUnit{}, TString{}), TString{}, TString{}) },
		"file_exists": func() Type { return Fn(TBool{}, TString{}) },
		"delete_file": func() Type { return Fn(ResultType(TUnit{}, TString{}), TString{}) },
		"file_size":   func() Type { return Fn(ResultType(TInt{}, TString{}), TString{}) },

		// Result/Option value constructors
		"Ok": func() Type {
			a, e := NewVar("a"), NewVar("e")
			return Fn(ResultType(a, e), a)
		},
		"Err": func() Type {
			a, e := NewVar("a"), NewVar("e")
			return Fn(ResultType(a, e), e)
		},
		"Some": func() Type {
			a := NewVar("a")
			return Fn(OptionType(a), a)
		},
		"None": func() Type {
			a := NewVar("a")
			return OptionType(a)
		},
	}
}

func buildModules() map[string]map[string]sigFactory {
	strModule := map[string]sigFactory{
		"len":          func() Type { return Fn(TInt{}, TString{}) },
		"concat":       func() Type { return Fn(TString{}, TString{}, TString{}) },
		"split":        func() Type { return Fn(ListType(TString{}), TString{}, TString{}) },
		"join":         func() Type { return Fn(TString{}, ListType(TString{}), TString{}) },
		"to_upper":     func() Type { return Fn(TString{}, TString{}) },
		"to_lower":     func() Type { return Fn(TString{}, TString{}) },
		"trim":         func() Type { return Fn(TString{}, TString{}) },
		"contains":     func() Type { return Fn(TBool{}, TString{}, TString{}) },
		"starts_with":  func() Type { return Fn(TBool{}, TString{}, TString{}) },
		"ends_with":    func() Type { return Fn(TBool{}, TString{}, TString{}) },
		"replace":      func() Type { return Fn(TString{}, TString{}, TString{}, TString{}) },
		"repeat":       func() Type { return Fn(TString{}, TString{}, TInt{}) },
		"slice":        func() Type { return Fn(TString{}, TString{}, TInt{}, TInt{}) },
		"is_empty":     func() Type { return Fn(TBool{}, TString{}) },
		"format":       func() Type { a := NewVar("a"); return Fn(TString{}, a) },
		"parse_int":    func() Type { return Fn(ResultType(TInt{}, TString{}), TString{}) },
		"parse_float":  func() Type { return Fn(ResultType(TFloat{}, TString{}), TString{}) },
	}

	listModule := map[string]sigFactory{
		"len":     func() Type { a := NewVar("a"); return Fn(TInt{}, ListType(a)) },
		"get":     func() Type { a := NewVar("a"); return Fn(a, ListType(a), TInt{}) },
		"push":    func() Type { a := NewVar("a"); return Fn(ListType(a), ListType(a), a) },
		"reverse": func() Type { a := NewVar("a"); return Fn(ListType(a), ListType(a)) },
		"concat":  func() Type { a := NewVar("a"); return Fn(ListType(a), ListType(a), ListType(a)) },
		"head":    func() Type { a := NewVar("a"); return Fn(OptionType(a), ListType(a)) },
		"tail":    func() Type { a := NewVar("a"); return Fn(ListType(a), ListType(a)) },
		"is_empty": func() Type { a := NewVar("a"); return Fn(TBool{}, ListType(a)) },
		"map": func() Type {
			a, b := NewVar("a"), NewVar("b")
			return Fn(ListType(b), ListType(a), Fn(b, a))
		},
		"filter": func() Type {
			a := NewVar("a")
			return Fn(ListType(a), ListType(a), Fn(TBool{}, a))
		},
		"fold": func() Type {
			a, b := NewVar("a"), NewVar("b")
			return Fn(b, ListType(a), b, Fn(b, b, a))
		},
		"sort": func() Type { a := NewVar("a"); return Fn(ListType(a), ListType(a)) },
		"contains": func() Type {
			a := NewVar("a")
			return Fn(TBool{}, ListType(a), a)
		},
	}

	fileModule := map[string]sigFactory{
		"read":   func() Type { return Fn(ResultType(TString{}, TString{}), TString{}) },
		"write":  func() Type { return Fn(ResultType(TUnit{}, TString{}), TString{}, TString{}) },
		"append": func() Type { return Fn(ResultType(TUnit{}, TString{}), TString{}, TString{}) },
		"exists": func() Type { return Fn(TBool{}, TString{}) },
		"delete": func() Type { return Fn(ResultType(TUnit{}, TString{}), TString{}) },
		"size":   func() Type { return Fn(ResultType(TInt{}, TString{}), TString{}) },
	}

	systemModule := map[string]sigFactory{
		"args":     func() Type { return ListType(TString{}) },
		"env":      func() Type { return Fn(OptionType(TString{}), TString{}) },
		"exit":     func() Type { return Fn(TUnit{}, TInt{}) },
		"exec":     func() Type { return Fn(ResultType(TString{}, TString{}), TString{}, ListType(TString{})) },
		"cwd":      func() Type { return TString{} },
		"platform": func() Type { return TString{} },
	}

	regexModule := map[string]sigFactory{
		"is_match": func() Type { return Fn(TBool{}, TString{}, TString{}) },
		"find":     func() Type { return Fn(OptionType(TString{}), TString{}, TString{}) },
		"find_all": func() Type { return Fn(ListType(TString{}), TString{}, TString{}) },
		"replace":  func() Type { return Fn(TString{}, TString{}, TString{}, TString{}) },
	}

	resultModule := map[string]sigFactory{
		"map": func() Type {
			a, b, e := NewVar("a"), NewVar("b"), NewVar("e")
			return Fn(ResultType(b, e), ResultType(a, e), Fn(b, a))
		},
		"map_err": func() Type {
			a, e, f := NewVar("a"), NewVar("e"), NewVar("f")
			return Fn(ResultType(a, f), ResultType(a, e), Fn(f, e))
		},
		"unwrap_or": func() Type {
			a, e := NewVar("a"), NewVar("e")
			return Fn(a, ResultType(a, e), a)
		},
		"is_ok": func() Type {
			a, e := NewVar("a"), NewVar("e")
			return Fn(TBool{}, ResultType(a, e))
		},
		"is_err": func() Type {
			a, e := NewVar("a"), NewVar("e")
			return Fn(TBool{}, ResultType(a, e))
		},
	}

	optionModule := map[string]sigFactory{
		"map": func() Type {
			a, b := NewVar("a"), NewVar("b")
			return Fn(OptionType(b), OptionType(a), Fn(b, a))
		},
		"unwrap_or": func() Type {
			a := NewVar("a")
			return Fn(a, OptionType(a), a)
		},
		"is_some": func() Type { a := NewVar("a"); return Fn(TBool{}, OptionType(a)) },
		"is_none": func() Type { a := NewVar("a"); return Fn(TBool{}, OptionType(a)) },
	}

	termModule := map[string]sigFactory{
		"width":  func() Type { return TInt{} },
		"height": func() Type { return TInt{} },
		"clear":  func() Type { return Fn(TUnit{}) },
	}
	progressModule := map[string]sigFactory{
		"new":    func() Type { return Fn(TUnit{}, TString{}, TInt{}) },
		"update": func() Type { return Fn(TUnit{}, TInt{}) },
		"finish": func() Type { return Fn(TUnit{}) },
	}
	spinnerModule := map[string]sigFactory{
		"start": func() Type { return Fn(TUnit{}, TString{}) },
		"stop":  func() Type { return Fn(TUnit{}) },
	}
	promptModule := map[string]sigFactory{
		"ask":     func() Type { return Fn(TString{}, TString{}) },
		"confirm": func() Type { return Fn(TBool{}, TString{}) },
	}
	panelModule := map[string]sigFactory{
		"show": func() Type { return Fn(TUnit{}, TString{}, TString{}) },
	}
	tableModule := map[string]sigFactory{
		"render": func() Type { return Fn(TUnit{}, ListType(ListType(TString{}))) },
	}
	styleModule := map[string]sigFactory{
		"bold":  func() Type { return Fn(TString{}, TString{}) },
		"color": func() Type { return Fn(TString{}, TString{}, TString{}) },
	}
	statusModule := map[string]sigFactory{
		"ok":   func() Type { return Fn(TUnit{}, TString{}) },
		"fail": func() Type { return Fn(TUnit{}, TString{}) },
	}
	liveModule := map[string]sigFactory{
		"start":  func() Type { return Fn(TUnit{}) },
		"update": func() Type { return Fn(TUnit{}, TString{}) },
		"stop":   func() Type { return Fn(TUnit{}) },
	}

	return map[string]map[string]sigFactory{
		"String":       strModule,
		"List":         listModule,
		"File":         fileModule,
		"System":       systemModule,
		"Regex":        regexModule,
		"Result":       resultModule,
		"Option":       optionModule,
		"Tui.Term":     termModule,
		"Tui.Progress": progressModule,
		"Tui.Spinner":  spinnerModule,
		"Tui.Prompt":   promptModule,
		"Tui.Panel":    panelModule,
		"Tui.Table":    tableModule,
		"Tui.Style":    styleModule,
		"Tui.Status":   statusModule,
		"Tui.Live":     liveModule,
	}
}
