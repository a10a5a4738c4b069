package diag

import "sort"

// Family groups diagnostic codes by compilation concern.
type Family string

const (
	FamilyLexical   Family = "lexical"
	FamilySyntax    Family = "syntax"
	FamilyBinding   Family = "binding"
	FamilyType      Family = "type"
	FamilyStruct    Family = "struct"
	FamilySignal    Family = "signal"
	FamilyLifecycle Family = "lifecycle"
	FamilyExport    Family = "export"
)

// Info describes a registered diagnostic code.
type Info struct {
	Family   Family
	Severity Severity
	Template string
}

// The registry is a flat static mapping from code to family and message
// template. New codes are additive; tooling can enumerate the whole set
// through Codes.
var registry = map[string]Info{
	// Lexical
	"E001": {FamilyLexical, SeverityError, "invalid character %q"},
	"E002": {FamilyLexical, SeverityError, "unterminated string literal"},

	// Syntax
	"E100": {FamilySyntax, SeverityError, "unexpected token %q"},
	"E101": {FamilySyntax, SeverityError, "expected %s, found %q"},
	"E102": {FamilySyntax, SeverityError, "invalid assignment target"},
	"E103": {FamilySyntax, SeverityError, "expected type name, found %q"},
	"E104": {FamilySyntax, SeverityError, "expected expression, found %q"},
	"E105": {FamilySyntax, SeverityError, "numeric literal %q is out of range"},

	// Binding
	"E200": {FamilyBinding, SeverityError, "undefined variable '%s'"},
	"E201": {FamilyBinding, SeverityError, "cannot assign to immutable variable '%s'"},
	"E202": {FamilyBinding, SeverityError, "'%s' is already declared in this scope"},
	"E203": {FamilyBinding, SeverityError, "undefined function '%s'"},
	"E204": {FamilyBinding, SeverityError, "global '%s' is used before it is declared"},
	"E205": {FamilyBinding, SeverityError, "function '%s' is already defined"},
	"E206": {FamilyBinding, SeverityError, "signal '%s' is already declared"},
	"E207": {FamilyBinding, SeverityError, "'self' is only available inside functions"},
	"E208": {FamilyBinding, SeverityError, "unknown type '%s'"},
	"E209": {FamilyBinding, SeverityError, "global initializer cannot call function '%s'"},

	// Types
	"E300": {FamilyType, SeverityError, "mismatched types: expected %s, found %s"},
	"E301": {FamilyType, SeverityError, "operator '%s' is not defined for %s and %s"},
	"E302": {FamilyType, SeverityError, "operator '%s' is not defined for %s"},
	"E303": {FamilyType, SeverityError, "%s condition must be bool, found %s"},
	"E304": {FamilyType, SeverityError, "mismatched return type: expected %s, found %s"},
	"E305": {FamilyType, SeverityError, "'%s' expects %d argument(s), found %d"},
	"E306": {FamilyType, SeverityError, "argument %d of '%s' must be %s, found %s"},

	// Structured types
	"E400": {FamilyStruct, SeverityError, "type %s has no fields"},
	"E401": {FamilyStruct, SeverityError, "type %s has no field '%s'"},
	"E402": {FamilyStruct, SeverityError, "%s cannot be constructed with a struct literal"},
	"E403": {FamilyStruct, SeverityError, "missing field '%s' in %s literal"},
	"E404": {FamilyStruct, SeverityError, "duplicate field '%s' in %s literal"},
	"E405": {FamilyStruct, SeverityError, "unknown field '%s' in %s literal"},

	// Signals
	"E500": {FamilySignal, SeverityError, "emission of undeclared signal '%s'"},
	"E501": {FamilySignal, SeverityError, "signal '%s' expects %d argument(s), found %d"},
	"E502": {FamilySignal, SeverityError, "argument %d of signal '%s' must be %s, found %s"},

	// Lifecycle functions
	"E600": {FamilyLifecycle, SeverityError, "lifecycle function '%s' must have signature %s"},

	// Export annotations
	"E700": {FamilyExport, SeverityError, "type %s cannot be exported"},
	"E701": {FamilyExport, SeverityError, "%s hint is not valid for type %s"},
	"E702": {FamilyExport, SeverityError, "export annotations are only valid on global 'let' declarations"},
	"E703": {FamilyExport, SeverityError, "malformed %s annotation: %s"},

	// Warnings
	"W001": {FamilyType, SeverityWarning, "unreachable statement after 'return'"},
}

// Lookup returns the registry entry for code.
func Lookup(code string) (Info, bool) {
	info, ok := registry[code]
	return info, ok
}

// Codes returns every registered code in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for c := range registry {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
