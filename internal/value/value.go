// Package value implements the template runtime's tagged-variant value
// tree: a closed sum of kinds, each with its own read-only field-access
// table, plus the truthiness/comparison/escaping rules the pipeline
// evaluator (package tpl) relies on.
//
// Domain packages (site, resource, ...) register field tables for the kinds
// they own via RegisterFields at init time, so this package never imports
// them back.
package value

import "strings"

// Kind tags a Value's variant. The set is closed; field access and
// evaluation switch over it exhaustively.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindHtml
	KindPage
	KindSite
	KindLanguage
	KindFile
	KindSites
	KindPageResources
	KindResource
	KindResourceData
	KindPageArray
	KindStringArray
	KindSitesArray
	KindAnyArray
	KindDocsMount
	KindDocsMountArray
	KindNavItem
	KindNavArray
	KindMenuEntry
	KindMenuArray
	KindMenus
	KindOutputFormat
	KindOutputFormats
	KindTaxonomies
	KindTaxonomyTerms
	KindMediaType
	KindDict
	KindScratch
	KindUrl
	KindVersionString
	KindShortcode
	KindLinkHook
	KindImageHook
	KindHeadingHook
)

var kindNames = map[Kind]string{
	KindNil:            "Nil",
	KindBool:           "Bool",
	KindNumber:         "Number",
	KindString:         "String",
	KindHtml:           "Html",
	KindPage:           "Page",
	KindSite:           "Site",
	KindLanguage:       "Language",
	KindFile:           "File",
	KindSites:          "Sites",
	KindPageResources:  "PageResources",
	KindResource:       "Resource",
	KindResourceData:   "ResourceData",
	KindPageArray:      "PageArray",
	KindStringArray:    "StringArray",
	KindSitesArray:     "SitesArray",
	KindAnyArray:       "AnyArray",
	KindDocsMount:      "DocsMount",
	KindDocsMountArray: "DocsMountArray",
	KindNavItem:        "NavItem",
	KindNavArray:       "NavArray",
	KindMenuEntry:      "MenuEntry",
	KindMenuArray:      "MenuArray",
	KindMenus:          "Menus",
	KindOutputFormat:   "OutputFormat",
	KindOutputFormats:  "OutputFormats",
	KindTaxonomies:     "Taxonomies",
	KindTaxonomyTerms:  "TaxonomyTerms",
	KindMediaType:      "MediaType",
	KindDict:           "Dict",
	KindScratch:        "Scratch",
	KindUrl:            "Url",
	KindVersionString:  "VersionString",
	KindShortcode:      "Shortcode",
	KindLinkHook:       "LinkHook",
	KindImageHook:      "ImageHook",
	KindHeadingHook:    "HeadingHook",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "Unknown"
}

// Value is the dynamically-typed value passed through template pipelines.
// Scalar kinds use b/n/s directly; compound kinds stash their Go-side
// representation in payload (map[string]Value for Dict, []Value for the
// array kinds, or a domain struct pointer for Page/Site/Resource/...).
type Value struct {
	Kind    Kind
	b       bool
	n       float64
	s       string
	payload any
}

// Nil is the singular Nil value.
var Nil = Value{Kind: KindNil}

func Bool(b bool) Value          { return Value{Kind: KindBool, b: b} }
func Number(n float64) Value     { return Value{Kind: KindNumber, n: n} }
func String(s string) Value      { return Value{Kind: KindString, s: s} }
func Html(s string) Value        { return Value{Kind: KindHtml, s: s} }
func VerStr(s string) Value      { return Value{Kind: KindVersionString, s: s} }
func MediaType(s string) Value   { return Value{Kind: KindMediaType, s: s} }

// Of wraps an arbitrary payload under the given kind. Used by domain
// packages to lift their structs (e.g. *site.Page) into the value tree.
func Of(kind Kind, payload any) Value {
	return Value{Kind: kind, payload: payload}
}

// KeyedValue is implemented by payloads that resolve dotted-path names
// themselves rather than through a fixed per-Kind field table: Dict, and
// the domain packages' Menus/Taxonomies/TaxonomyTerms map wrappers. The
// exact-key-first, then case-insensitive lookup rule generalizes to any
// keyed collection.
type KeyedValue interface {
	LookupKey(name string) (Value, bool)
}

type dictMap map[string]Value

// LookupKey implements KeyedValue: exact key first, then a
// case-insensitive scan.
func (d dictMap) LookupKey(name string) (Value, bool) {
	if v, ok := d[name]; ok {
		return v, true
	}
	lname := strings.ToLower(name)
	for k, v := range d {
		if strings.ToLower(k) == lname {
			return v, true
		}
	}
	return Nil, false
}

// Dict wraps a string-keyed map.
func Dict(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{Kind: KindDict, payload: dictMap(m)}
}

// Array wraps a slice of Values under the given array kind (PageArray,
// StringArray, AnyArray, SitesArray, MenuArray, NavArray, DocsMountArray).
func Array(kind Kind, items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{Kind: kind, payload: items}
}

// Strings builds a StringArray from plain Go strings.
func Strings(items []string) Value {
	vs := make([]Value, len(items))
	for i, s := range items {
		vs[i] = String(s)
	}
	return Array(KindStringArray, vs)
}

func (v Value) Payload() any        { return v.payload }
func (v Value) IsNil() bool         { return v.Kind == KindNil }
func (v Value) AsBool() bool        { return v.b }
func (v Value) AsNumber() float64   { return v.n }
func (v Value) AsString() string    { return v.s }

// DictMap returns the underlying map for a Dict value, or nil otherwise.
func (v Value) DictMap() map[string]Value {
	m, _ := v.payload.(dictMap)
	return m
}

// Items returns the underlying slice for any array-kind value, or nil
// otherwise.
func (v Value) Items() []Value {
	items, _ := v.payload.([]Value)
	return items
}

// IsArray reports whether v's Kind is one of the array variants.
func (v Value) IsArray() bool {
	switch v.Kind {
	case KindPageArray, KindStringArray, KindSitesArray, KindAnyArray,
		KindMenuArray, KindNavArray, KindDocsMountArray:
		return true
	}
	return false
}
