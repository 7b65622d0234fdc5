package names

import "strings"

// Config is the per-compilation name mapping. It starts from the canonical
// keyword spellings and type-identifier aliases; OverrideKeyword and
// AddTypeAlias extend them. A `[Configuration]` block inside the source only
// stores option values (SetOption); it does not change keyword spellings or
// type aliases. A Config is owned by one compilation and must not be shared
// mutably.
type Config struct {
	// typeAliases maps lowercase alias spellings to canonical type
	// identifiers, e.g. "@css" -> "@Style".
	typeAliases map[string]string

	// keywordAliases maps overridden keyword spellings to canonical
	// keywords.
	keywordAliases map[string]string

	// options stores raw `[Configuration]` option values.
	options map[string]any
}

// NewConfig returns a config with the default alias tables.
func NewConfig() *Config {
	c := &Config{
		typeAliases:    make(map[string]string),
		keywordAliases: make(map[string]string),
		options:        make(map[string]any),
	}
	for alias, canon := range map[string]string{
		"@style": "@Style", "@css": "@Style",
		"@element": "@Element",
		"@var":     "@Var",
		"@html":    "@Html",
		"@javascript": "@JavaScript", "@js": "@JavaScript",
		"@chtl":   "@Chtl",
		"@cjmod":  "@CJmod",
		"@config": "@Config",
	} {
		c.typeAliases[alias] = canon
	}
	return c
}

// CanonicalType resolves a type identifier spelling (e.g. `@css`, `@CSS`,
// `@Style`) to its canonical form. Unknown identifiers are returned as
// written.
func (c *Config) CanonicalType(typ string) string {
	if canon, ok := c.typeAliases[strings.ToLower(typ)]; ok {
		return canon
	}
	return typ
}

// IsTypeIdentifier reports whether typ resolves to a known type identifier.
func (c *Config) IsTypeIdentifier(typ string) bool {
	_, ok := c.typeAliases[strings.ToLower(typ)]
	return ok
}

// AddTypeAlias registers an extra alias spelling for a canonical type.
func (c *Config) AddTypeAlias(alias, canonical string) {
	c.typeAliases[strings.ToLower(alias)] = canonical
}

// CanonicalKeyword resolves an overridden keyword spelling to the canonical
// keyword. Unoverridden spellings return as written.
func (c *Config) CanonicalKeyword(kw string) string {
	if canon, ok := c.keywordAliases[kw]; ok {
		return canon
	}
	return kw
}

// OverrideKeyword maps an alternative spelling onto a canonical keyword.
func (c *Config) OverrideKeyword(spelling, canonical string) {
	c.keywordAliases[spelling] = canonical
}

// IsKeyword reports whether kw (after alias resolution) is a CHTL keyword.
func (c *Config) IsKeyword(kw string) bool {
	return Keywords[c.CanonicalKeyword(kw)]
}

// SetOption stores a `[Configuration]` option value.
func (c *Config) SetOption(key string, value any) {
	c.options[key] = value
}

// Option returns a stored option value.
func (c *Config) Option(key string) (any, bool) {
	v, ok := c.options[key]
	return v, ok
}
