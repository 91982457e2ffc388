package domain

// MiscPrefix is the identifier prefix for rules whose category is not in the
// fixed table. The category itself is still stored literally.
const MiscPrefix = "MISC"

// CategoryPrefixes returns the fixed category-to-prefix table. The map is
// built fresh on every call so no caller can mutate shared state; the
// repository receives it once at construction time.
func CategoryPrefixes() map[string]string {
	return map[string]string{
		"boundaries":   "BND",
		"concurrency":  "CON",
		"control_flow": "CTRL",
		"functions":    "FUNC",
		"naming":       "NAME",
		"performance":  "PERF",
		"refactoring":  "REF",
		"structure":    "STRUCT",
		"style":        "STYLE",
		"testing":      "TEST",
	}
}

// KnownCategories lists the categories the generation prompt offers to the
// model, in a stable order.
func KnownCategories() []string {
	return []string{
		"boundaries",
		"concurrency",
		"control_flow",
		"functions",
		"naming",
		"performance",
		"refactoring",
		"structure",
		"style",
		"testing",
	}
}
