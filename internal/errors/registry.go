package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Contract violations (E001-E099)
	// ============================================

	"E001": {
		Category: CategoryContract,
		Message:  "View boundary incomplete",
		Detail:   "A view initializer returned without setting both the first and the last node of the view.",
	},
	"E002": {
		Category: CategoryContract,
		Message:  "Boundary owner already registered",
		Detail:   "A view can only have one boundary owner per scope. Dispose the scope that registered the current owner first.",
	},
	"E003": {
		Category: CategoryContract,
		Message:  "Teardown hooks are not allowed here",
		Detail:   "A teardown hook was registered while capturing was disabled with Nocapture.",
	},
	"E004": {
		Category: CategoryContract,
		Message:  "No platform in context",
		Detail:   "The operation needs a platform to create nodes. Inject one with view.PlatformContext.",
	},
	"E006": {
		Category: CategoryRuntime,
		Message:  "Observer rerun budget exceeded",
		Detail:   "An observer kept invalidating itself during its own run. This usually means it writes a signal it also reads.",
	},

	// ============================================
	// Tooling errors (E100-E199)
	// ============================================

	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The configuration file could not be parsed or contains invalid values.",
	},
	"E102": {
		Category: CategoryReport,
		Message:  "Report sink failure",
		Detail:   "The report could not be written to its destination.",
	},
	"E103": {
		Category: CategoryFuzz,
		Message:  "Reconciler mismatch",
		Detail:   "The keyed list reconciler disagreed with the reference implementation.",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
