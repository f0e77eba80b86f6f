package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// VNode Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryVNode,
		Message:  "Invalid vnode shape",
	},
	"E101": {
		Category: CategoryVNode,
		Message:  "Invalid tag name",
	},
	"E102": {
		Category: CategoryVNode,
		Message:  "Too many children",
		Detail:   "A vnode holds at most one child.",
	},

	// ============================================
	// DOM and Root Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryDOM,
		Message:  "DOM operation failed",
	},
	"E121": {
		Category: CategoryRoot,
		Message:  "Root state inconsistency",
		Detail:   "The previous vnode's DOM node is not attached where the container's root state says it is.",
	},
	"E122": {
		Category: CategoryRoot,
		Message:  "Concurrent render into the same container",
		Detail:   "Another Render call targeting this container has not finished.",
	},

	// ============================================
	// Config and Scenario Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
	"E141": {
		Category: CategoryScenario,
		Message:  "Scenario not found",
	},
	"E142": {
		Category: CategoryScenario,
		Message:  "Scenario decode failed",
	},
	"E143": {
		Category: CategoryScenario,
		Message:  "Scenario assertion failed",
	},
	"E144": {
		Category: CategoryScenario,
		Message:  "Scenario storage unavailable",
	},
	"E145": {
		Category: CategoryScenario,
		Message:  "Scenario render failed",
	},
	"E146": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
	},

	// ============================================
	// Server Errors (E160-E179)
	// ============================================

	"E160": {
		Category: CategoryServer,
		Message:  "Bad request body",
	},
	"E161": {
		Category: CategoryServer,
		Message:  "Unknown container",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
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
