package strada

// ExtensionFunc is an application-level operation contributed by an
// extension, invocable through App.Call.
type ExtensionFunc func(a *App, args ...any) (any, error)

// HelperFunc is an operation merged into every request context's
// operation set, invocable through Ctx.Call.
type HelperFunc func(c *Ctx, args ...any) (any, error)

// Extension is a named bundle of application-level operations. Its
// Configure hook, when set, runs immediately at registration and may add
// routes, settings, and helpers of its own.
type Extension struct {
	Name      string
	Ops       map[string]ExtensionFunc
	Configure func(b *Builder) error
}

// HelperBundle is a named bundle of operations exposed to handlers
// through the request context.
type HelperBundle struct {
	Name string
	Ops  map[string]HelperFunc
}

// mergeHelperOps flattens helper bundles into one operation table.
// Bundles merge in registration order, so on a name collision the last
// registration wins.
func mergeHelperOps(bundles []HelperBundle) map[string]HelperFunc {
	ops := make(map[string]HelperFunc)
	for _, bundle := range bundles {
		for name, op := range bundle.Ops {
			ops[name] = op
		}
	}

	return ops
}

// mergeExtensionOps flattens extension bundles into one operation table,
// last registration winning on collision.
func mergeExtensionOps(extensions []Extension) map[string]ExtensionFunc {
	ops := make(map[string]ExtensionFunc)
	for _, ext := range extensions {
		for name, op := range ext.Ops {
			ops[name] = op
		}
	}

	return ops
}
