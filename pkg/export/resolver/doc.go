// Package resolver turns a registered type and an optional group into the
// ordered list of field descriptors that drive an export.
//
// Resolution happens once per export call and is never cached, because
// each call may request a different group:
//
//	r := resolver.New(registry)
//	fields := r.Resolve(userType, export.Group("default"), items)
//
// A member is included when its export tag (or, failing that, its legacy
// group tag) matches the group. Relations without explicit sub-fields get
// them from the related type: the statically declared target first, then
// the runtime type of the first non-empty sampled value. Nested discovery
// ignores the group filter.
package resolver
