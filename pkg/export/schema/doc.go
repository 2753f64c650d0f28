// Package schema declares which Go types can be exported and how their
// members map to columns.
//
// Types are registered explicitly with typed accessor functions, so the
// export pipeline never walks struct fields at export time:
//
//	users := schema.NewType("User",
//	    schema.Property("username", func(u *User) any { return u.Username }).
//	        Export(export.Tag{Groups: []string{"default"}}),
//	    schema.Method("fullName", func(u *User) any { return u.FullName() }).
//	        Export(export.Tag{Name: "Full name"}),
//	    schema.Many("roles", func(u *User) []*Role { return u.Roles }).
//	        Export(export.Tag{Mode: export.ModeSheet, Fields: []string{"name"}}),
//	).Exportable()
//
//	registry := schema.NewRegistry()
//	registry.MustRegister(users, schema.NewType("Role", ...))
//
// FromStruct derives the same declarations from `export` struct tags once,
// at registration time.
package schema
