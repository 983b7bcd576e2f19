// Package schema loads panel definitions from YAML, JSON or TOML documents and
// turns them into panel configs plus field registries. Attribute and option
// mappings keep their document order.
package schema
