// Package codex validates Codex 144:99 node records.
//
// It provides:
//
// - A stable error model via Issues (locator path, code, message, params)
// - Validate: recursive structural validation against a compiled jsonschema.Schema
// - Value helpers shared by the schema pass and the node rules (KindOf, Float, Equal)
//
// Design policy:
// - Content problems are data (Issues), never early exits; callers decide severity.
// - Domain rules (motion safety) live in rules/ and run after the schema pass.
// - File loading lives in source/, the bundle-level pass in bundle/, and the CLIs under cmd/.
//
// Typical usage:
//
//	s, err := source.LoadSchema("schema/codex-node.schema.json")
//	iss := codex.Validate(node, s, "node[0]")
//	for _, it := range iss {
//		fmt.Println("[FAIL]", it)
//	}
package codex
