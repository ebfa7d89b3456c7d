/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing action catalogues.

It allows developers to define planning problems using a type-safe, fluent builder pattern
instead of relying on external YAML or JSON files. This is particularly useful for dynamic catalogue
generation, unit testing, and leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/aretw0/goap/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.Add("Idle").Produces("Rested", 1).
			Add("Work").Requires("Rested", 1).Produces("Money", 10).
			Add("Shop").Consumes("Money", 10).Produces("HasFood", 1)

		// The resulting graph can be handed to goap.New(...)
		graph, _ := b.Graph()
		_ = graph
	}
*/
package dsl
