// Package grouper clusters harvested body schemas into groups of
// structurally equivalent schemas while keeping track of which endpoints
// use each group.
//
// Grouping is incremental and order dependent. Response occurrences are
// processed first and request bodies second, each in harvest order. Array
// schemas are unwrapped one level to their items. An occurrence joins the
// first existing group, in creation order, whose representative is
// equivalent; otherwise it creates a new group and becomes its permanent
// representative.
//
//	occs := harvester.Harvest(doc)
//	groups := grouper.Group(occs)
//	for _, g := range groups {
//	    fmt.Println(g.ID, g.Endpoints, g.Directions)
//	}
//
// A comparison that fails or panics is logged and treated as "not
// equivalent", so a malformed schema ends up in a group of its own instead
// of aborting the run. [WithConcurrency] compares one occurrence against
// many groups in parallel; the result is still the first match in creation
// order.
package grouper
