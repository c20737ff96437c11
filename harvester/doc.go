// Package harvester collects the body schemas used by an API's operations.
//
// [Harvest] walks paths, methods and status codes in document order and
// returns one [Occurrence] per response that declares a JSON body. Each
// response occurrence also carries the operation's request body schema and
// its operation-level and path-level parameters, so callers can derive the
// request side with [Requests] without walking the document again.
// Operations whose only JSON body is the request get a standalone request
// occurrence.
//
// The emission order matters: grouping keeps the first schema it sees as a
// group's representative, so the harvest order must follow the source.
//
//	occs := harvester.Harvest(doc)
//	for _, occ := range harvester.Responses(occs) {
//	    fmt.Println(occ.Endpoint(), occ.MediaType)
//	}
package harvester
