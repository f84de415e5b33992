// Package core provides the foundational data container of Cubo and the
// resolution machinery that feeds it. It defines:
//
//   - DataObject (a named key/value container with a caller back-reference)
//   - Controller and other variants sharing the Object contract
//   - Create, the factory path that records which object requested creation
//   - Resolver, which turns a structured value or a locator string into data
//   - Reader / Fetcher capabilities for local and remote resources
//
// Resolution is best-effort: a locator that cannot be read, fetched or
// decoded resolves to an empty mapping instead of an error. Callers that need
// to tell an empty resource apart from a broken one use Resolver.ResolveStrict.
//
// Concrete backends other than the OS file reader and the HTTP fetcher live
// in sibling packages (resource, remote/s3) and are plugged in through
// ResolverOptions.
package core
