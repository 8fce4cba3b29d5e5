// Package catalog reads characters from the remote GraphQL service.
//
// Two queries are used: a paginated list and a by-id detail. Responses are
// kept in a process-lifetime stale-while-revalidate cache keyed by the
// query variables. Failures never replace cached data; they are reported
// next to it in Result.Err.
package catalog
