/*
Package denylist decides whether a value is banned for one of a fixed set of categories.

A Registry owns the lazily loaded entry list of every category and answers predicates:

  - usernames, ips, bank accounts: case-insensitive exact match
  - emails: exact match of the "@domain" part or of the whole address
  - words: case-insensitive substring match of any listed word or phrase

Lists are read from a Source on first use and may be extended at runtime with Merge,
MergeFile or MergeFromSource. Runtime additions are never written back to the source.
*/
package denylist
