// Package kernel holds the value objects every work-order aggregate shares:
// UUID, which never holds the nil id once constructed, and Name, a trimmed
// display name of at most 100 runes.
package kernel
