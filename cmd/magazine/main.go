// Magazine is a persistence service for captured network requests.
//
// It stores each captured request ("bullet") as a metadata record plus an
// optional payload blob, with a monotonic capture clock for ordering and
// configurable retention.
//
// Usage:
//
//	# Record a captured request
//	magazine record --method GET --uri http://target/path --body @payload.bin
//
//	# List stored bullets in capture order
//	magazine list
//
//	# Show one bullet, including its payload
//	magazine show <id> --payload
//
//	# Show the most recently captured bullet
//	magazine latest
//
//	# Count stored bullets
//	magazine count
//
//	# Apply retention policy, or delete everything
//	magazine purge
//	magazine purge --all
package main

func main() {
	Execute()
}
