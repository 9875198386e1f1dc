// Command coursebook manages course types, courses, offerings and student
// registrations from the command line.
package main

import "github.com/mesh-intelligence/coursebook/internal/cli"

func main() {
	cli.Execute()
}
