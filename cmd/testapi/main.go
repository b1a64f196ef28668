// testapi - a self-contained REST API test fixture.
package main

import (
	"github.com/ft-manu/forethought-test-api/pkg/cli"
)

func main() {
	cli.Execute()
}
