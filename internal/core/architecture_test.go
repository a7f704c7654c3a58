package core

import (
	"testing"

	"fpadmin/testutil"
)

func TestCoreDoesNotDependOnTransport(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.TransportImportForbidden, "services are shared by the API and the CLI")
}
