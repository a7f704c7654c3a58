package domain

import (
	"testing"

	"fpadmin/testutil"
)

// TestDomainImportsStayPure keeps the domain layer free of internal packages
// and third-party modules so every adapter can depend on it.
func TestDomainImportsStayPure(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".",
		testutil.AnyOf(testutil.InternalImportForbidden, testutil.ThirdPartyImportForbidden),
		"domain depends on the standard library only")
}

func TestDomainHasNoInternalTransitiveDependencies(t *testing.T) {
	testutil.AssertNoTransitiveDependency(t, ".", testutil.InternalImportForbidden, "domain must not reach internal packages")
}
