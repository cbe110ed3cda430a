package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modpack/cli/internal/module"
)

func TestRegexExtractor_Extract(t *testing.T) {
	content := `/**
 * Booking management for the rental fleet.
 * <p>
 * Handles reservations and returns.
 * @author someone
 * Never reached.
 */
@ApplicationModule(
    displayName = "Buchung",
    type = ApplicationModule.Type.CLOSED,
    allowedDependencies = {
        "warenbestand::api",
        "common"
    }
)
package de.cenglisch.rentalbackend.buchung;
`

	facts, ok := RegexExtractor{}.Extract([]byte(content))
	require.True(t, ok)

	assert.Equal(t, "buchung", facts.Name)
	assert.Equal(t, "Buchung", facts.DisplayName)
	assert.Equal(t, "Booking management for the rental fleet. Handles reservations and returns.", facts.Description)
	assert.Equal(t, "CLOSED", facts.TypeToken)
	assert.Equal(t, []module.Dependency{
		{Module: "warenbestand", Scope: module.ScopeAPI},
		{Module: "common", Scope: module.ScopeFull},
	}, facts.Dependencies)
}

func TestRegexExtractor_NoPackageDeclaration(t *testing.T) {
	inputs := []string{
		"",
		`@ApplicationModule(displayName = "Orphan")`,
		"package buchung;", // no dotted prefix
		"package de.cenglisch.rentalbackend.buchung", // no semicolon
	}
	for _, in := range inputs {
		_, ok := RegexExtractor{}.Extract([]byte(in))
		assert.False(t, ok, "input %q", in)
	}
}

func TestRegexExtractor_Fallbacks(t *testing.T) {
	facts, ok := RegexExtractor{}.Extract([]byte("package de.cenglisch.rentalbackend.kunde;\n"))
	require.True(t, ok)

	assert.Equal(t, "kunde", facts.DisplayName, "display name falls back to the module name")
	assert.Empty(t, facts.Description)
	assert.NotNil(t, facts.Dependencies)
	assert.Empty(t, facts.Dependencies)
	assert.Empty(t, facts.TypeToken)
}

func TestRegexExtractor_MalformedDependencies(t *testing.T) {
	facts, ok := RegexExtractor{}.Extract([]byte(`@ApplicationModule(allowedDependencies = "common")
package de.cenglisch.rentalbackend.kunde;`))
	require.True(t, ok)
	assert.Empty(t, facts.Dependencies)
}

func TestParseDependency(t *testing.T) {
	tests := []struct {
		token string
		want  module.Dependency
	}{
		{"warenbestand::api", module.Dependency{Module: "warenbestand", Scope: module.ScopeAPI}},
		{"common", module.Dependency{Module: "common", Scope: module.ScopeFull}},
		{"common::events", module.Dependency{Module: "common::events", Scope: module.ScopeFull}},
		{"a::api::api", module.Dependency{Module: "a::api", Scope: module.ScopeAPI}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDependency(tt.token))
		})
	}
}

func TestClassifyType(t *testing.T) {
	assert.Equal(t, module.TypeShared, ClassifyType("common", "OPEN"))
	assert.Equal(t, module.TypeShared, ClassifyType("bootstrap", "OPEN"))
	assert.Equal(t, module.TypeBootstrap, ClassifyType("bootstrap", ""))
	assert.Equal(t, module.TypeBoundedContext, ClassifyType("buchung", "CLOSED"))
	assert.Equal(t, module.TypeBoundedContext, ClassifyType("buchung", "OPENED"))
	assert.Equal(t, module.TypeBoundedContext, ClassifyType("buchung", ""))
}
