package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomasrohde/badbasic/pkg/diagnostics"
	"github.com/thomasrohde/badbasic/pkg/policy"
)

func TestDefaultRecoversUnknownFunctionOnly(t *testing.T) {
	p := policy.Default()
	assert.True(t, p.IsRecoverable(diagnostics.EUnknownFn))
	for _, code := range []string{diagnostics.EUnbound, diagnostics.EUnsupportedOp, diagnostics.EFnArgs, diagnostics.ELex} {
		assert.False(t, p.IsRecoverable(code), code)
	}
	assert.Equal(t, []string{diagnostics.EUnknownFn}, p.Recoverable())
}

func TestStrictAndNil(t *testing.T) {
	assert.False(t, policy.Strict().IsRecoverable(diagnostics.EUnknownFn))
	assert.Empty(t, policy.Strict().Recoverable())

	var p *policy.Policy
	assert.False(t, p.IsRecoverable(diagnostics.EUnknownFn))
	assert.Nil(t, p.Recoverable())
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		file policy.File
		want []string
	}{
		{"empty section is default", policy.File{}, []string{diagnostics.EUnknownFn}},
		{"explicit empty list is strict", policy.File{Recover: []string{}}, []string{}},
		{"extra codes", policy.File{Recover: []string{diagnostics.EUnbound, diagnostics.EUnknownFn}},
			[]string{diagnostics.EUnbound, diagnostics.EUnknownFn}},
		{"fatal wins over recover", policy.File{
			Recover: []string{diagnostics.EUnbound, diagnostics.EUnknownFn},
			Fatal:   []string{diagnostics.EUnbound},
		}, []string{diagnostics.EUnknownFn}},
		{"fatal applies to default set", policy.File{Fatal: []string{diagnostics.EUnknownFn}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := policy.Build(tt.file)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Recoverable())
		})
	}
}

func TestBuildRejectsIneligibleCodes(t *testing.T) {
	_, err := policy.Build(policy.File{Recover: []string{diagnostics.ELex}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be made recoverable")

	_, err = policy.Build(policy.File{Fatal: []string{"E_NOPE"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown diagnostic code")
}

func TestEligibleCodesAreKnown(t *testing.T) {
	for _, code := range policy.Eligible {
		assert.True(t, diagnostics.IsKnown(code), code)
		assert.True(t, policy.CanRecover(code), code)
	}
	assert.False(t, policy.CanRecover(diagnostics.ENoLine))
}
